package storage_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"careerai-backend/pkg/apperror"
	"careerai-backend/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateResume(t *testing.T) {
	pdf := append([]byte("%PDF-1.7\n"), bytes.Repeat([]byte("x"), 32)...)
	docx := append([]byte{0x50, 0x4B, 0x03, 0x04}, bytes.Repeat([]byte{0}, 32)...)
	doc := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, bytes.Repeat([]byte{0}, 32)...)
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

	tests := []struct {
		name     string
		filename string
		data     []byte
		valid    bool
		ctype    string
	}{
		{"pdf", "cv.PDF", pdf, true, "application/pdf"},
		{"docx", "cv.docx", docx, true, "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"doc", "cv.doc", doc, true, "application/msword"},
		{"txt", "cv.txt", []byte("Jane Doe\nGo developer\n"), true, "text/plain; charset=utf-8"},
		{"spoofed pdf", "cv.pdf", png, false, ""},
		{"binary txt", "cv.txt", png, false, ""},
		{"image extension", "cv.png", png, false, ""},
		{"no extension", "cv", pdf, false, ""},
		{"empty", "cv.pdf", nil, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := storage.ValidateResume(tt.filename, tt.data)
			assert.Equal(t, tt.valid, res.Valid, res.Error)
			assert.Equal(t, tt.ctype, res.ContentType)
		})
	}
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "cv.pdf", storage.SanitizeFileName("../../etc/cv.pdf"))
	assert.Equal(t, "cv.pdf", storage.SanitizeFileName(`C:\Users\me\cv.pdf`))
	assert.Equal(t, "cv.pdf", storage.SanitizeFileName("c\"v.pdf"))
	assert.Equal(t, "resume", storage.SanitizeFileName(".."))
}

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	s, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	body := []byte("%PDF-1.4 resume body")
	require.NoError(t, s.Put(ctx, "resumes/u1/r1.pdf", bytes.NewReader(body), int64(len(body)), "application/pdf"))

	rc, err := s.Get(ctx, "resumes/u1/r1.pdf")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, body, got)

	require.NoError(t, s.Delete(ctx, "resumes/u1/r1.pdf"))
	require.NoError(t, s.Delete(ctx, "resumes/u1/r1.pdf"), "delete is idempotent")

	_, err = s.Get(ctx, "resumes/u1/r1.pdf")
	assert.Equal(t, http.StatusNotFound, apperror.CodeOf(err))

	_, err = s.Get(ctx, "../outside")
	assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
}
