package usecase_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"testing"

	"careerai-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeUploadAndPrimary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	student := f.signup(t, "student@uni.test", domain.RoleStudent)

	first, err := f.resumeUC.Upload(ctx, student, domain.UploadInput{FileName: "first.pdf", Content: pdfBody})
	require.NoError(t, err)
	assert.True(t, first.IsPrimary)
	assert.Equal(t, ".pdf", first.FileType)

	second, err := f.resumeUC.Upload(ctx, student, domain.UploadInput{FileName: "second.txt", Content: []byte("Jane Doe\nGo developer\n")})
	require.NoError(t, err)
	assert.False(t, second.IsPrimary)

	_, err = f.resumeUC.SetPrimary(ctx, student, second.ID)
	require.NoError(t, err)
	list, err := f.resumeUC.List(ctx, student)
	require.NoError(t, err)
	require.Len(t, list, 2)
	primaries := 0
	for _, r := range list {
		if r.IsPrimary {
			primaries++
			assert.Equal(t, second.ID, r.ID)
		}
	}
	assert.Equal(t, 1, primaries)

	got, body, err := f.resumeUC.Download(ctx, student, first.ID)
	require.NoError(t, err)
	data, err := io.ReadAll(body)
	require.NoError(t, body.Close())
	require.NoError(t, err)
	assert.Equal(t, pdfBody, data)
	assert.Equal(t, "first.pdf", got.FileName)
}

func TestConcurrentFirstUploadsKeepOnePrimary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	student := f.signup(t, "student@uni.test", domain.RoleStudent)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.resumeUC.Upload(ctx, student, domain.UploadInput{FileName: "cv.pdf", Content: pdfBody})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	list, err := f.resumeUC.List(ctx, student)
	require.NoError(t, err)
	require.Len(t, list, 8)
	primaries := 0
	for _, r := range list {
		if r.IsPrimary {
			primaries++
		}
	}
	assert.Equal(t, 1, primaries)
}

func TestResumeDeletePromotesNewest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	student := f.signup(t, "student@uni.test", domain.RoleStudent)

	primary, err := f.resumeUC.Upload(ctx, student, domain.UploadInput{FileName: "a.pdf", Content: pdfBody})
	require.NoError(t, err)
	_, err = f.resumeUC.Upload(ctx, student, domain.UploadInput{FileName: "b.pdf", Content: pdfBody})
	require.NoError(t, err)
	newest, err := f.resumeUC.Upload(ctx, student, domain.UploadInput{FileName: "c.pdf", Content: pdfBody})
	require.NoError(t, err)

	require.NoError(t, f.resumeUC.Delete(ctx, student, primary.ID))

	promoted, err := f.resumes.GetPrimary(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, newest.ID, promoted.ID)

	_, err = f.files.Get(ctx, primary.StorageKey)
	assertCode(t, http.StatusNotFound, err)
}

func TestResumeRejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	student := f.signup(t, "student@uni.test", domain.RoleStudent)
	other := f.signup(t, "other@uni.test", domain.RoleStudent)
	employer := f.signup(t, "hr@acme.test", domain.RoleEmployer)

	_, err := f.resumeUC.Upload(ctx, employer, domain.UploadInput{FileName: "cv.pdf", Content: pdfBody})
	assertCode(t, http.StatusForbidden, err)

	_, err = f.resumeUC.Upload(ctx, student, domain.UploadInput{FileName: "cv.exe", Content: pdfBody})
	assertCode(t, http.StatusBadRequest, err)

	_, err = f.resumeUC.Upload(ctx, student, domain.UploadInput{FileName: "cv.pdf", Content: []byte("GIF89a not a pdf")})
	assertCode(t, http.StatusBadRequest, err)

	huge := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("x"), 1<<20)...)
	_, err = f.resumeUC.Upload(ctx, student, domain.UploadInput{FileName: "cv.pdf", Content: huge})
	assertCode(t, http.StatusRequestEntityTooLarge, err)

	mine, err := f.resumeUC.Upload(ctx, student, domain.UploadInput{FileName: "cv.pdf", Content: pdfBody})
	require.NoError(t, err)
	_, err = f.resumeUC.Get(ctx, other, mine.ID)
	assertCode(t, http.StatusForbidden, err)
	assertCode(t, http.StatusForbidden, f.resumeUC.Delete(ctx, other, mine.ID))
	_, err = f.resumeUC.Get(ctx, student, "missing")
	assertCode(t, http.StatusNotFound, err)
}

func TestDeletingResumeKeepsApplication(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	employer := f.signup(t, "hr@acme.test", domain.RoleEmployer)
	student := f.signup(t, "student@uni.test", domain.RoleStudent)
	job := f.postJob(t, employer)

	resume, err := f.resumeUC.Upload(ctx, student, domain.UploadInput{FileName: "cv.pdf", Content: pdfBody})
	require.NoError(t, err)
	app, err := f.appUC.Apply(ctx, student, domain.ApplyInput{JobID: job.ID, ResumeID: &resume.ID})
	require.NoError(t, err)

	require.NoError(t, f.resumeUC.Delete(ctx, student, resume.ID))
	got, err := f.appUC.Get(ctx, student, app.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ResumeID)
	assert.Equal(t, 1, f.applicantCount(t, job.ID))
}
