package storage

import (
	"bytes"
	"net/http"
	"path/filepath"
	"strings"
)

// FileValidationResult contains the result of file validation
type FileValidationResult struct {
	Valid       bool   // Whether the file passed all validation checks
	Extension   string // Lowercased file extension
	ContentType string // MIME type to store the object with
	Error       string // Error message if validation failed
}

// Magic byte signatures for resume formats. Plain text has none and is
// checked by MIME sniffing instead.
var magicBytes = map[string][][]byte{
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},                         // %PDF
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}}, // OLE Compound Document
	".docx": {{0x50, 0x4B, 0x03, 0x04}},                         // ZIP (PK..)
	".txt":  {},
}

var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain; charset=utf-8",
}

// AllowedResumeExtensions lists the accepted resume file extensions.
var AllowedResumeExtensions = []string{".pdf", ".doc", ".docx", ".txt"}

// ValidateResume checks the extension whitelist, then that the content
// matches the extension.
func ValidateResume(filename string, data []byte) FileValidationResult {
	var result FileValidationResult

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "file has no extension"
		return result
	}
	result.Extension = ext

	signatures, ok := magicBytes[ext]
	if !ok {
		result.Error = "file type not allowed; accepted: " + strings.Join(AllowedResumeExtensions, ", ")
		return result
	}
	if len(data) == 0 {
		result.Error = "file is empty"
		return result
	}

	if ext == ".txt" {
		if !strings.HasPrefix(http.DetectContentType(data), "text/plain") {
			result.Error = "file content does not match extension"
			return result
		}
	} else if !hasSignature(data, signatures) {
		result.Error = "file content does not match extension"
		return result
	}

	result.ContentType = contentTypes[ext]
	result.Valid = true
	return result
}

func hasSignature(data []byte, signatures [][]byte) bool {
	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

// SanitizeFileName strips directories and characters unsafe in headers.
func SanitizeFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == '"' || r == '/' || r == 0x7f {
			return -1
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return "resume"
	}
	return name
}

// ContentTypeFor returns the MIME type stored for ext, or a generic binary type.
func ContentTypeFor(ext string) string {
	if ct, ok := contentTypes[strings.ToLower(ext)]; ok {
		return ct
	}
	return "application/octet-stream"
}
