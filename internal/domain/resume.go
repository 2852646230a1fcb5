package domain

import (
	"context"
	"io"
	"time"
)

// Resume is an uploaded CV file. A student has at most one primary resume.
type Resume struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	FileName   string    `json:"file_name"`
	StorageKey string    `json:"-"`
	FileSize   int64     `json:"file_size"`
	FileType   string    `json:"file_type"`
	IsPrimary  bool      `json:"is_primary"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// UploadInput carries an already size-bounded file body.
type UploadInput struct {
	FileName string
	Content  []byte
}

type ResumeRepository interface {
	// Create inserts resume and sets IsPrimary when it is the user's first.
	Create(ctx context.Context, resume *Resume) error
	GetByID(ctx context.Context, id string) (*Resume, error)
	ListByUserID(ctx context.Context, userID string) ([]Resume, error)
	GetPrimary(ctx context.Context, userID string) (*Resume, error)
	// SetPrimary makes id the only primary resume of userID.
	SetPrimary(ctx context.Context, userID, id string) error
	Delete(ctx context.Context, id string) error
}

// FileStorage stores resume bodies under opaque keys.
type FileStorage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

type ResumeUsecase interface {
	Upload(ctx context.Context, principal *User, in UploadInput) (*Resume, error)
	List(ctx context.Context, principal *User) ([]Resume, error)
	Get(ctx context.Context, principal *User, id string) (*Resume, error)
	Download(ctx context.Context, principal *User, id string) (*Resume, io.ReadCloser, error)
	SetPrimary(ctx context.Context, principal *User, id string) (*Resume, error)
	Delete(ctx context.Context, principal *User, id string) error
}
