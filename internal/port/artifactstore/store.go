// Package artifactstore defines the port for persisting and querying
// generated file artifacts (charts, CSV exports).
package artifactstore

import (
	"context"
	"time"
)

// Info is artifact metadata derived from storage at query time.
type Info struct {
	FileID      string    `json:"file_id"`
	Path        string    `json:"file_path"`
	FileType    string    `json:"file_type"`
	MimeType    string    `json:"mime_type"`
	Description string    `json:"description"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store persists byte artifacts and answers metadata queries. Artifacts
// are immutable once written; lifetime ends at explicit cleanup by age.
type Store interface {
	// GenerateID returns a unique file identifier derived from the base
	// name, the creation timestamp and a random suffix.
	GenerateID(baseName, extension string) string

	// Path returns the storage location for the given file id, whether
	// or not anything has been written there yet.
	Path(fileID string) string

	// Save registers an artifact after its bytes have been written.
	// Returns domain.ErrNotFound when no file exists at the id's path.
	Save(ctx context.Context, fileID, description string, metadata map[string]any) error

	// GetInfo returns metadata for the artifact, or domain.ErrNotFound.
	GetInfo(ctx context.Context, fileID string) (*Info, error)

	// List returns artifacts newest first, optionally filtered by file
	// type. limit <= 0 means no limit.
	List(ctx context.Context, fileType string, limit int) ([]Info, error)

	// Cleanup deletes artifacts older than maxAge and returns the count
	// removed.
	Cleanup(ctx context.Context, maxAge time.Duration) (int, error)
}
