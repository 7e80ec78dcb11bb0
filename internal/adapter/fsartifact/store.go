// Package fsartifact implements the artifact store port directly on the
// filesystem. There is no metadata index to keep in sync: every lookup
// stats the file, trading a syscall per query for simplicity.
package fsartifact

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mhollis/agentcare/internal/domain"
	"github.com/mhollis/agentcare/internal/port/artifactstore"
)

// Store keeps artifacts as plain files under one directory. Per-file
// operations are independent; directory-wide operations (List, Cleanup)
// take a coarse lock so concurrent cleanup cannot tear an iteration.
type Store struct {
	dir   string
	dirMu sync.Mutex
	now   func() time.Time
}

// New creates the artifacts directory if needed and returns a store.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifacts dir: %w", err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

// GenerateID returns "<base>_<timestamp>_<random8>.<ext>". Uniqueness
// rests on the timestamp plus a random uuid prefix; at this scale the
// collision probability is negligible.
func (s *Store) GenerateID(baseName, extension string) string {
	ts := s.now().Format("20060102_150405")
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s_%s_%s.%s", baseName, ts, suffix, extension)
}

// Path returns the storage location for a file id.
func (s *Store) Path(fileID string) string {
	return filepath.Join(s.dir, filepath.Base(fileID))
}

// Save registers an artifact. The bytes must already be on disk; callers
// must never advertise a file reference that does not resolve, so a
// missing file fails fast with ErrNotFound.
func (s *Store) Save(_ context.Context, fileID, description string, metadata map[string]any) error {
	path := s.Path(fileID)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("artifact %s: %w", fileID, domain.ErrNotFound)
	}
	slog.Debug("artifact registered", "file_id", fileID, "description", description, "metadata_keys", len(metadata))
	return nil
}

// GetInfo derives artifact metadata from the filesystem at query time.
func (s *Store) GetInfo(_ context.Context, fileID string) (*artifactstore.Info, error) {
	path := s.Path(fileID)
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", fileID, domain.ErrNotFound)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	mimeType := "application/octet-stream"
	if ext != "" {
		if mt := mime.TypeByExtension("." + ext); mt != "" {
			mimeType = mt
		} else {
			mimeType = "application/" + ext
		}
	}

	return &artifactstore.Info{
		FileID:      fileID,
		Path:        path,
		FileType:    ext,
		MimeType:    mimeType,
		Description: describe(fileID, ext),
		SizeBytes:   st.Size(),
		CreatedAt:   st.ModTime(),
	}, nil
}

// List scans the directory and returns artifacts newest first.
func (s *Store) List(ctx context.Context, fileType string, limit int) ([]artifactstore.Info, error) {
	s.dirMu.Lock()
	defer s.dirMu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}

	var infos []artifactstore.Info
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := s.GetInfo(ctx, e.Name())
		if err != nil {
			continue // removed between ReadDir and stat
		}
		if fileType != "" && info.FileType != fileType {
			continue
		}
		infos = append(infos, *info)
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].CreatedAt.After(infos[j].CreatedAt) })
	if limit > 0 && len(infos) > limit {
		infos = infos[:limit]
	}
	return infos, nil
}

// Cleanup deletes artifacts older than maxAge and returns the count removed.
func (s *Store) Cleanup(_ context.Context, maxAge time.Duration) (int, error) {
	s.dirMu.Lock()
	defer s.dirMu.Unlock()

	cutoff := s.now().Add(-maxAge)
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("cleanup artifacts: %w", err)
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
				slog.Warn("remove artifact", "file_id", e.Name(), "error", err)
				continue
			}
			removed++
		}
	}

	if removed > 0 {
		slog.Info("artifact cleanup", "removed", removed, "max_age", maxAge)
	}
	return removed, nil
}

// knownBases maps artifact base names to display descriptions.
var knownBases = map[string]string{
	"monthly_bill_trend": "Monthly Bill Trend Chart",
	"bill_details":       "Bill Line Items",
	"usage_analysis":     "Usage Analysis Report",
}

// describe derives a display description from a file id.
func describe(fileID, ext string) string {
	stem := strings.TrimSuffix(fileID, filepath.Ext(fileID))
	for base, desc := range knownBases {
		if strings.Contains(stem, base) {
			return desc
		}
	}
	switch ext {
	case "png", "jpg", "jpeg", "pdf":
		return "Chart/Image"
	case "csv":
		return "Data Export"
	default:
		return strings.ToUpper(ext) + " File"
	}
}
