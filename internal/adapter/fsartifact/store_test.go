package fsartifact

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mhollis/agentcare/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func writeArtifact(t *testing.T, s *Store, fileID, content string) {
	t.Helper()
	if err := os.WriteFile(s.Path(fileID), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestGenerateIDUnique(t *testing.T) {
	s := newTestStore(t)

	a := s.GenerateID("monthly_bill_trend", "pdf")
	b := s.GenerateID("monthly_bill_trend", "pdf")
	if a == b {
		t.Fatalf("two ids from the same base name collided: %s", a)
	}
	if filepath.Ext(a) != ".pdf" {
		t.Errorf("expected .pdf extension, got %s", a)
	}
}

func TestSaveMissingFile(t *testing.T) {
	s := newTestStore(t)

	err := s.Save(context.Background(), "never_written.csv", "ghost", nil)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveAndGetInfo(t *testing.T) {
	s := newTestStore(t)
	id := s.GenerateID("bill_details_CS-BILL-202411", "csv")
	writeArtifact(t, s, id, "date,charge\n2024-11-03,12.50\n")

	if err := s.Save(context.Background(), id, "line items", map[string]any{"rows": 1}); err != nil {
		t.Fatal(err)
	}

	info, err := s.GetInfo(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if info.FileType != "csv" {
		t.Errorf("file type = %q, want csv", info.FileType)
	}
	if info.SizeBytes == 0 {
		t.Error("expected non-zero size")
	}
	if info.Description != "Bill Line Items" {
		t.Errorf("description = %q, want Bill Line Items", info.Description)
	}
}

func TestGetInfoMimeTypes(t *testing.T) {
	s := newTestStore(t)
	tests := []struct {
		fileID string
		want   string
	}{
		{"chart.pdf", "application/pdf"},
		{"data.xyzzy", "application/xyzzy"},
		{"no_extension", "application/octet-stream"},
	}
	for _, tt := range tests {
		t.Run(tt.fileID, func(t *testing.T) {
			writeArtifact(t, s, tt.fileID, "x")
			info, err := s.GetInfo(context.Background(), tt.fileID)
			if err != nil {
				t.Fatal(err)
			}
			if info.MimeType != tt.want {
				t.Errorf("mime type = %q, want %q", info.MimeType, tt.want)
			}
		})
	}
}

func TestGetInfoNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetInfo(context.Background(), "report.csv")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListNewestFirstWithFilter(t *testing.T) {
	s := newTestStore(t)
	writeArtifact(t, s, "old.csv", "a")
	writeArtifact(t, s, "new.csv", "b")
	writeArtifact(t, s, "chart.pdf", "c")

	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(s.Path("old.csv"), past, past); err != nil {
		t.Fatal(err)
	}

	infos, err := s.List(context.Background(), "csv", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 csv artifacts, got %d", len(infos))
	}
	if infos[0].FileID != "new.csv" {
		t.Errorf("expected newest first, got %s", infos[0].FileID)
	}

	limited, err := s.List(context.Background(), "", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Errorf("limit ignored: got %d entries", len(limited))
	}
}

func TestCleanupMaxAgeZeroRemovesAll(t *testing.T) {
	s := newTestStore(t)
	for _, id := range []string{"a.csv", "b.pdf", "c.csv"} {
		writeArtifact(t, s, id, "x")
		past := time.Now().Add(-time.Minute)
		if err := os.Chtimes(s.Path(id), past, past); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := s.Cleanup(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if removed != 3 {
		t.Fatalf("removed = %d, want 3", removed)
	}

	infos, err := s.List(context.Background(), "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 0 {
		t.Errorf("expected empty store after cleanup, found %d", len(infos))
	}
}

func TestCleanupKeepsYoungArtifacts(t *testing.T) {
	s := newTestStore(t)
	writeArtifact(t, s, "fresh.csv", "x")

	removed, err := s.Cleanup(context.Background(), 24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if removed != 0 {
		t.Fatalf("removed = %d, want 0", removed)
	}
}

func TestPathRejectsTraversal(t *testing.T) {
	s := newTestStore(t)

	p := s.Path("../escape.csv")
	if filepath.Dir(p) != filepath.Clean(s.dir) {
		t.Errorf("path escaped artifacts dir: %s", p)
	}
}
