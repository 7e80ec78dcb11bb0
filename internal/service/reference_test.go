package service

import (
	"context"
	"os"
	"testing"

	"github.com/mhollis/agentcare/internal/adapter/demodata"
	"github.com/mhollis/agentcare/internal/adapter/fsartifact"
	"github.com/mhollis/agentcare/internal/domain/widget"
	"github.com/mhollis/agentcare/internal/port/dataprovider"
)

func newTestReferences(t *testing.T) (*ReferenceService, *fsartifact.Store) {
	t.Helper()
	store, err := fsartifact.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	widgets := NewWidgetService(demodata.New(), newTestTickets(), nil)
	return NewReferenceService(store, widgets), store
}

func TestFilesResolvesExistingArtifact(t *testing.T) {
	refs, store := newTestReferences(t)

	id := store.GenerateID("bill_details", "csv")
	if err := os.WriteFile(store.Path(id), []byte("a,b\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	content := "Here is the breakdown: [FILE:" + id + ":November Bill Details]"
	files := refs.Files(context.Background(), content)
	if len(files) != 1 {
		t.Fatalf("expected 1 file reference, got %d", len(files))
	}
	if files[0].FileID != id || files[0].Description != "November Bill Details" {
		t.Errorf("unexpected reference: %+v", files[0])
	}
	if files[0].FileType != "csv" {
		t.Errorf("file type = %q, want csv", files[0].FileType)
	}
}

func TestFilesDropsMissingArtifact(t *testing.T) {
	refs, _ := newTestReferences(t)

	files := refs.Files(context.Background(), "[FILE:report.csv:My Report]")
	if len(files) != 0 {
		t.Fatalf("expected 0 resolved files, got %d", len(files))
	}
}

func TestWidgetsResolvesKnownKind(t *testing.T) {
	refs, _ := newTestReferences(t)

	content := `Recommended: [WIDGET:roaming_plans:["ROAM-USA-7"]]`
	widgets := refs.Widgets(context.Background(), content)
	if len(widgets) != 1 {
		t.Fatalf("expected 1 widget, got %d", len(widgets))
	}
	w := widgets[0]
	if w.Kind != widget.KindRoamingPlans {
		t.Errorf("kind = %q", w.Kind)
	}
	if w.Raw != `[WIDGET:roaming_plans:["ROAM-USA-7"]]` {
		t.Errorf("raw marker mangled: %q", w.Raw)
	}
	plans := w.Payload.Data.([]dataprovider.RoamingPlan)
	if len(plans) != 1 || plans[0].PlanID != "ROAM-USA-7" {
		t.Errorf("payload not filtered to requested plan: %+v", plans)
	}
}

func TestWidgetsSkipsUnknownType(t *testing.T) {
	refs, _ := newTestReferences(t)

	content := `[WIDGET:hologram:[]] and [WIDGET:usage_summary:[]]`
	widgets := refs.Widgets(context.Background(), content)
	if len(widgets) != 1 {
		t.Fatalf("expected only the known widget, got %d", len(widgets))
	}
	if widgets[0].Kind != widget.KindUsageSummary {
		t.Errorf("kind = %q", widgets[0].Kind)
	}
}

func TestWidgetsSkipsMalformedJSON(t *testing.T) {
	refs, _ := newTestReferences(t)

	widgets := refs.Widgets(context.Background(), `[WIDGET:addons:[broken]`)
	if len(widgets) != 0 {
		t.Fatalf("expected 0 widgets, got %d", len(widgets))
	}
}
