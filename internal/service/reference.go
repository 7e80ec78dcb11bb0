package service

import (
	"context"
	"log/slog"

	"github.com/mhollis/agentcare/internal/domain/marker"
	"github.com/mhollis/agentcare/internal/domain/widget"
	"github.com/mhollis/agentcare/internal/port/artifactstore"
)

// ReferenceService post-processes agent reply text for the presentation
// layer: it extracts FILE and WIDGET markers and resolves them against
// the artifact store and widget resolver. Markers are additive
// annotations; the displayed content is never rewritten.
type ReferenceService struct {
	artifacts artifactstore.Store
	widgets   *WidgetService
}

// NewReferenceService creates the resolver.
func NewReferenceService(artifacts artifactstore.Store, widgets *WidgetService) *ReferenceService {
	return &ReferenceService{artifacts: artifacts, widgets: widgets}
}

// Files resolves every FILE marker in content. References whose id has
// no matching artifact are dropped; the marker text itself stays in the
// message untouched.
func (s *ReferenceService) Files(ctx context.Context, content string) []widget.FileReference {
	var refs []widget.FileReference
	for _, f := range marker.Files(content) {
		info, err := s.artifacts.GetInfo(ctx, f.ID)
		if err != nil {
			slog.Debug("file reference dropped", "file_id", f.ID, "error", err)
			continue
		}
		refs = append(refs, widget.FileReference{
			FileID:      f.ID,
			Description: f.Description,
			FileType:    info.FileType,
			Path:        info.Path,
		})
	}
	return refs
}

// Widgets resolves every WIDGET marker in content. Unknown widget types
// are skipped with a diagnostic; a single bad marker never affects the
// rest of the message.
func (s *ReferenceService) Widgets(ctx context.Context, content string) []widget.Reference {
	var refs []widget.Reference
	for _, w := range marker.Widgets(content) {
		kind, ok := widget.ParseKind(w.Type)
		if !ok {
			slog.Warn("unknown widget type skipped", "type", w.Type)
			continue
		}
		payload, ok := s.widgets.Resolve(ctx, kind, w.IDs)
		if !ok {
			continue
		}
		refs = append(refs, widget.Reference{
			Kind:    kind,
			IDs:     w.IDs,
			Payload: &payload,
			Raw:     w.Raw,
		})
	}
	return refs
}
