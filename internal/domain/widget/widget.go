// Package widget defines the closed set of interactive widget kinds and
// their resolved display payloads.
package widget

// Kind is the widget type. The set is closed: resolution dispatches with
// an exhaustive switch so adding a kind is a compile-time concern, not a
// string-keyed table lookup.
type Kind string

const (
	KindCurrentPlan   Kind = "current_plan"
	KindRoamingPlans  Kind = "roaming_plans"
	KindAddons        Kind = "addons"
	KindUsageSummary  Kind = "usage_summary"
	KindSupportTicket Kind = "support_ticket"
)

// ParseKind maps a marker type string onto a Kind. ok is false for
// anything outside the closed set.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindCurrentPlan, KindRoamingPlans, KindAddons, KindUsageSummary, KindSupportTicket:
		return Kind(s), true
	}
	return "", false
}

// Kinds returns all recognized widget kinds.
func Kinds() []Kind {
	return []Kind{
		KindCurrentPlan,
		KindRoamingPlans,
		KindAddons,
		KindUsageSummary,
		KindSupportTicket,
	}
}

// ActionKind distinguishes how a suggested action is rendered.
type ActionKind string

const (
	ActionPrimary   ActionKind = "primary"
	ActionSecondary ActionKind = "secondary"
)

// Action is one suggested follow-up the client renders alongside the
// widget data.
type Action struct {
	Label string     `json:"label"`
	URL   string     `json:"url"`
	Kind  ActionKind `json:"type"`
}

// Payload is a fully resolved widget ready for rendering.
type Payload struct {
	Kind    Kind     `json:"widget_type"`
	Title   string   `json:"title"`
	Data    any      `json:"data"`
	Actions []Action `json:"actions"`
}

// Reference is one widget marker occurrence resolved against the data
// provider. Raw preserves the exact marker text so clients can locate
// the annotation within the message content.
type Reference struct {
	Kind    Kind     `json:"widget_type"`
	IDs     []string `json:"widget_ids"`
	Payload *Payload `json:"widget_data"`
	Raw     string   `json:"pattern"`
}

// FileReference is one FILE marker occurrence resolved against the
// artifact store.
type FileReference struct {
	FileID      string `json:"file_id"`
	Description string `json:"description"`
	FileType    string `json:"file_type"`
	Path        string `json:"file_path"`
}
