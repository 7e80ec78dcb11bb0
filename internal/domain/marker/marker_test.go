package marker

import (
	"reflect"
	"testing"
)

func TestFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []File
	}{
		{
			"single marker",
			"Here is your chart: [FILE:trend.png:Monthly Bill Trend Chart]",
			[]File{{ID: "trend.png", Description: "Monthly Bill Trend Chart", Raw: "[FILE:trend.png:Monthly Bill Trend Chart]"}},
		},
		{
			"multiple markers in order",
			"[FILE:a.csv:First] then [FILE:b.png:Second]",
			[]File{
				{ID: "a.csv", Description: "First", Raw: "[FILE:a.csv:First]"},
				{ID: "b.png", Description: "Second", Raw: "[FILE:b.png:Second]"},
			},
		},
		{"no markers", "plain text with [brackets] and FILE words", nil},
		{"missing description", "[FILE:a.csv:]", nil},
		{"missing id", "[FILE::desc]", nil},
		{"unterminated", "[FILE:a.csv:desc", nil},
		{"colon in id not allowed", "[FILE:a:b.csv:desc]", []File{{ID: "a", Description: "b.csv:desc", Raw: "[FILE:a:b.csv:desc]"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Files(tt.content)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Files(%q) = %+v, want %+v", tt.content, got, tt.want)
			}
		})
	}
}

func TestWidgets(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []Widget
	}{
		{
			"widget with ids",
			`For USA travel: [WIDGET:roaming_plans:["ROAM-USA-7"]]`,
			[]Widget{{Type: "roaming_plans", IDs: []string{"ROAM-USA-7"}, Raw: `[WIDGET:roaming_plans:["ROAM-USA-7"]]`}},
		},
		{
			"empty id list",
			"[WIDGET:addons:[]]",
			[]Widget{{Type: "addons", IDs: []string{}, Raw: "[WIDGET:addons:[]]"}},
		},
		{
			"two ids",
			`[WIDGET:addons:["ADDON-DATA-10","ADDON-INTL-100"]]`,
			[]Widget{{Type: "addons", IDs: []string{"ADDON-DATA-10", "ADDON-INTL-100"}, Raw: `[WIDGET:addons:["ADDON-DATA-10","ADDON-INTL-100"]]`}},
		},
		{"malformed json skipped", `[WIDGET:addons:[not json]]`, nil},
		{"non-string members skipped", `[WIDGET:addons:[1,2]]`, nil},
		{"unterminated", `[WIDGET:addons:["A"`, nil},
		{"no markers", "nothing here", nil},
		{
			"malformed marker does not poison siblings",
			`[WIDGET:addons:[bad]] and [WIDGET:usage_summary:[]]`,
			[]Widget{{Type: "usage_summary", IDs: []string{}, Raw: "[WIDGET:usage_summary:[]]"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Widgets(tt.content)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Widgets(%q) = %+v, want %+v", tt.content, got, tt.want)
			}
		})
	}
}

func TestWidgetsPreserveOrder(t *testing.T) {
	content := `[WIDGET:current_plan:[]] text [WIDGET:usage_summary:[]]`
	got := Widgets(content)
	if len(got) != 2 {
		t.Fatalf("expected 2 widgets, got %d", len(got))
	}
	if got[0].Type != "current_plan" || got[1].Type != "usage_summary" {
		t.Errorf("order not preserved: %+v", got)
	}
}

func TestFormatFile(t *testing.T) {
	got := FormatFile("bill.csv", "November Bill Details")
	want := "[FILE:bill.csv:November Bill Details]"
	if got != want {
		t.Errorf("FormatFile = %q, want %q", got, want)
	}

	// Round trip through the parser.
	files := Files(got)
	if len(files) != 1 || files[0].ID != "bill.csv" {
		t.Errorf("formatted marker did not parse back: %+v", files)
	}
}

func TestFormatWidget(t *testing.T) {
	tests := []struct {
		widgetType string
		ids        []string
		want       string
	}{
		{"current_plan", nil, "[WIDGET:current_plan:[]]"},
		{"roaming_plans", []string{"ROAM-USA-7"}, `[WIDGET:roaming_plans:["ROAM-USA-7"]]`},
	}
	for _, tt := range tests {
		if got := FormatWidget(tt.widgetType, tt.ids); got != tt.want {
			t.Errorf("FormatWidget(%q, %v) = %q, want %q", tt.widgetType, tt.ids, got, tt.want)
		}
	}
}
