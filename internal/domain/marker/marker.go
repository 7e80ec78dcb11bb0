// Package marker parses the inline FILE and WIDGET directives agents embed
// in free-form reply text.
//
// The grammar is the one wire contract between agent text generation and
// the presentation layer and must be preserved exactly:
//
//	[FILE:<file_id>:<description>]   file_id has no ':' or ']', description has no ']'
//	[WIDGET:<type>:<json array>]     type has no ':', the array is a JSON list of strings
//
// The producer is model-generated text and therefore untrusted: parsing
// never fails the whole message. A marker that does not conform is simply
// not reported.
package marker

import (
	"encoding/json"
	"regexp"
)

var (
	fileRe   = regexp.MustCompile(`\[FILE:([^:\]]+):([^\]]+)\]`)
	widgetRe = regexp.MustCompile(`\[WIDGET:([^:]+):(\[[^\]]*\])\]`)
)

// File is one well-formed FILE marker occurrence.
type File struct {
	ID          string
	Description string
	Raw         string
}

// Widget is one well-formed WIDGET marker occurrence. Type is the raw
// type string; whether it names a known widget kind is the resolver's
// concern, not the parser's.
type Widget struct {
	Type string
	IDs  []string
	Raw  string
}

// Files returns all FILE markers in content, in order of occurrence.
func Files(content string) []File {
	matches := fileRe.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	files := make([]File, 0, len(matches))
	for _, m := range matches {
		files = append(files, File{ID: m[1], Description: m[2], Raw: m[0]})
	}
	return files
}

// Widgets returns all WIDGET markers in content whose id list parses as a
// JSON array of strings, in order of occurrence. Markers with malformed
// JSON are silently dropped; the rest of the message is unaffected.
func Widgets(content string) []Widget {
	matches := widgetRe.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	widgets := make([]Widget, 0, len(matches))
	for _, m := range matches {
		var ids []string
		if err := json.Unmarshal([]byte(m[2]), &ids); err != nil {
			continue
		}
		widgets = append(widgets, Widget{Type: m[1], IDs: ids, Raw: m[0]})
	}
	if len(widgets) == 0 {
		return nil
	}
	return widgets
}

// FormatFile renders a FILE marker for inclusion in agent text.
func FormatFile(fileID, description string) string {
	return "[FILE:" + fileID + ":" + description + "]"
}

// FormatWidget renders a WIDGET marker for inclusion in agent text.
func FormatWidget(widgetType string, ids []string) string {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return ""
	}
	return "[WIDGET:" + widgetType + ":" + string(data) + "]"
}
