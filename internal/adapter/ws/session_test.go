package ws

import (
	"encoding/json"
	"testing"
)

func TestEncodeEventFlattensPayload(t *testing.T) {
	frame, err := encodeEvent(EventToolStart, ToolEvent{
		Agent:   "BillingAgent",
		Tool:    "get_recent_bills",
		Content: "Using tool: get_recent_bills",
	})
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]string
	if err := json.Unmarshal(frame, &got); err != nil {
		t.Fatal(err)
	}
	if got["type"] != EventToolStart {
		t.Errorf("type = %q", got["type"])
	}
	if got["agent"] != "BillingAgent" || got["tool"] != "get_recent_bills" {
		t.Errorf("payload not flattened: %v", got)
	}
}

func TestEncodeEventNilPayload(t *testing.T) {
	frame, err := encodeEvent(EventSystem, nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(frame) != `{"type":"system"}` {
		t.Errorf("frame = %s", frame)
	}
}

func TestEncodeEventRejectsNonObject(t *testing.T) {
	if _, err := encodeEvent("bad", []int{1, 2}); err == nil {
		t.Fatal("expected error for non-object payload")
	}
}
