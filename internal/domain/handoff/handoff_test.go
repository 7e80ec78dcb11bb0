package handoff

import (
	"errors"
	"testing"

	"github.com/mhollis/agentcare/internal/domain"
)

func TestTableAllowed(t *testing.T) {
	tbl := NewTable().
		Add("Alex", "BillingAgent", "billing issues").
		Add("BillingAgent", "Alex", "analysis complete")

	if !tbl.Allowed("Alex", "BillingAgent") {
		t.Error("expected Alex -> BillingAgent to be allowed")
	}
	if !tbl.Allowed("BillingAgent", "Alex") {
		t.Error("expected BillingAgent -> Alex to be allowed")
	}
	if tbl.Allowed("BillingAgent", "PlanAgent") {
		t.Error("BillingAgent -> PlanAgent was never added")
	}
	if tbl.Allowed("PlanAgent", "Alex") {
		t.Error("unknown source should have no targets")
	}
}

func TestTableAddMany(t *testing.T) {
	tbl := NewTable().AddMany("Alex", map[string]string{
		"BillingAgent": "billing",
		"PlanAgent":    "plans",
		"SupportAgent": "escalation",
	})

	if got := len(tbl.Targets("Alex")); got != 3 {
		t.Fatalf("expected 3 targets, got %d", got)
	}
	for _, target := range []string{"BillingAgent", "PlanAgent", "SupportAgent"} {
		if !tbl.Allowed("Alex", target) {
			t.Errorf("expected Alex -> %s to be allowed", target)
		}
	}
}

func TestTableNotSymmetric(t *testing.T) {
	tbl := NewTable().Add("A", "B", "forward only")

	if !tbl.Allowed("A", "B") {
		t.Error("expected A -> B")
	}
	if tbl.Allowed("B", "A") {
		t.Error("edges are directed; B -> A must not be implied")
	}
}

func TestTableValidate(t *testing.T) {
	registered := map[string]bool{"A": true, "B": true}

	if err := NewTable().Add("A", "B", "").Validate(registered); err != nil {
		t.Fatalf("valid table rejected: %v", err)
	}

	err := NewTable().Add("A", "C", "").Validate(registered)
	if err == nil {
		t.Fatal("expected error for unregistered target")
	}
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}

	err = NewTable().Add("X", "A", "").Validate(registered)
	if err == nil {
		t.Fatal("expected error for unregistered source")
	}
}

func TestTargetsCarryRationale(t *testing.T) {
	tbl := NewTable().Add("Alex", "SupportAgent", "customer wants a human")

	edges := tbl.Targets("Alex")
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(edges))
	}
	if edges[0].Rationale != "customer wants a human" {
		t.Errorf("rationale lost: %q", edges[0].Rationale)
	}
}
