package agents

import "testing"

func TestRosterIsValid(t *testing.T) {
	roster := Roster()
	if len(roster) != 4 {
		t.Fatalf("roster has %d agents, want 4", len(roster))
	}
	for _, a := range roster {
		if err := a.Validate(); err != nil {
			t.Errorf("%s: %v", a.Name, err)
		}
	}
}

func TestRoutesMatchRoster(t *testing.T) {
	registered := make(map[string]bool)
	for _, a := range Roster() {
		registered[a.Name] = true
	}
	if err := Routes().Validate(registered); err != nil {
		t.Fatal(err)
	}
}

func TestRouteTopology(t *testing.T) {
	routes := Routes()

	allowed := [][2]string{
		{Triage, Billing},
		{Triage, Plan},
		{Triage, Support},
		{Billing, Triage},
		{Billing, Support},
		{Plan, Triage},
		{Plan, Support},
		{Support, Triage},
	}
	for _, edge := range allowed {
		if !routes.Allowed(edge[0], edge[1]) {
			t.Errorf("edge %s -> %s should be allowed", edge[0], edge[1])
		}
	}

	denied := [][2]string{
		{Billing, Plan},
		{Plan, Billing},
		{Support, Billing},
		{Support, Plan},
	}
	for _, edge := range denied {
		if routes.Allowed(edge[0], edge[1]) {
			t.Errorf("edge %s -> %s should not exist", edge[0], edge[1])
		}
	}
}

func TestNewRouterStartsAtTriage(t *testing.T) {
	r, err := NewRouter(0)
	if err != nil {
		t.Fatal(err)
	}
	if r.Active().Name != Triage {
		t.Errorf("initial agent = %q, want %q", r.Active().Name, Triage)
	}
}
