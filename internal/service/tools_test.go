package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/mhollis/agentcare/internal/adapter/demodata"
	"github.com/mhollis/agentcare/internal/adapter/fsartifact"
	"github.com/mhollis/agentcare/internal/domain"
	"github.com/mhollis/agentcare/internal/domain/marker"
)

func newTestRegistry(t *testing.T) (*ToolRegistry, *fsartifact.Store, *TicketService) {
	t.Helper()
	store, err := fsartifact.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	data := demodata.New()
	tickets := newTestTickets()
	reg := NewToolRegistry(nil).
		Register(BillingTools(data, store)...).
		Register(PlanTools(data)...).
		Register(SupportTools(tickets)...)
	return reg, store, tickets
}

func TestSpecsFilterAndOrder(t *testing.T) {
	reg, _, _ := newTestRegistry(t)

	specs := reg.Specs([]string{ToolGetUsageSummary, "no_such_tool", ToolGetRecentBills})
	if len(specs) != 2 {
		t.Fatalf("got %d specs", len(specs))
	}
	if specs[0].Name != ToolGetUsageSummary || specs[1].Name != ToolGetRecentBills {
		t.Errorf("order not preserved: %s, %s", specs[0].Name, specs[1].Name)
	}
}

func TestExecuteUnknownTool(t *testing.T) {
	reg, _, _ := newTestRegistry(t)

	_, err := reg.Execute(context.Background(), "no_such_tool", "{}")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGetRecentBillsProducesChartArtifact(t *testing.T) {
	reg, store, _ := newTestRegistry(t)
	ctx := context.Background()

	out, err := reg.Execute(ctx, ToolGetRecentBills, "{}")
	if err != nil {
		t.Fatal(err)
	}

	var res struct {
		RecentBills    []json.RawMessage `json:"recent_bills"`
		ChartReference string            `json:"chart_reference"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatal(err)
	}
	if len(res.RecentBills) != 3 {
		t.Errorf("got %d bills, want 3", len(res.RecentBills))
	}

	files := marker.Files(res.ChartReference)
	if len(files) != 1 {
		t.Fatalf("chart_reference carries no FILE marker: %q", res.ChartReference)
	}
	info, err := store.GetInfo(ctx, files[0].ID)
	if err != nil {
		t.Fatalf("chart artifact not registered: %v", err)
	}
	if info.FileType != "pdf" || info.SizeBytes == 0 {
		t.Errorf("unexpected artifact: %+v", info)
	}
}

func TestGetBillDetailsWritesCSV(t *testing.T) {
	reg, store, _ := newTestRegistry(t)
	ctx := context.Background()

	out, err := reg.Execute(ctx, ToolGetBillDetails, `{"bill_id": "CS-BILL-202411"}`)
	if err != nil {
		t.Fatal(err)
	}

	var res struct {
		BillID         string            `json:"bill_id"`
		TotalLineItems int               `json:"total_line_items"`
		FileReference  string            `json:"file_reference"`
		Preview        []json.RawMessage `json:"preview"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatal(err)
	}
	if res.BillID != "CS-BILL-202411" || res.TotalLineItems == 0 {
		t.Errorf("unexpected summary: %+v", res)
	}
	if len(res.Preview) > 10 {
		t.Errorf("preview has %d rows, want at most 10", len(res.Preview))
	}

	files := marker.Files(res.FileReference)
	if len(files) != 1 {
		t.Fatalf("no FILE marker in %q", res.FileReference)
	}
	f, err := os.Open(store.Path(files[0].ID))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != res.TotalLineItems+1 {
		t.Errorf("csv has %d rows, want %d plus header", len(records), res.TotalLineItems)
	}
	if records[0][0] != "date" || records[0][6] != "charge" {
		t.Errorf("unexpected header: %v", records[0])
	}
}

func TestGetBillDetailsRequiresBillID(t *testing.T) {
	reg, _, _ := newTestRegistry(t)

	if _, err := reg.Execute(context.Background(), ToolGetBillDetails, "{}"); err == nil {
		t.Fatal("expected error for missing bill_id")
	}
}

func TestAnalyzeHighCharges(t *testing.T) {
	reg, _, _ := newTestRegistry(t)

	out, err := reg.Execute(context.Background(), ToolAnalyzeHighCharges, `{"bill_id": "CS-BILL-202411"}`)
	if err != nil {
		t.Fatal(err)
	}
	var res struct {
		TotalAdditionalCharges float64 `json:"total_additional_charges"`
		RoamingTotal           float64 `json:"roaming_total"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatal(err)
	}
	if res.TotalAdditionalCharges != 156.78 {
		t.Errorf("total_additional_charges = %v, want 156.78", res.TotalAdditionalCharges)
	}
	if res.RoamingTotal != 89.50 {
		t.Errorf("roaming_total = %v, want 89.50", res.RoamingTotal)
	}
}

func TestCheckFeatureInclusion(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	ctx := context.Background()

	cases := []struct {
		feature string
		want    string
	}{
		{"EU roaming", "true"},
		{"Roaming outside EU", "false"},
		{"quantum tunneling", `"unknown"`},
	}
	for _, tc := range cases {
		out, err := reg.Execute(ctx, ToolCheckFeatureInclusion, `{"feature": "`+tc.feature+`"}`)
		if err != nil {
			t.Fatalf("%s: %v", tc.feature, err)
		}
		var res map[string]json.RawMessage
		if err := json.Unmarshal([]byte(out), &res); err != nil {
			t.Fatal(err)
		}
		if got := string(res["included"]); got != tc.want {
			t.Errorf("%s: included = %s, want %s", tc.feature, got, tc.want)
		}
	}
}

func TestCreateSupportTicketTool(t *testing.T) {
	reg, _, tickets := newTestRegistry(t)

	out, err := reg.Execute(context.Background(), ToolCreateSupportTicket, `{"issue_summary": "Cannot activate roaming"}`)
	if err != nil {
		t.Fatal(err)
	}
	var res struct {
		Success  bool   `json:"success"`
		TicketID string `json:"ticket_id"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatal(err)
	}
	if !res.Success || !strings.HasPrefix(res.TicketID, "CS-TICKET-") {
		t.Errorf("unexpected result: %+v", res)
	}
	if tickets.Count() != 1 {
		t.Errorf("registry holds %d tickets, want 1", tickets.Count())
	}
	tk, err := tickets.FindByID(context.Background(), res.TicketID)
	if err != nil {
		t.Fatal(err)
	}
	if string(tk.Priority) != "medium" {
		t.Errorf("priority = %q, want medium default", tk.Priority)
	}
}

func TestGetWidgetLink(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	ctx := context.Background()

	out, err := reg.Execute(ctx, ToolGetWidgetLink, `{"action_type": "roaming_activation", "item_id": "ROAM-USA-7"}`)
	if err != nil {
		t.Fatal(err)
	}
	var res map[string]string
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(res["action_url"], "/roaming/ROAM-USA-7") {
		t.Errorf("action_url = %q", res["action_url"])
	}

	out, err = reg.Execute(ctx, ToolGetWidgetLink, `{"action_type": "teleport", "item_id": "X"}`)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Invalid action type") {
		t.Errorf("unexpected result for bad action type: %s", out)
	}
}
