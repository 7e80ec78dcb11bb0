package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/mhollis/agentcare/internal/adapter/billchart"
	"github.com/mhollis/agentcare/internal/domain/marker"
	"github.com/mhollis/agentcare/internal/port/agentruntime"
	"github.com/mhollis/agentcare/internal/port/artifactstore"
	"github.com/mhollis/agentcare/internal/port/dataprovider"
)

// Billing tool names.
const (
	ToolGetRecentBills     = "get_recent_bills"
	ToolGetBillDetails     = "get_bill_details"
	ToolAnalyzeHighCharges = "analyze_high_charges"
)

var billIDParams = json.RawMessage(`{
	"type": "object",
	"properties": {
		"bill_id": {
			"type": "string",
			"description": "The bill ID, e.g. CS-BILL-202411"
		}
	},
	"required": ["bill_id"]
}`)

// BillingTools builds the billing agent's tool set. get_recent_bills and
// get_bill_details produce file artifacts and embed FILE markers in
// their results so the reply can reference them.
func BillingTools(data dataprovider.Provider, artifacts artifactstore.Store) []Tool {
	return []Tool{
		{
			Spec: agentruntime.ToolSpec{
				Name:        ToolGetRecentBills,
				Description: "Get the user's recent billing information with month-on-month chart",
				Parameters:  json.RawMessage(`{"type": "object", "properties": {}}`),
			},
			Run: func(ctx context.Context, _ string) (string, error) {
				return recentBills(ctx, data, artifacts)
			},
		},
		{
			Spec: agentruntime.ToolSpec{
				Name:        ToolGetBillDetails,
				Description: "Get detailed line items for a specific bill and create a CSV export",
				Parameters:  billIDParams,
			},
			Run: func(ctx context.Context, arguments string) (string, error) {
				billID, err := billIDArg(arguments)
				if err != nil {
					return "", err
				}
				return billDetails(ctx, data, artifacts, billID)
			},
		},
		{
			Spec: agentruntime.ToolSpec{
				Name:        ToolAnalyzeHighCharges,
				Description: "Analyze a bill to identify causes of high charges",
				Parameters:  billIDParams,
			},
			Run: func(ctx context.Context, arguments string) (string, error) {
				billID, err := billIDArg(arguments)
				if err != nil {
					return "", err
				}
				analysis, err := data.AnalyzeHighCharges(ctx, billID)
				if err != nil {
					return "", err
				}
				return toolJSON(analysis)
			},
		},
	}
}

func billIDArg(arguments string) (string, error) {
	var args struct {
		BillID string `json:"bill_id"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("parse arguments: %w", err)
	}
	if args.BillID == "" {
		return "", fmt.Errorf("bill_id is required")
	}
	return args.BillID, nil
}

func recentBills(ctx context.Context, data dataprovider.Provider, artifacts artifactstore.Store) (string, error) {
	bills, err := data.RecentBills(ctx)
	if err != nil {
		return "", err
	}

	points := make([]billchart.Point, 0, len(bills))
	for _, b := range bills {
		points = append(points, billchart.Point{Label: b.Period, Amount: b.Total})
	}

	fileID := artifacts.GenerateID("monthly_bill_trend", "pdf")
	if err := billchart.Render(artifacts.Path(fileID), "Monthly Bill Trend", points); err != nil {
		return "", fmt.Errorf("render trend chart: %w", err)
	}
	if err := artifacts.Save(ctx, fileID, "Month-on-month bill trend chart", map[string]any{
		"chart_type":  "bar_chart",
		"data_points": len(points),
		"format":      "pdf",
	}); err != nil {
		return "", err
	}

	return toolJSON(map[string]any{
		"recent_bills":    bills,
		"chart_reference": marker.FormatFile(fileID, "Monthly Bill Trend Chart"),
	})
}

func billDetails(ctx context.Context, data dataprovider.Provider, artifacts artifactstore.Store, billID string) (string, error) {
	items, err := data.BillLineItems(ctx, billID)
	if err != nil {
		return "", err
	}

	fileID := artifacts.GenerateID("bill_details_"+billID, "csv")
	if err := writeLineItemsCSV(artifacts.Path(fileID), items); err != nil {
		return "", fmt.Errorf("write csv: %w", err)
	}

	var totalCharges float64
	for _, it := range items {
		if it.Charge > 0 {
			totalCharges += it.Charge
		}
	}
	if err := artifacts.Save(ctx, fileID, fmt.Sprintf("Detailed line items for bill %s", billID), map[string]any{
		"bill_id":       billID,
		"row_count":     len(items),
		"total_charges": totalCharges,
	}); err != nil {
		return "", err
	}

	preview := items
	if len(preview) > 10 {
		preview = preview[:10]
	}
	return toolJSON(map[string]any{
		"bill_id":          billID,
		"total_line_items": len(items),
		"file_reference":   marker.FormatFile(fileID, fmt.Sprintf("Bill %s Line Items", billID)),
		"preview":          preview,
	})
}

func writeLineItemsCSV(path string, items []dataprovider.LineItem) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	records := [][]string{
		{"date", "time", "type", "description", "duration", "location", "charge", "included_in_plan"},
	}
	for _, it := range items {
		records = append(records, []string{
			it.Date,
			it.Time,
			it.Type,
			it.Description,
			it.Duration,
			it.Location,
			strconv.FormatFloat(it.Charge, 'f', 2, 64),
			strconv.FormatBool(it.IncludedInPlan),
		})
	}
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func toolJSON(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return string(b), nil
}
