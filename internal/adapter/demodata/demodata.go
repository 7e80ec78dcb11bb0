// Package demodata implements the data provider port with static demo
// account data for a single customer.
package demodata

import (
	"context"
	"sort"
	"time"

	"github.com/mhollis/agentcare/internal/port/dataprovider"
)

// Demo customer identity, shared with the ticket tooling.
const (
	CustomerID   = "CS-USER-12345"
	CustomerName = "John Smith"
	PhoneNumber  = "+44 7700 900123"
)

// Provider serves fixed demo data. All methods are pure reads and safe
// for concurrent use.
type Provider struct {
	now func() time.Time
}

// New creates a demo data provider.
func New() *Provider {
	return &Provider{now: time.Now}
}

// CurrentPlan returns the customer's active tariff.
func (p *Provider) CurrentPlan(_ context.Context) (dataprovider.CurrentPlan, error) {
	return dataprovider.CurrentPlan{
		PlanName:      "Meridian Ultimate Entertainment",
		MonthlyCost:   45.00,
		DataAllowance: "100GB",
		Minutes:       "Unlimited UK",
		Texts:         "Unlimited UK",
		IncludedFeatures: []string{
			"5G connectivity",
			"Spotify Premium",
			"YouTube Premium",
			"EU Roaming (25GB)",
			"Unlimited UK calls and texts",
		},
		ExcludedFeatures: []string{
			"International calls outside EU",
			"Premium rate numbers",
			"Roaming outside EU",
			"Data usage beyond 100GB",
			"Calls while roaming outside EU",
		},
		ContractEndDate: "2025-03-15",
	}, nil
}

// RoamingPlans returns the roaming pass catalog.
func (p *Provider) RoamingPlans(_ context.Context) ([]dataprovider.RoamingPlan, error) {
	return []dataprovider.RoamingPlan{
		{
			PlanID:         "ROAM-USA-7",
			Name:           "USA Roaming Pass - 7 Days",
			Price:          15.00,
			Duration:       "7 days",
			Data:           "5GB",
			Minutes:        "100 minutes to UK",
			Texts:          "Unlimited to UK",
			Countries:      []string{"USA", "Canada"},
			SavingsExample: "Save up to £75 vs pay-as-you-go roaming",
		},
		{
			PlanID:         "ROAM-USA-30",
			Name:           "USA Roaming Pass - 30 Days",
			Price:          40.00,
			Duration:       "30 days",
			Data:           "20GB",
			Minutes:        "500 minutes to UK",
			Texts:          "Unlimited to UK",
			Countries:      []string{"USA", "Canada"},
			SavingsExample: "Save up to £300 vs pay-as-you-go roaming",
		},
		{
			PlanID:         "ROAM-WORLD-7",
			Name:           "World Roaming Pass - 7 Days",
			Price:          25.00,
			Duration:       "7 days",
			Data:           "3GB",
			Minutes:        "50 minutes to UK",
			Texts:          "100 texts to UK",
			Countries:      []string{"Australia", "Japan", "India", "UAE", "Singapore", "Thailand"},
			SavingsExample: "Save up to £150 vs pay-as-you-go roaming",
		},
		{
			PlanID:         "ROAM-WORLD-30",
			Name:           "World Roaming Pass - 30 Days",
			Price:          70.00,
			Duration:       "30 days",
			Data:           "15GB",
			Minutes:        "300 minutes to UK",
			Texts:          "Unlimited to UK",
			Countries:      []string{"Australia", "Japan", "India", "UAE", "Singapore", "Thailand"},
			SavingsExample: "Save up to £500 vs pay-as-you-go roaming",
		},
	}, nil
}

// Addons returns the add-on catalog.
func (p *Provider) Addons(_ context.Context) ([]dataprovider.Addon, error) {
	return []dataprovider.Addon{
		{
			AddonID:     "ADDON-DATA-10",
			Name:        "Extra 10GB Data",
			Price:       10.00,
			Description: "Add 10GB to your monthly allowance",
			Duration:    "Until next billing cycle",
			Activation:  "Instant",
		},
		{
			AddonID:     "ADDON-INTL-100",
			Name:        "International Minutes - 100",
			Price:       15.00,
			Description: "100 minutes to call 50+ countries",
			Duration:    "30 days",
			Countries:   "USA, Canada, India, Australia, most of Europe",
			Activation:  "Instant",
		},
		{
			AddonID:     "ADDON-SECURE",
			Name:        "Meridian Security Shield",
			Price:       3.00,
			Description: "Protection from malware and phishing",
			Duration:    "Monthly subscription",
			Activation:  "Within 24 hours",
		},
		{
			AddonID:     "ADDON-FAMILY",
			Name:        "Family Data Share",
			Price:       5.00,
			Description: "Share your data with up to 4 family members",
			Duration:    "Monthly subscription",
			Activation:  "Instant",
		},
	}, nil
}

// Usage returns the current billing cycle snapshot.
func (p *Provider) Usage(_ context.Context) (dataprovider.UsageSummary, error) {
	return dataprovider.UsageSummary{
		BillingCycleStart: "2024-11-01",
		BillingCycleEnd:   "2024-11-30",
		DaysRemaining:     4,
		Data: dataprovider.UsageData{
			Used:         "87.5GB",
			Total:        "100GB",
			Percentage:   87.5,
			DailyAverage: "3.2GB",
		},
		Minutes: dataprovider.UsageMinutes{
			Used:              "342 minutes",
			Type:              "Unlimited UK",
			InternationalUsed: "45 minutes",
		},
		Texts: dataprovider.UsageTexts{
			Used: "156 texts",
			Type: "Unlimited UK",
		},
		Alerts: []string{
			"You've used 87.5% of your data allowance",
			"Consider adding extra data to avoid overage charges",
		},
	}, nil
}

// RecentBills returns the last three bills, newest first.
func (p *Provider) RecentBills(_ context.Context) ([]dataprovider.BillSummary, error) {
	base := p.now()
	return []dataprovider.BillSummary{
		{
			BillID:            "CS-BILL-202411",
			Period:            "November 2024",
			Date:              base.AddDate(0, 0, -30).Format("2006-01-02"),
			StandardCharges:   45.00,
			AdditionalCharges: 156.78,
			Total:             201.78,
			Breakdown: map[string]float64{
				"plan_charge":         45.00,
				"roaming_charges":     89.50,
				"international_calls": 45.28,
				"premium_services":    22.00,
			},
			HighChargeSummary: "3 calls and 2 data sessions while roaming in USA",
			Status:            "paid",
		},
		{
			BillID:            "CS-BILL-202410",
			Period:            "October 2024",
			Date:              base.AddDate(0, 0, -60).Format("2006-01-02"),
			StandardCharges:   45.00,
			AdditionalCharges: 234.50,
			Total:             279.50,
			Breakdown: map[string]float64{
				"plan_charge":         45.00,
				"roaming_charges":     178.00,
				"international_calls": 32.50,
				"data_overage":        24.00,
			},
			HighChargeSummary: "Multiple calls and data usage while roaming in Australia and Japan",
			Status:            "paid",
		},
		{
			BillID:            "CS-BILL-202409",
			Period:            "September 2024",
			Date:              base.AddDate(0, 0, -90).Format("2006-01-02"),
			StandardCharges:   45.00,
			AdditionalCharges: 12.50,
			Total:             57.50,
			Breakdown: map[string]float64{
				"plan_charge":         45.00,
				"international_calls": 12.50,
			},
			HighChargeSummary: "Normal usage with one international call",
			Status:            "paid",
		},
	}, nil
}

// BillLineItems returns the itemized events for a bill. Unknown bill ids
// fall through to the quiet September bill, matching the demo data's
// forgiving behavior.
func (p *Provider) BillLineItems(_ context.Context, billID string) ([]dataprovider.LineItem, error) {
	switch billID {
	case "CS-BILL-202411":
		return []dataprovider.LineItem{
			{Date: "2024-11-03", Time: "14:23:00", Type: "CALL", Description: "Call to UK mobile", Duration: "15 mins", Location: "USA", Charge: 12.50},
			{Date: "2024-11-03", Time: "18:45:00", Type: "CALL", Description: "Call to UK landline", Duration: "8 mins", Location: "USA", Charge: 8.00},
			{Date: "2024-11-04", Time: "09:15:00", Type: "DATA", Description: "Data usage 500MB", Duration: "N/A", Location: "USA", Charge: 15.00},
			{Date: "2024-11-05", Time: "11:30:00", Type: "CALL", Description: "Call to USA number", Duration: "22 mins", Location: "USA", Charge: 24.00},
			{Date: "2024-11-05", Time: "16:20:00", Type: "CALL", Description: "Call to UK mobile", Duration: "5 mins", Location: "USA", Charge: 5.00},
			{Date: "2024-11-06", Time: "10:00:00", Type: "DATA", Description: "Data usage 1GB", Duration: "N/A", Location: "USA", Charge: 25.00},
			{Date: "2024-11-08", Time: "13:45:00", Type: "CALL", Description: "Call to India", Duration: "30 mins", Location: "UK", Charge: 45.28},
			{Date: "2024-11-10", Time: "19:00:00", Type: "SERVICE", Description: "Premium SMS service", Duration: "N/A", Location: "UK", Charge: 22.00},
			{Date: "2024-11-01", Time: "00:00:00", Type: "PLAN", Description: "Monthly plan charge", Duration: "N/A", Location: "UK", Charge: 45.00, IncludedInPlan: true},
		}, nil
	case "CS-BILL-202410":
		return []dataprovider.LineItem{
			{Date: "2024-10-05", Time: "10:30:00", Type: "CALL", Description: "Call to UK mobile", Duration: "45 mins", Location: "Australia", Charge: 67.50},
			{Date: "2024-10-05", Time: "14:15:00", Type: "DATA", Description: "Data usage 2GB", Duration: "N/A", Location: "Australia", Charge: 50.00},
			{Date: "2024-10-08", Time: "09:00:00", Type: "CALL", Description: "Call to UK landline", Duration: "20 mins", Location: "Japan", Charge: 35.00},
			{Date: "2024-10-08", Time: "21:30:00", Type: "CALL", Description: "Call to local number", Duration: "10 mins", Location: "Japan", Charge: 15.00},
			{Date: "2024-10-10", Time: "15:45:00", Type: "DATA", Description: "Data usage 500MB", Duration: "N/A", Location: "Japan", Charge: 10.50},
			{Date: "2024-10-15", Time: "11:20:00", Type: "CALL", Description: "Call to Canada", Duration: "15 mins", Location: "UK", Charge: 32.50},
			{Date: "2024-10-20", Time: "08:00:00", Type: "DATA", Description: "Data overage 2.4GB", Duration: "N/A", Location: "UK", Charge: 24.00},
			{Date: "2024-10-01", Time: "00:00:00", Type: "PLAN", Description: "Monthly plan charge", Duration: "N/A", Location: "UK", Charge: 45.00, IncludedInPlan: true},
		}, nil
	default:
		return []dataprovider.LineItem{
			{Date: "2024-09-15", Time: "14:30:00", Type: "CALL", Description: "Call to USA", Duration: "5 mins", Location: "UK", Charge: 12.50},
			{Date: "2024-09-01", Time: "00:00:00", Type: "PLAN", Description: "Monthly plan charge", Duration: "N/A", Location: "UK", Charge: 45.00, IncludedInPlan: true},
			{Date: "2024-09-05", Time: "10:00:00", Type: "CALL", Description: "UK mobile calls", Duration: "250 mins", Location: "UK", Charge: 0.00, IncludedInPlan: true},
			{Date: "2024-09-10", Time: "15:00:00", Type: "DATA", Description: "Data usage 45GB", Duration: "N/A", Location: "UK", Charge: 0.00, IncludedInPlan: true},
		}, nil
	}
}

// AnalyzeHighCharges groups a bill's extra charges to identify the main
// cost drivers.
func (p *Provider) AnalyzeHighCharges(ctx context.Context, billID string) (dataprovider.HighChargeAnalysis, error) {
	items, err := p.BillLineItems(ctx, billID)
	if err != nil {
		return dataprovider.HighChargeAnalysis{}, err
	}

	var extra []dataprovider.LineItem
	for _, it := range items {
		if !it.IncludedInPlan {
			extra = append(extra, it)
		}
	}

	type key struct{ typ, loc string }
	groups := make(map[key]*dataprovider.ChargeGroup)
	var total, roaming, intlCalls float64
	for _, it := range extra {
		k := key{it.Type, it.Location}
		g, ok := groups[k]
		if !ok {
			g = &dataprovider.ChargeGroup{Type: it.Type, Location: it.Location}
			groups[k] = g
		}
		g.TotalCharge += it.Charge
		g.Count++

		total += it.Charge
		if it.Location != "UK" {
			roaming += it.Charge
		}
		if it.Type == "CALL" && it.Location == "UK" {
			intlCalls += it.Charge
		}
	}

	contributors := make([]dataprovider.ChargeGroup, 0, len(groups))
	for _, g := range groups {
		contributors = append(contributors, *g)
	}
	sort.Slice(contributors, func(i, j int) bool {
		if contributors[i].Type != contributors[j].Type {
			return contributors[i].Type < contributors[j].Type
		}
		return contributors[i].Location < contributors[j].Location
	})

	top := append([]dataprovider.LineItem(nil), extra...)
	sort.Slice(top, func(i, j int) bool { return top[i].Charge > top[j].Charge })
	if len(top) > 3 {
		top = top[:3]
	}

	return dataprovider.HighChargeAnalysis{
		TotalAdditionalCharges:  round2(total),
		MainContributors:        contributors,
		TopCharges:              top,
		RoamingTotal:            round2(roaming),
		InternationalCallsTotal: round2(intlCalls),
	}, nil
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
