// Package dataprovider defines the query-only port for customer account
// data: plan, catalogs, usage and billing. All calls are synchronous
// reads; nothing here mutates.
package dataprovider

import "context"

// CurrentPlan is the customer's active tariff snapshot.
type CurrentPlan struct {
	PlanName         string   `json:"plan_name"`
	MonthlyCost      float64  `json:"monthly_cost"`
	DataAllowance    string   `json:"data_allowance"`
	Minutes          string   `json:"minutes"`
	Texts            string   `json:"texts"`
	IncludedFeatures []string `json:"included_features"`
	ExcludedFeatures []string `json:"excluded_features"`
	ContractEndDate  string   `json:"contract_end_date"`
}

// RoamingPlan is one entry of the roaming pass catalog.
type RoamingPlan struct {
	PlanID         string   `json:"plan_id"`
	Name           string   `json:"name"`
	Price          float64  `json:"price"`
	Duration       string   `json:"duration"`
	Data           string   `json:"data"`
	Minutes        string   `json:"minutes"`
	Texts          string   `json:"texts"`
	Countries      []string `json:"countries"`
	SavingsExample string   `json:"savings_example"`
}

// Addon is one entry of the add-on catalog.
type Addon struct {
	AddonID     string  `json:"addon_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Duration    string  `json:"duration"`
	Countries   string  `json:"countries,omitempty"`
	Activation  string  `json:"activation"`
}

// UsageSummary is the current billing cycle usage snapshot.
type UsageSummary struct {
	BillingCycleStart string       `json:"billing_cycle_start"`
	BillingCycleEnd   string       `json:"billing_cycle_end"`
	DaysRemaining     int          `json:"days_remaining"`
	Data              UsageData    `json:"data"`
	Minutes           UsageMinutes `json:"minutes"`
	Texts             UsageTexts   `json:"texts"`
	Alerts            []string     `json:"alerts"`
}

// UsageData is the data portion of a usage summary.
type UsageData struct {
	Used         string  `json:"used"`
	Total        string  `json:"total"`
	Percentage   float64 `json:"percentage"`
	DailyAverage string  `json:"daily_average"`
}

// UsageMinutes is the voice portion of a usage summary.
type UsageMinutes struct {
	Used              string `json:"used"`
	Type              string `json:"type"`
	InternationalUsed string `json:"international_used"`
}

// UsageTexts is the messaging portion of a usage summary.
type UsageTexts struct {
	Used string `json:"used"`
	Type string `json:"type"`
}

// BillSummary is one recent bill with its charge breakdown.
type BillSummary struct {
	BillID            string             `json:"bill_id"`
	Period            string             `json:"period"`
	Date              string             `json:"date"`
	StandardCharges   float64            `json:"standard_charges"`
	AdditionalCharges float64            `json:"additional_charges"`
	Total             float64            `json:"total"`
	Breakdown         map[string]float64 `json:"breakdown"`
	HighChargeSummary string             `json:"high_charge_summary"`
	Status            string             `json:"status"`
}

// LineItem is one billed event on a bill.
type LineItem struct {
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	Type           string  `json:"type"`
	Description    string  `json:"description"`
	Duration       string  `json:"duration"`
	Location       string  `json:"location"`
	Charge         float64 `json:"charge"`
	IncludedInPlan bool    `json:"included_in_plan"`
}

// ChargeGroup aggregates extra charges by type and location.
type ChargeGroup struct {
	Type        string  `json:"type"`
	Location    string  `json:"location"`
	TotalCharge float64 `json:"total_charge"`
	Count       int     `json:"count"`
}

// HighChargeAnalysis identifies the main causes of a high bill.
type HighChargeAnalysis struct {
	TotalAdditionalCharges  float64       `json:"total_additional_charges"`
	MainContributors        []ChargeGroup `json:"main_contributors"`
	TopCharges              []LineItem    `json:"top_3_charges"`
	RoamingTotal            float64       `json:"roaming_total"`
	InternationalCallsTotal float64       `json:"international_calls_total"`
}

// Provider exposes the fixed query interface over the backing account
// data. Implementations must be safe for concurrent use.
type Provider interface {
	CurrentPlan(ctx context.Context) (CurrentPlan, error)
	RoamingPlans(ctx context.Context) ([]RoamingPlan, error)
	Addons(ctx context.Context) ([]Addon, error)
	Usage(ctx context.Context) (UsageSummary, error)
	RecentBills(ctx context.Context) ([]BillSummary, error)
	BillLineItems(ctx context.Context, billID string) ([]LineItem, error)
	AnalyzeHighCharges(ctx context.Context, billID string) (HighChargeAnalysis, error)
}
