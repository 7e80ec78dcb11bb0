package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mhollis/agentcare/internal/port/agentruntime"
	"github.com/mhollis/agentcare/internal/port/dataprovider"
)

// Plan tool names.
const (
	ToolGetCurrentPlan        = "get_current_plan"
	ToolGetRoamingPlans       = "get_roaming_plans"
	ToolGetAvailableAddons    = "get_available_addons"
	ToolGetUsageSummary       = "get_usage_summary"
	ToolCheckFeatureInclusion = "check_feature_inclusion"
)

var noParams = json.RawMessage(`{"type": "object", "properties": {}}`)

// PlanTools builds the plan agent's tool set: catalog and usage queries
// plus the feature inclusion check.
func PlanTools(data dataprovider.Provider) []Tool {
	return []Tool{
		{
			Spec: agentruntime.ToolSpec{
				Name:        ToolGetCurrentPlan,
				Description: "Get the user's current mobile plan details",
				Parameters:  noParams,
			},
			Run: func(ctx context.Context, _ string) (string, error) {
				plan, err := data.CurrentPlan(ctx)
				if err != nil {
					return "", err
				}
				return toolJSON(plan)
			},
		},
		{
			Spec: agentruntime.ToolSpec{
				Name:        ToolGetRoamingPlans,
				Description: "Get available roaming plans for international travel",
				Parameters:  noParams,
			},
			Run: func(ctx context.Context, _ string) (string, error) {
				plans, err := data.RoamingPlans(ctx)
				if err != nil {
					return "", err
				}
				return toolJSON(plans)
			},
		},
		{
			Spec: agentruntime.ToolSpec{
				Name:        ToolGetAvailableAddons,
				Description: "Get available add-ons to enhance the current plan",
				Parameters:  noParams,
			},
			Run: func(ctx context.Context, _ string) (string, error) {
				addons, err := data.Addons(ctx)
				if err != nil {
					return "", err
				}
				return toolJSON(addons)
			},
		},
		{
			Spec: agentruntime.ToolSpec{
				Name:        ToolGetUsageSummary,
				Description: "Get current billing cycle usage summary",
				Parameters:  noParams,
			},
			Run: func(ctx context.Context, _ string) (string, error) {
				usage, err := data.Usage(ctx)
				if err != nil {
					return "", err
				}
				return toolJSON(usage)
			},
		},
		{
			Spec: agentruntime.ToolSpec{
				Name:        ToolCheckFeatureInclusion,
				Description: "Check if a specific feature or service is included in the user's plan",
				Parameters: json.RawMessage(`{
					"type": "object",
					"properties": {
						"feature": {
							"type": "string",
							"description": "The feature to check, e.g. 'roaming in USA' or 'international calls'"
						}
					},
					"required": ["feature"]
				}`),
			},
			Run: func(ctx context.Context, arguments string) (string, error) {
				var args struct {
					Feature string `json:"feature"`
				}
				if err := json.Unmarshal([]byte(arguments), &args); err != nil {
					return "", fmt.Errorf("parse arguments: %w", err)
				}
				if args.Feature == "" {
					return "", fmt.Errorf("feature is required")
				}
				plan, err := data.CurrentPlan(ctx)
				if err != nil {
					return "", err
				}
				return toolJSON(checkFeature(plan, args.Feature))
			},
		},
	}
}

// featureCheck is the result of a plan inclusion lookup. Included is a
// tri-state: true, false, or "unknown" when the feature matches neither
// list.
type featureCheck struct {
	Included       any    `json:"included"`
	Feature        string `json:"feature"`
	Details        string `json:"details,omitempty"`
	AdditionalInfo string `json:"additional_info"`
}

func checkFeature(plan dataprovider.CurrentPlan, feature string) featureCheck {
	needle := strings.ToLower(feature)
	for _, included := range plan.IncludedFeatures {
		if strings.Contains(strings.ToLower(included), needle) {
			return featureCheck{
				Included:       true,
				Feature:        feature,
				Details:        included,
				AdditionalInfo: "This feature is included in your current plan",
			}
		}
	}
	for _, excluded := range plan.ExcludedFeatures {
		if strings.Contains(strings.ToLower(excluded), needle) {
			return featureCheck{
				Included:       false,
				Feature:        feature,
				Details:        excluded,
				AdditionalInfo: "This feature is NOT included in your current plan. Additional charges apply.",
			}
		}
	}
	return featureCheck{
		Included:       "unknown",
		Feature:        feature,
		AdditionalInfo: "Unable to determine if this specific feature is included. Please check with customer service.",
	}
}
