package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mhollis/agentcare/internal/domain/ticket"
	"github.com/mhollis/agentcare/internal/port/agentruntime"
)

// Support tool names.
const (
	ToolCreateSupportTicket = "create_support_ticket"
	ToolGetWidgetLink       = "get_widget_link"
)

// actionLink describes one self-service action the support agent can
// hand the customer.
type actionLink struct {
	kind       string
	path       string
	buttonText string
	disclaimer string
}

var actionLinks = map[string]actionLink{
	"addon_purchase": {
		kind:       "Add-on Purchase",
		path:       "addons",
		buttonText: "Add to Plan",
		disclaimer: "Changes will be reflected in your next billing cycle",
	},
	"roaming_activation": {
		kind:       "Roaming Plan Activation",
		path:       "roaming",
		buttonText: "Activate Roaming",
		disclaimer: "Roaming plan will be activated immediately upon purchase",
	},
	"plan_upgrade": {
		kind:       "Plan Upgrade",
		path:       "plans/upgrade",
		buttonText: "Upgrade Plan",
		disclaimer: "Plan changes may extend your contract period",
	},
}

// SupportTools builds the support agent's tool set: ticket creation and
// self-service action links.
func SupportTools(tickets *TicketService) []Tool {
	return []Tool{
		{
			Spec: agentruntime.ToolSpec{
				Name:        ToolCreateSupportTicket,
				Description: "Create a support ticket for human agent follow-up",
				Parameters: json.RawMessage(`{
					"type": "object",
					"properties": {
						"issue_summary": {
							"type": "string",
							"description": "Brief summary of the customer's issue"
						},
						"priority": {
							"type": "string",
							"enum": ["low", "medium", "high"],
							"description": "Priority level, defaults to medium"
						}
					},
					"required": ["issue_summary"]
				}`),
			},
			Run: func(ctx context.Context, arguments string) (string, error) {
				var args struct {
					IssueSummary string `json:"issue_summary"`
					Priority     string `json:"priority"`
				}
				if err := json.Unmarshal([]byte(arguments), &args); err != nil {
					return "", fmt.Errorf("parse arguments: %w", err)
				}
				tk, err := tickets.Create(ctx, args.IssueSummary, ticket.Priority(args.Priority))
				if err != nil {
					return "", err
				}
				return toolJSON(map[string]any{
					"success":      true,
					"ticket_id":    tk.ID,
					"message":      fmt.Sprintf("Support ticket %s has been created successfully", tk.ID),
					"confirmation": "A human agent will reach out to you within 24 hours",
				})
			},
		},
		{
			Spec: agentruntime.ToolSpec{
				Name:        ToolGetWidgetLink,
				Description: "Generate a link for customer self-service actions",
				Parameters: json.RawMessage(`{
					"type": "object",
					"properties": {
						"action_type": {
							"type": "string",
							"enum": ["addon_purchase", "roaming_activation", "plan_upgrade"],
							"description": "Type of self-service action"
						},
						"item_id": {
							"type": "string",
							"description": "ID of the addon, roaming plan, or upgrade option"
						}
					},
					"required": ["action_type", "item_id"]
				}`),
			},
			Run: func(_ context.Context, arguments string) (string, error) {
				var args struct {
					ActionType string `json:"action_type"`
					ItemID     string `json:"item_id"`
				}
				if err := json.Unmarshal([]byte(arguments), &args); err != nil {
					return "", fmt.Errorf("parse arguments: %w", err)
				}
				link, ok := actionLinks[args.ActionType]
				if !ok {
					return toolJSON(map[string]any{
						"error":       "Invalid action type",
						"valid_types": []string{"addon_purchase", "roaming_activation", "plan_upgrade"},
					})
				}
				return toolJSON(map[string]any{
					"widget_type":    link.kind,
					"action_url":     fmt.Sprintf("https://meridian.example.com/demo/%s/%s", link.path, args.ItemID),
					"button_text":    link.buttonText,
					"disclaimer":     link.disclaimer,
					"display_format": "button",
				})
			},
		},
	}
}
