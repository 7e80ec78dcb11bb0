package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/mhollis/agentcare/internal/adapter/payloadcache"
	"github.com/mhollis/agentcare/internal/domain/ticket"
	"github.com/mhollis/agentcare/internal/domain/widget"
	"github.com/mhollis/agentcare/internal/port/dataprovider"
)

// timeNow is swapped in tests.
var timeNow = time.Now

// Storefront URLs surfaced as widget actions.
const (
	urlPlans   = "https://meridian.example.com/mobile/pay-monthly-contracts"
	urlRoaming = "https://meridian.example.com/mobile/global-roaming"
	urlExtras  = "https://meridian.example.com/mobile/extras"
	urlAccount = "https://meridian.example.com/my-account"
	urlSupport = "https://meridian.example.com/support"
	urlHelp    = "https://meridian.example.com/help-and-support"
)

// WidgetService resolves a widget kind plus id list into a fully
// populated display payload. Resolution never raises past this boundary:
// internal faults become "skip this widget", except support_ticket which
// degrades to a synthesized placeholder payload.
type WidgetService struct {
	data    dataprovider.Provider
	tickets *TicketService
	cache   *payloadcache.Cache
}

// NewWidgetService creates a resolver over the given data provider and
// ticket registry. cache may be nil to disable payload caching.
func NewWidgetService(data dataprovider.Provider, tickets *TicketService, cache *payloadcache.Cache) *WidgetService {
	return &WidgetService{data: data, tickets: tickets, cache: cache}
}

// Resolve returns the display payload for one widget reference, or
// ok=false when the widget should be skipped.
func (s *WidgetService) Resolve(ctx context.Context, kind widget.Kind, ids []string) (widget.Payload, bool) {
	// support_ticket reads the live registry and is never cached.
	if kind == widget.KindSupportTicket {
		return s.resolveSupportTicket(ctx, ids), true
	}

	var key string
	if s.cache != nil {
		key = payloadcache.Key(kind, ids)
		if p, ok := s.cache.Get(key); ok {
			return p, true
		}
	}

	p, err := s.resolveCatalog(ctx, kind, ids)
	if err != nil {
		slog.Warn("widget resolution failed", "kind", kind, "error", err)
		return widget.Payload{}, false
	}

	if s.cache != nil {
		s.cache.Set(key, p)
	}
	return p, true
}

// resolveCatalog handles the pure query-only kinds. The switch is
// exhaustive over the closed kind set minus support_ticket.
func (s *WidgetService) resolveCatalog(ctx context.Context, kind widget.Kind, ids []string) (widget.Payload, error) {
	switch kind {
	case widget.KindCurrentPlan:
		plan, err := s.data.CurrentPlan(ctx)
		if err != nil {
			return widget.Payload{}, err
		}
		return widget.Payload{
			Kind:  kind,
			Title: "Your Current Plan",
			Data:  plan,
			Actions: []widget.Action{
				{Label: "View Plan Details", URL: urlPlans, Kind: widget.ActionPrimary},
				{Label: "Upgrade Plan", URL: urlPlans, Kind: widget.ActionSecondary},
			},
		}, nil

	case widget.KindUsageSummary:
		usage, err := s.data.Usage(ctx)
		if err != nil {
			return widget.Payload{}, err
		}
		return widget.Payload{
			Kind:  kind,
			Title: "Your Current Usage",
			Data:  usage,
			Actions: []widget.Action{
				{Label: "View Detailed Usage", URL: urlAccount, Kind: widget.ActionPrimary},
				{Label: "Add Extra Data", URL: urlExtras, Kind: widget.ActionSecondary},
			},
		}, nil

	case widget.KindRoamingPlans:
		all, err := s.data.RoamingPlans(ctx)
		if err != nil {
			return widget.Payload{}, err
		}
		selected := filterRoaming(all, ids)
		sort.Slice(selected, func(i, j int) bool { return selected[i].Price < selected[j].Price })
		return widget.Payload{
			Kind:  kind,
			Title: "Recommended Roaming Plans",
			Data:  selected,
			Actions: []widget.Action{
				{Label: "View All Roaming Plans", URL: urlRoaming, Kind: widget.ActionPrimary},
				{Label: "Check Coverage", URL: urlRoaming, Kind: widget.ActionSecondary},
			},
		}, nil

	case widget.KindAddons:
		all, err := s.data.Addons(ctx)
		if err != nil {
			return widget.Payload{}, err
		}
		selected := filterAddons(all, ids)
		sort.Slice(selected, func(i, j int) bool { return selected[i].Price < selected[j].Price })
		return widget.Payload{
			Kind:  kind,
			Title: "Recommended Add-ons",
			Data:  selected,
			Actions: []widget.Action{
				{Label: "View All Extras", URL: urlExtras, Kind: widget.ActionPrimary},
				{Label: "Manage Add-ons", URL: urlExtras, Kind: widget.ActionSecondary},
			},
		}, nil

	case widget.KindSupportTicket:
		// Handled by the caller; keep the switch exhaustive.
		return widget.Payload{}, fmt.Errorf("support_ticket is not a catalog kind")
	}
	return widget.Payload{}, fmt.Errorf("unknown widget kind %q", kind)
}

// ticketDisplay is the support_ticket payload shape the client renders.
type ticketDisplay struct {
	TicketID          string `json:"ticket_id"`
	Status            string `json:"status"`
	Priority          string `json:"priority"`
	CreatedDate       string `json:"created_date"`
	Subject           string `json:"subject"`
	Description       string `json:"description"`
	ContactMethod     string `json:"contact_method"`
	EstimatedCallback string `json:"estimated_callback"`
	AssignedTeam      string `json:"assigned_team"`
	ReferenceNumber   string `json:"reference_number"`
}

// resolveSupportTicket looks up the referenced ticket; when the id is
// absent or unknown it degrades to a clearly synthesized placeholder
// rather than failing the whole message.
func (s *WidgetService) resolveSupportTicket(ctx context.Context, ids []string) widget.Payload {
	var display ticketDisplay

	if len(ids) > 0 && s.tickets != nil {
		if tk, err := s.tickets.FindByID(ctx, ids[0]); err == nil {
			display = ticketDisplay{
				TicketID:          tk.ID,
				Status:            titleCase(tk.Status),
				Priority:          titleCase(string(tk.Priority)),
				CreatedDate:       tk.CreatedAt.Format("2006-01-02 15:04"),
				Subject:           "Customer Support Request",
				Description:       tk.IssueSummary,
				ContactMethod:     "Phone call",
				EstimatedCallback: "Within 24 hours",
				AssignedTeam:      "Customer Care Team",
				ReferenceNumber:   tk.ID,
			}
		} else {
			slog.Warn("support ticket widget fell back to placeholder", "ticket_id", ids[0])
		}
	}

	if display.TicketID == "" {
		display = placeholderTicket()
	}

	return widget.Payload{
		Kind:  widget.KindSupportTicket,
		Title: "Support Ticket Created",
		Data:  display,
		Actions: []widget.Action{
			{Label: "Track Your Ticket", URL: urlSupport, Kind: widget.ActionPrimary},
			{Label: "Contact Support", URL: urlHelp, Kind: widget.ActionSecondary},
		},
	}
}

// placeholderTicket synthesizes a non-authoritative ticket payload for
// display when the registry has no matching record.
func placeholderTicket() ticketDisplay {
	now := timeNow()
	id := fmt.Sprintf("CS-%s-%04d", now.Format("20060102"), rand.Intn(9000)+1000)
	return ticketDisplay{
		TicketID:          id,
		Status:            titleCase(ticket.StatusOpen),
		Priority:          "Normal",
		CreatedDate:       now.Format("2006-01-02 15:04"),
		Subject:           "Customer Support Request",
		Description:       "Customer requested human assistance",
		ContactMethod:     "Phone call",
		EstimatedCallback: "Within 24 hours",
		AssignedTeam:      "Customer Care Team",
		ReferenceNumber:   id,
	}
}

func filterRoaming(all []dataprovider.RoamingPlan, ids []string) []dataprovider.RoamingPlan {
	if len(ids) == 0 {
		return append([]dataprovider.RoamingPlan(nil), all...)
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []dataprovider.RoamingPlan
	for _, p := range all {
		if want[p.PlanID] {
			out = append(out, p)
		}
	}
	return out
}

func filterAddons(all []dataprovider.Addon, ids []string) []dataprovider.Addon {
	if len(ids) == 0 {
		return append([]dataprovider.Addon(nil), all...)
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []dataprovider.Addon
	for _, a := range all {
		if want[a.AddonID] {
			out = append(out, a)
		}
	}
	return out
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
