package service

import (
	"context"

	"github.com/helpdesk-portal/helpdesk-service/internal/model"
	"github.com/helpdesk-portal/helpdesk-service/internal/policy"
)

// DashboardStats is the role-scoped summary behind the dashboard widgets.
type DashboardStats struct {
	StatusCounts
	TotalTickets      int64 `json:"totalTickets"`
	UnassignedTickets int64 `json:"unassignedTickets"`
}

// Dashboard computes the stats over the actor's visible tickets, with no
// extra filters applied.
func (s *TicketService) Dashboard(ctx context.Context, actor policy.Actor) (*DashboardStats, error) {
	counts, err := s.statusCounts(ctx, actor, TicketFilter{})
	if err != nil {
		return nil, err
	}

	tx := s.db.WithContext(ctx).Model(&model.Ticket{}).Where("assigned_to_id IS NULL")
	if q, args := policy.TicketVisibility(actor); q != "" {
		tx = tx.Where(q, args...)
	}
	var unassigned int64
	if err := tx.Count(&unassigned).Error; err != nil {
		return nil, err
	}

	return &DashboardStats{
		StatusCounts:      *counts,
		TotalTickets:      counts.Total(),
		UnassignedTickets: unassigned,
	}, nil
}
