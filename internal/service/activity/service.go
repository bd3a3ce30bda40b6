package activity

import (
	"context"
	"database/sql"
	"fmt"

	"agencyhub-service/internal/domain/activity"
	wstypes "agencyhub-service/internal/domain/websocket"
	ws "agencyhub-service/internal/websocket"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service is the notification sink: it appends entries to the activity log
// and pushes them onto the live dashboard feed.
type Service struct {
	repo   activity.Repository
	hub    *ws.Hub
	logger *zap.Logger
}

func NewService(repo activity.Repository, hub *ws.Hub, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		hub:    hub,
		logger: logger,
	}
}

// Record appends one immutable entry and broadcasts it to the agency's
// connected dashboards. The broadcast is best-effort; only the append can
// fail the call.
func (s *Service) Record(ctx context.Context, agencyID, subAccountID, description string) error {
	e := &activity.Entry{
		ID:          uuid.NewString(),
		AgencyID:    agencyID,
		Description: description,
	}
	if subAccountID != "" {
		e.SubAccountID = sql.NullString{String: subAccountID, Valid: true}
	}

	if err := s.repo.Append(ctx, e); err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}

	if s.hub != nil {
		s.hub.Publish(agencyID, wstypes.NewMessage(wstypes.EventTypeActivityEntry, e))
	}

	return nil
}

// List returns a page of the agency activity log.
func (s *Service) List(ctx context.Context, agencyID string, filters *activity.ListFilters) (*activity.ListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}
	if filters.PageSize > 100 {
		filters.PageSize = 100
	}

	entries, total, err := s.repo.ListByAgency(ctx, agencyID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}

	totalPages := int(total) / filters.PageSize
	if int(total)%filters.PageSize > 0 {
		totalPages++
	}

	return &activity.ListResponse{
		Entries:    entries,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PageSize,
		TotalPages: totalPages,
	}, nil
}
