package tui

import (
	"context"

	"github.com/naveenspark/sportex/pkg/client"
	"github.com/naveenspark/sportex/pkg/domain"
)

// API is the part of the backend client the views read from.
type API interface {
	SearchAthletes(ctx context.Context, f domain.AthleteFilter) (*domain.SearchResult[domain.Athlete], error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
	GetEvent(ctx context.Context, id string) (*domain.Event, error)
	RegisterForEvent(ctx context.Context, id string) (*domain.RegistrationStatus, error)
	CoachDashboard(ctx context.Context) (*domain.CoachDashboard, error)
	ListNotifications(ctx context.Context) ([]domain.Notification, error)
}

var _ API = (*client.Client)(nil)
