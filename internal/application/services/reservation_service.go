package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vision360/backend/internal/domain/entities"
	"github.com/vision360/backend/internal/domain/repositories"
)

// ReservationService handles PMR transport reservations.
type ReservationService struct {
	repo repositories.ReservationRepository
}

// NewReservationService creates a new reservation service.
func NewReservationService(repo repositories.ReservationRepository) *ReservationService {
	return &ReservationService{repo: repo}
}

// Create stores a new reservation with a fresh ID and pending status.
func (s *ReservationService) Create(ctx context.Context, reservation *entities.Reservation) error {
	if reservation.ID == "" {
		reservation.ID = uuid.New().String()
	}
	if reservation.Status == "" {
		reservation.Status = entities.ReservationStatusPending
	}
	if reservation.CreatedAt.IsZero() {
		reservation.CreatedAt = time.Now().UTC()
	}
	return s.repo.Create(ctx, reservation)
}

// GetByID fetches a reservation by its identifier.
func (s *ReservationService) GetByID(ctx context.Context, id string) (*entities.Reservation, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all known reservations.
func (s *ReservationService) List(ctx context.Context) ([]*entities.Reservation, error) {
	return s.repo.List(ctx)
}
