package repositories

import (
	"context"

	"github.com/vision360/backend/internal/domain/entities"
)

// ReservationRepository defines storage operations for PMR transport
// reservations.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *entities.Reservation) error
	GetByID(ctx context.Context, id string) (*entities.Reservation, error)
	List(ctx context.Context) ([]*entities.Reservation, error)
}
