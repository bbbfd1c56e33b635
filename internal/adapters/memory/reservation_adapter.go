// Package memory provides in-memory adapters for repositories whose durable
// storage is out of scope. The reservation store is a deliberate stub:
// reservations are not persisted.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vision360/backend/internal/domain/entities"
	"github.com/vision360/backend/internal/domain/repositories"
	apperrors "github.com/vision360/backend/pkg/errors"
)

// ReservationAdapter implements ReservationRepository with a mutex-guarded
// map.
type ReservationAdapter struct {
	mu           sync.RWMutex
	reservations map[string]*entities.Reservation
}

// NewReservationAdapter creates an empty in-memory reservation store.
func NewReservationAdapter() repositories.ReservationRepository {
	return &ReservationAdapter{
		reservations: make(map[string]*entities.Reservation),
	}
}

// Create stores a reservation.
func (a *ReservationAdapter) Create(_ context.Context, reservation *entities.Reservation) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	cp := *reservation
	a.reservations[reservation.ID] = &cp
	return nil
}

// GetByID returns a reservation or a not-found error.
func (a *ReservationAdapter) GetByID(_ context.Context, id string) (*entities.Reservation, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	reservation, ok := a.reservations[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("reservation not found")
	}
	cp := *reservation
	return &cp, nil
}

// List returns all reservations ordered by creation time.
func (a *ReservationAdapter) List(_ context.Context) ([]*entities.Reservation, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]*entities.Reservation, 0, len(a.reservations))
	for _, reservation := range a.reservations {
		cp := *reservation
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
