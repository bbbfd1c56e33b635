package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vision360/backend/internal/adapters/memory"
	"github.com/vision360/backend/internal/application/services"
	"github.com/vision360/backend/internal/domain/entities"
	apperrors "github.com/vision360/backend/pkg/errors"
)

func TestReservationService_CreateAssignsIDStatusAndTimestamp(t *testing.T) {
	svc := services.NewReservationService(memory.NewReservationAdapter())

	reservation := &entities.Reservation{
		Origin:      "Gare de Lyon",
		Destination: "CDG Terminal 2",
		DepartureAt: time.Date(2026, 9, 12, 8, 30, 0, 0, time.UTC),
		Passenger:   entities.Passenger{Name: "A. Dupont", PMRProfile: "wheelchair"},
	}

	err := svc.Create(context.Background(), reservation)
	assert.NoError(t, err)
	assert.NotEmpty(t, reservation.ID)
	assert.Equal(t, entities.ReservationStatusPending, reservation.Status)
	assert.False(t, reservation.CreatedAt.IsZero())
}

func TestReservationService_GetByID(t *testing.T) {
	svc := services.NewReservationService(memory.NewReservationAdapter())

	reservation := &entities.Reservation{Origin: "A", Destination: "B"}
	assert.NoError(t, svc.Create(context.Background(), reservation))

	got, err := svc.GetByID(context.Background(), reservation.ID)
	assert.NoError(t, err)
	assert.Equal(t, "A", got.Origin)

	_, err = svc.GetByID(context.Background(), "does-not-exist")
	appErr, ok := err.(*apperrors.AppError)
	assert.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}

func TestReservationService_ListOrderedByCreation(t *testing.T) {
	svc := services.NewReservationService(memory.NewReservationAdapter())

	first := &entities.Reservation{Origin: "A", Destination: "B", CreatedAt: time.Now().UTC()}
	second := &entities.Reservation{Origin: "C", Destination: "D", CreatedAt: time.Now().UTC().Add(time.Second)}
	assert.NoError(t, svc.Create(context.Background(), first))
	assert.NoError(t, svc.Create(context.Background(), second))

	list, err := svc.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Origin)
	assert.Equal(t, "C", list[1].Origin)
}
