package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/vision360/backend/internal/domain/entities"
	apperrors "github.com/vision360/backend/pkg/errors"
)

// ReservationService defines the reservation operations used by the handler.
type ReservationService interface {
	Create(ctx context.Context, reservation *entities.Reservation) error
	GetByID(ctx context.Context, id string) (*entities.Reservation, error)
	List(ctx context.Context) ([]*entities.Reservation, error)
}

// ReservationHandler handles PMR transport reservation requests.
type ReservationHandler struct {
	service ReservationService
}

// NewReservationHandler creates a new reservation handler.
func NewReservationHandler(service ReservationService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

type reservationCreateRequest struct {
	Origin      string             `json:"origin"`
	Destination string             `json:"destination"`
	DepartureAt time.Time          `json:"datetime_utc"`
	Passenger   entities.Passenger `json:"passenger"`
}

// CreateReservation handles POST /api/reservations
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var payload reservationCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if strings.TrimSpace(payload.Origin) == "" {
		respondWithError(w, http.StatusBadRequest, "origin is required")
		return
	}
	if strings.TrimSpace(payload.Destination) == "" {
		respondWithError(w, http.StatusBadRequest, "destination is required")
		return
	}
	if payload.DepartureAt.IsZero() {
		respondWithError(w, http.StatusBadRequest, "datetime_utc is required")
		return
	}
	if strings.TrimSpace(payload.Passenger.Name) == "" {
		respondWithError(w, http.StatusBadRequest, "passenger name is required")
		return
	}

	reservation := &entities.Reservation{
		Origin:      payload.Origin,
		Destination: payload.Destination,
		DepartureAt: payload.DepartureAt,
		Passenger:   payload.Passenger,
	}

	if err := h.service.Create(r.Context(), reservation); err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to create reservation")
		return
	}

	respondWithJSON(w, http.StatusCreated, reservation)
}

// GetReservation handles GET /api/reservations/{id}
func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "reservation ID is required")
		return
	}

	reservation, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok && appErr.Type == apperrors.ErrorTypeNotFound {
			respondWithError(w, http.StatusNotFound, appErr.Message)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, reservation)
}

// ListReservations handles GET /api/reservations
func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.service.List(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list reservations")
		return
	}

	respondWithJSON(w, http.StatusOK, reservations)
}
