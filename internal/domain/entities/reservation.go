package entities

import "time"

// Reservation statuses.
const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCancelled = "cancelled"
)

// Passenger identifies who travels and which PMR profile applies
// (wheelchair, cane, visual impairment, ...).
type Passenger struct {
	Name       string `json:"name"`
	PMRProfile string `json:"pmr_profile,omitempty"`
}

// Reservation is an adapted-transport booking. Storage is an in-memory stub;
// reservations do not survive a restart.
type Reservation struct {
	ID          string    `json:"id"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	DepartureAt time.Time `json:"datetime_utc"`
	Passenger   Passenger `json:"passenger"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
