package reservations

// Status values of a reservation.
const (
	StatusConfirmed = "confirmed"
	StatusSeated    = "seated"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no_show"
)

// ValidStatus reports whether the value is a known reservation status.
func ValidStatus(value string) bool {
	switch value {
	case StatusConfirmed, StatusSeated, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// CreateInput books a table slot. Date is YYYY-MM-DD, Time is HH:MM in
// the restaurant's local clock.
type CreateInput struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required"`
	Date            string `json:"date" validate:"required"`
	Time            string `json:"time" validate:"required"`
	Guests          int    `json:"guests" validate:"required,gte=1,lte=20"`
	SpecialRequests string `json:"special_requests"`
}

// UpdateStatusInput moves a reservation to a new status.
type UpdateStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// CancelInput cancels a reservation; the email must match the booking.
type CancelInput struct {
	Email string `json:"email" validate:"required,email"`
}
