package request

import (
	"strings"
	"time"

	"venuehub-api/internal/domain/booking"
	"venuehub-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type BookingLineRequest struct {
	VariantID uuid.UUID `json:"variantId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
}

type CreateBookingRequest struct {
	OfferingID    uuid.UUID            `json:"offeringId" binding:"required"`
	Date          string               `json:"date" binding:"required"`
	SlotID        *uuid.UUID           `json:"slotId,omitempty"`
	Note          *string              `json:"note,omitempty"`
	Lines         []BookingLineRequest `json:"lines" binding:"required,min=1,dive"`
	ExpectedTotal int64                `json:"expectedTotal" binding:"required"`
}

// ToInput parses the wire date ("2006-01-02") and maps lines into the
// command input.
func (r CreateBookingRequest) ToInput() (commands.CreateBookingInput, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return commands.CreateBookingInput{}, err
	}

	lines := make([]booking.RequestedLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = booking.RequestedLine{
			VariantID: l.VariantID,
			Quantity:  l.Quantity,
		}
	}

	var note string
	if r.Note != nil {
		note = strings.TrimSpace(*r.Note)
	}

	return commands.CreateBookingInput{
		OfferingID:    r.OfferingID,
		Date:          date,
		SlotID:        r.SlotID,
		Lines:         lines,
		ExpectedTotal: r.ExpectedTotal,
		Note:          note,
	}, nil
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
