package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrZeroDate    = errors.New("booking date is required")
	ErrNoteTooLong = errors.New("note cannot exceed 500 characters")
)

const MaxNoteLength = 500

// Day is a calendar date pinned to midnight UTC so that "the same day" is
// unambiguous regardless of the client's timezone.
type Day struct {
	value time.Time
}

func NewDay(t time.Time) (Day, error) {
	if t.IsZero() {
		return Day{}, ErrZeroDate
	}
	u := t.UTC()
	return Day{value: time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)}, nil
}

func (d Day) Time() time.Time {
	return d.value
}

func (d Day) String() string {
	return d.value.Format("2006-01-02")
}

func (d Day) Equal(other Day) bool {
	return d.value.Equal(other.value)
}

// SlotClaim snapshots the claimed window at booking time.
type SlotClaim struct {
	SlotID    uuid.UUID
	StartTime string
	EndTime   string
}

func (s SlotClaim) Label() string {
	return s.StartTime + "-" + s.EndTime
}

// LineItem is a priced snapshot of a catalog variant; it never re-reads the
// catalog after creation.
type LineItem struct {
	VariantID      uuid.UUID
	Name           string
	Unit           string
	Quantity       int
	UnitPriceMinor int64
}

func (li LineItem) TotalMinor() int64 {
	return int64(li.Quantity) * li.UnitPriceMinor
}

type Note struct {
	value string
}

func NewNote(value string) (Note, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) > MaxNoteLength {
		return Note{}, ErrNoteTooLong
	}
	return Note{value: trimmed}, nil
}

func (n Note) String() string {
	return n.value
}
