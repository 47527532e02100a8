package model

import (
	"rental/shared/model"
	"time"

	"github.com/google/uuid"
)

const (
	TableName  = "reservation_entries"
	EntityName = "reservation"

	FieldID         = "id"
	FieldPropertyID = "property_id"
	FieldKind       = "kind"
	FieldStatus     = "status"
	FieldStartDate  = "start_date"
	FieldEndDate    = "end_date"
	FieldVersion    = "version"
	FieldGuestID    = "guest_id"
	FieldGuestName  = "guest_name"
	FieldGuestEmail = "guest_email"
	FieldGuestPhone = "guest_phone"
)

type Kind string

const (
	KindBooking Kind = "BOOKING"
	KindBlock   Kind = "BLOCK"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusCanceled Status = "CANCELED"
)

// GuestInfo is the contact data carried by a booking.
type GuestInfo struct {
	Name  string
	Email string
	Phone string
}

// Entry is one reservation on a property calendar, either a guest booking or
// an owner block. Guest fields are only set on bookings and blocks never
// leave the ACTIVE status.
type Entry struct {
	ID         string    `db:"id"`
	PropertyID string    `db:"property_id"`
	Kind       Kind      `db:"kind"`
	Status     Status    `db:"status"`
	StartDate  time.Time `db:"start_date"`
	EndDate    time.Time `db:"end_date"`
	Version    int64     `db:"version"`
	GuestID    *string   `db:"guest_id"`
	GuestName  *string   `db:"guest_name"`
	GuestEmail *string   `db:"guest_email"`
	GuestPhone *string   `db:"guest_phone"`
	model.Metadata
}

func NewBooking(propertyID, guestID string, interval Interval, guest GuestInfo, actor string, now time.Time) Entry {
	return Entry{
		ID:         uuid.NewString(),
		PropertyID: propertyID,
		Kind:       KindBooking,
		Status:     StatusActive,
		StartDate:  interval.Start,
		EndDate:    interval.End,
		GuestID:    &guestID,
		GuestName:  optional(guest.Name),
		GuestEmail: optional(guest.Email),
		GuestPhone: optional(guest.Phone),
		Metadata:   model.NewMetadata(actor, now),
	}
}

func NewBlock(propertyID string, interval Interval, actor string, now time.Time) Entry {
	return Entry{
		ID:         uuid.NewString(),
		PropertyID: propertyID,
		Kind:       KindBlock,
		Status:     StatusActive,
		StartDate:  interval.Start,
		EndDate:    interval.End,
		Metadata:   model.NewMetadata(actor, now),
	}
}

func (e *Entry) Interval() Interval {
	return Interval{Start: Date(e.StartDate), End: Date(e.EndDate)}
}

func (e *Entry) SetInterval(interval Interval) {
	e.StartDate = interval.Start
	e.EndDate = interval.End
}

// SetGuest replaces the contact fields. The guest identity never changes.
func (e *Entry) SetGuest(guest GuestInfo) {
	e.GuestName = optional(guest.Name)
	e.GuestEmail = optional(guest.Email)
	e.GuestPhone = optional(guest.Phone)
}

func (e *Entry) IsActive() bool {
	return e.Status == StatusActive
}

func (e *Entry) IsBooking() bool {
	return e.Kind == KindBooking
}

// IsGuest reports whether userID is the guest a booking was made for.
func (e *Entry) IsGuest(userID string) bool {
	return e.GuestID != nil && *e.GuestID == userID
}

// Clone returns a copy that shares no pointers with e.
func (e Entry) Clone() Entry {
	e.GuestID = clonePtr(e.GuestID)
	e.GuestName = clonePtr(e.GuestName)
	e.GuestEmail = clonePtr(e.GuestEmail)
	e.GuestPhone = clonePtr(e.GuestPhone)

	return e
}

func clonePtr(value *string) *string {
	if value == nil {
		return nil
	}

	v := *value

	return &v
}

func optional(value string) *string {
	if value == "" {
		return nil
	}

	return &value
}

// Value dereferences an optional column, returning "" for NULL.
func Value(value *string) string {
	if value == nil {
		return ""
	}

	return *value
}
