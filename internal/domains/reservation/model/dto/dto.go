package dto

import (
	"rental/internal/domains/reservation/model"
	"rental/shared/constant"
	gDto "rental/shared/dto"
)

type CreateBookingRequest struct {
	PropertyID string `json:"property_id" validate:"required,uuid"`
	StartDate  string `json:"start_date"  validate:"required,calendardate"`
	EndDate    string `json:"end_date"    validate:"required,calendardate"`
	GuestName  string `json:"guest_name"  validate:"omitempty,max=255"`
	GuestEmail string `json:"guest_email" validate:"omitempty,email,max=255"`
	GuestPhone string `json:"guest_phone" validate:"omitempty,max=255"`
}

func (r *CreateBookingRequest) Dates() (string, string) {
	return r.StartDate, r.EndDate
}

func (r *CreateBookingRequest) Guest() model.GuestInfo {
	return model.GuestInfo{Name: r.GuestName, Email: r.GuestEmail, Phone: r.GuestPhone}
}

// UpdateBookingRequest replaces the dates and contact fields of a booking.
// Version, when sent, must match the stored version.
type UpdateBookingRequest struct {
	StartDate  string `json:"start_date"  validate:"required,calendardate"`
	EndDate    string `json:"end_date"    validate:"required,calendardate"`
	GuestName  string `json:"guest_name"  validate:"omitempty,max=255"`
	GuestEmail string `json:"guest_email" validate:"omitempty,email,max=255"`
	GuestPhone string `json:"guest_phone" validate:"omitempty,max=255"`
	Version    *int64 `json:"version"     validate:"omitempty,min=0"`
}

func (r *UpdateBookingRequest) Dates() (string, string) {
	return r.StartDate, r.EndDate
}

func (r *UpdateBookingRequest) Guest() model.GuestInfo {
	return model.GuestInfo{Name: r.GuestName, Email: r.GuestEmail, Phone: r.GuestPhone}
}

type FindBookingRequest struct {
	PropertyID string `json:"property_id" validate:"required,uuid"`
	StartDate  string `json:"start_date"  validate:"required,calendardate"`
	EndDate    string `json:"end_date"    validate:"required,calendardate"`
}

func (r *FindBookingRequest) Dates() (string, string) {
	return r.StartDate, r.EndDate
}

type CreateBlockRequest struct {
	PropertyID string `json:"property_id" validate:"required,uuid"`
	StartDate  string `json:"start_date"  validate:"required,calendardate"`
	EndDate    string `json:"end_date"    validate:"required,calendardate"`
}

func (r *CreateBlockRequest) Dates() (string, string) {
	return r.StartDate, r.EndDate
}

type UpdateBlockRequest struct {
	StartDate string `json:"start_date" validate:"required,calendardate"`
	EndDate   string `json:"end_date"   validate:"required,calendardate"`
	Version   *int64 `json:"version"    validate:"omitempty,min=0"`
}

func (r *UpdateBlockRequest) Dates() (string, string) {
	return r.StartDate, r.EndDate
}

type BookingResponse struct {
	ID         string `json:"id"`
	PropertyID string `json:"property_id"`
	OwnerID    string `json:"owner_id"`
	GuestID    string `json:"guest_id"`
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
	GuestPhone string `json:"guest_phone"`
	Status     string `json:"status"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Version    int64  `json:"version"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(entry model.Entry, ownerID string) {
	r.ID = entry.ID
	r.PropertyID = entry.PropertyID
	r.OwnerID = ownerID
	r.GuestID = model.Value(entry.GuestID)
	r.GuestName = model.Value(entry.GuestName)
	r.GuestEmail = model.Value(entry.GuestEmail)
	r.GuestPhone = model.Value(entry.GuestPhone)
	r.Status = string(entry.Status)
	r.StartDate = entry.StartDate.Format(constant.CalendarFormat)
	r.EndDate = entry.EndDate.Format(constant.CalendarFormat)
	r.Version = entry.Version
	r.Metadata.FromModel(entry.Metadata)
}

// CanBeReadBy reports whether userID is the guest or the property owner.
func (r *BookingResponse) CanBeReadBy(userID string) bool {
	return userID != constant.Empty && (r.GuestID == userID || r.OwnerID == userID)
}

type BlockResponse struct {
	ID         string `json:"id"`
	PropertyID string `json:"property_id"`
	OwnerID    string `json:"owner_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Version    int64  `json:"version"`
	gDto.Metadata
}

func (r *BlockResponse) FromModel(entry model.Entry, ownerID string) {
	r.ID = entry.ID
	r.PropertyID = entry.PropertyID
	r.OwnerID = ownerID
	r.StartDate = entry.StartDate.Format(constant.CalendarFormat)
	r.EndDate = entry.EndDate.Format(constant.CalendarFormat)
	r.Version = entry.Version
	r.Metadata.FromModel(entry.Metadata)
}

type GetBlocksResponse struct {
	Blocks []BlockResponse `json:"blocks"`
}

func (r *GetBlocksResponse) FromModels(entries []model.Entry, ownerID string) {
	r.Blocks = make([]BlockResponse, len(entries))
	for i, entry := range entries {
		r.Blocks[i].FromModel(entry, ownerID)
	}
}
