package dto

import (
	"time"

	"github.com/google/uuid"

	"ruang/internal/domains/booking/model"
	"ruang/shared"
	"ruang/shared/constant"
	gDto "ruang/shared/dto"
	gModel "ruang/shared/model"
	"ruang/shared/timezone"
)

type CreateBookingRequest struct {
	RoomID      string `json:"room_id"      validate:"required"`
	Date        string `json:"date"         validate:"required,datetime=2006-01-02"`
	TimeFrom    string `json:"time_from"    validate:"required,hhmm"`
	TimeTo      string `json:"time_to"      validate:"required,hhmm"`
	Purpose     string `json:"purpose"      validate:"omitempty,max=500"`
	BookingType string `json:"booking_type" validate:"omitempty,oneof=priority internal external"`
}

func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	date, err := time.Parse(constant.DateOnlyFormat, c.Date)
	if err != nil {
		return model.Booking{}, err
	}

	timeFrom, err := time.Parse(constant.TimeFormat, c.TimeFrom)
	if err != nil {
		return model.Booking{}, err
	}

	timeTo, err := time.Parse(constant.TimeFormat, c.TimeTo)
	if err != nil {
		return model.Booking{}, err
	}

	bookingType := c.BookingType
	if bookingType == "" {
		bookingType = model.TypeInternal
	}

	return model.Booking{
		ID:          uuid.NewString(),
		RoomID:      c.RoomID,
		Date:        date,
		TimeFrom:    timeFrom,
		TimeTo:      timeTo,
		Purpose:     c.Purpose,
		BookingType: bookingType,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

// UpdateBookingRequest fields carrying db tags are applied verbatim; date and
// time fields are parsed by the service so the conflict re-check can run on
// the effective values first.
type UpdateBookingRequest struct {
	RoomID      string `db:"room_id"      json:"room_id"      validate:"omitempty"`
	Date        string `json:"date"         validate:"omitempty,datetime=2006-01-02"`
	TimeFrom    string `json:"time_from"    validate:"omitempty,hhmm"`
	TimeTo      string `json:"time_to"      validate:"omitempty,hhmm"`
	Purpose     string `db:"purpose"      json:"purpose"      validate:"omitempty,max=500"`
	BookingType string `db:"booking_type" json:"booking_type" validate:"omitempty,oneof=priority internal external"`
}

type BookingResponse struct {
	ID          string `json:"id"`
	RoomID      string `json:"room_id"`
	RoomName    string `json:"room_name,omitempty"`
	RoomColor   string `json:"room_color,omitempty"`
	Date        string `json:"date"`
	TimeFrom    string `json:"time_from"`
	TimeTo      string `json:"time_to"`
	Purpose     string `json:"purpose"`
	BookingType string `json:"booking_type"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.RoomName = model.RoomName
	r.RoomColor = model.RoomColor
	r.Date = model.Date.Format(constant.DateOnlyFormat)
	r.TimeFrom = model.TimeFrom.Format(constant.TimeFormat)
	r.TimeTo = model.TimeTo.Format(constant.TimeFormat)
	r.Purpose = model.Purpose
	r.BookingType = model.BookingType
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
