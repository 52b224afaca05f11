package model

import (
	"ruang/shared/model"
	"time"

	roomModel "ruang/internal/domains/room/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID          = "id"
	FieldRoomID      = "room_id"
	FieldDate        = "date"
	FieldTimeFrom    = "time_from"
	FieldTimeTo      = "time_to"
	FieldPurpose     = "purpose"
	FieldBookingType = "booking_type"
	FieldCreatedBy   = "created_by"
)

// Booking classification is a display/priority tag, not an access-control
// concept.
const (
	TypePriority = "priority"
	TypeInternal = "internal"
	TypeExternal = "external"
)

type Booking struct {
	ID          string    `db:"id"`
	RoomID      string    `db:"room_id"`
	Date        time.Time `db:"date"`
	TimeFrom    time.Time `db:"time_from"`
	TimeTo      time.Time `db:"time_to"`
	Purpose     string    `db:"purpose"`
	BookingType string    `db:"booking_type"`
	RoomName    string    `db:"room_name" table:"rooms" column:"name"`
	RoomColor   string    `db:"room_color" table:"rooms" column:"color"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "LEFT JOIN " + roomModel.TableName + " ON rooms.id = bookings.room_id"
}
