package service

import (
	"time"

	bookingModel "ruang/internal/domains/booking/model"
	"ruang/shared/constant"
)

const (
	StatusAvailable = "available"
	StatusBooked    = "booked"
	StatusPartial   = "partial"
)

// monthPadding returns the number of leading blank cells before day 1 in a
// Monday-first grid. Go numbers weekdays Sunday=0, so a Sunday-starting month
// pads six cells and a Monday-starting month pads none.
func monthPadding(firstOfMonth time.Time) int {
	return (int(firstOfMonth.Weekday()) + 6) % 7
}

// dayRooms collects the rooms with at least one booking on the given date,
// deduplicated in first-seen order. Dates compare as ISO date strings since
// bookings carry no time zone.
func dayRooms(bookings []bookingModel.Booking, date string) []string {
	seen := make(map[string]bool, len(bookings))
	rooms := []string{}

	for _, booking := range bookings {
		if booking.Date.Format(constant.DateOnlyFormat) != date {
			continue
		}

		if seen[booking.RoomID] {
			continue
		}

		seen[booking.RoomID] = true
		rooms = append(rooms, booking.RoomID)
	}

	return rooms
}

// classifyRoom derives a room's status from the booking set: booked when a
// booking falls on the reference date, partial when bookings exist on other
// dates only, available when the room has none at all.
func classifyRoom(roomID string, bookings []bookingModel.Booking, today string) string {
	hasAny := false

	for _, booking := range bookings {
		if booking.RoomID != roomID {
			continue
		}

		if booking.Date.Format(constant.DateOnlyFormat) == today {
			return StatusBooked
		}

		hasAny = true
	}

	if hasAny {
		return StatusPartial
	}

	return StatusAvailable
}
