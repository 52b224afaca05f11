package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"ruang/config"
	"ruang/infras/otel/mocks"
	"ruang/internal/domains/availability/service"
	bookingMocks "ruang/internal/domains/booking/mocks"
	bookingModel "ruang/internal/domains/booking/model"
	roomMocks "ruang/internal/domains/room/mocks"
	roomModel "ruang/internal/domains/room/model"
	"ruang/shared/cache"
	cacheMocks "ruang/shared/cache/mocks"
	"ruang/shared/constant"
)

func newAvailabilityService(t *testing.T) (service.Availability, *bookingMocks.MockBooking, *roomMocks.MockRoom) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockBookings := bookingMocks.NewMockBooking(ctrl)
	mockRooms := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	// The cache write runs on a goroutine after the request finishes.
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockBookings, mockRooms, cfg, mockCache, mocks.NewOtel())

	return svc, mockBookings, mockRooms
}

func bookingOn(roomID, date string) bookingModel.Booking {
	parsed, err := time.Parse(constant.DateOnlyFormat, date)
	if err != nil {
		panic(err)
	}

	return bookingModel.Booking{
		ID:     roomID + "-" + date,
		RoomID: roomID,
		Date:   parsed,
	}
}

func TestAvailabilityService_Calendar(t *testing.T) {
	t.Run("invalid month", func(t *testing.T) {
		svc, _, _ := newAvailabilityService(t)

		_, err := svc.Calendar(context.Background(), "not-a-month")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "month must be in YYYY-MM format")
	})

	t.Run("builds the month grid", func(t *testing.T) {
		svc, mockBookings, _ := newAvailabilityService(t)

		mockBookings.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]bookingModel.Booking{
				bookingOn("room-1", "2026-06-03"),
				bookingOn("room-2", "2026-06-03"),
				bookingOn("room-1", "2026-06-15"),
			}, nil)

		res, err := svc.Calendar(context.Background(), "2026-06")

		assert.NoError(t, err)
		assert.Equal(t, 2026, res.Year)
		assert.Equal(t, 6, res.Month)
		// June 2026 starts on a Monday.
		assert.Equal(t, 0, res.Padding)
		assert.Len(t, res.Days, 30)
		assert.Equal(t, []string{"room-1", "room-2"}, res.Days[2].RoomIDs)
		assert.Equal(t, []string{"room-1"}, res.Days[14].RoomIDs)
		assert.Empty(t, res.Days[0].RoomIDs)
	})
}

func TestAvailabilityService_RoomStatuses(t *testing.T) {
	t.Run("invalid date", func(t *testing.T) {
		svc, _, _ := newAvailabilityService(t)

		_, err := svc.RoomStatuses(context.Background(), "03-06-2026")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "date must be in YYYY-MM-DD format")
	})

	t.Run("classifies each room", func(t *testing.T) {
		svc, mockBookings, mockRooms := newAvailabilityService(t)

		mockRooms.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]roomModel.Room{
				{ID: "room-1", Name: "Aster"},
				{ID: "room-2", Name: "Bloom"},
				{ID: "room-3", Name: "Clover"},
			}, nil)
		mockBookings.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]bookingModel.Booking{
				bookingOn("room-1", "2026-06-03"),
				bookingOn("room-2", "2026-06-10"),
			}, nil)

		res, err := svc.RoomStatuses(context.Background(), "2026-06-03")

		assert.NoError(t, err)
		assert.Equal(t, "2026-06-03", res.Date)
		assert.Len(t, res.Rooms, 3)
		assert.Equal(t, service.StatusBooked, res.Rooms[0].Status)
		assert.Equal(t, service.StatusPartial, res.Rooms[1].Status)
		assert.Equal(t, service.StatusAvailable, res.Rooms[2].Status)
	})
}
