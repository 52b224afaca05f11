package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"ruang/config"
	kafkaMocks "ruang/infras/kafka/mocks"
	"ruang/infras/otel/mocks"
	bookingMocks "ruang/internal/domains/booking/mocks"
	"ruang/internal/domains/booking/model"
	"ruang/internal/domains/booking/model/dto"
	"ruang/internal/domains/booking/service"
	roomMocks "ruang/internal/domains/room/mocks"
	cacheMocks "ruang/shared/cache/mocks"
	"ruang/shared/constant"
	gDto "ruang/shared/dto"
)

func mustParse(layout, value string) time.Time {
	parsed, err := time.Parse(layout, value)
	if err != nil {
		panic(err)
	}

	return parsed
}

func existingBooking(id, roomID, date, from, to string) model.Booking {
	return model.Booking{
		ID:       id,
		RoomID:   roomID,
		Date:     mustParse(constant.DateOnlyFormat, date),
		TimeFrom: mustParse(constant.TimeFormat, from),
		TimeTo:   mustParse(constant.TimeFormat, to),
	}
}

func newBookingService(t *testing.T) (service.Booking, *bookingMocks.MockBooking, *roomMocks.MockRoom) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Topics.BookingEvents = "booking-events"

	// Cache invalidation and event publishing run on goroutines after the
	// request finishes, so the test cannot pin down their call counts.
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockKafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockRoomRepo, cfg, mockCache, mockOtel, mockKafka)

	return svc, mockRepo, mockRoomRepo
}

func TestBookingService_Create(t *testing.T) {
	validReq := dto.CreateBookingRequest{
		RoomID:   "room-1",
		Date:     "2026-03-10",
		TimeFrom: "10:00",
		TimeTo:   "11:00",
		Purpose:  "standup",
	}

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(repo *bookingMocks.MockBooking, roomRepo *roomMocks.MockRoom)
		wantErr   string
	}{
		{
			name: "free slot",
			req:  validReq,
			setupMock: func(repo *bookingMocks.MockBooking, roomRepo *roomMocks.MockRoom) {
				roomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{}, nil)
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "overlapping booking is rejected",
			req:  validReq,
			setupMock: func(repo *bookingMocks.MockBooking, roomRepo *roomMocks.MockRoom) {
				roomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{
						existingBooking("b-1", "room-1", "2026-03-10", "10:30", "11:30"),
					}, nil)
			},
			wantErr: "room already booked for that time",
		},
		{
			name: "touching ranges do not conflict",
			req: dto.CreateBookingRequest{
				RoomID:   "room-1",
				Date:     "2026-03-10",
				TimeFrom: "11:00",
				TimeTo:   "12:00",
			},
			setupMock: func(repo *bookingMocks.MockBooking, roomRepo *roomMocks.MockRoom) {
				roomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{
						existingBooking("b-1", "room-1", "2026-03-10", "10:00", "11:00"),
					}, nil)
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "start not before end",
			req: dto.CreateBookingRequest{
				RoomID:   "room-1",
				Date:     "2026-03-10",
				TimeFrom: "11:00",
				TimeTo:   "11:00",
			},
			setupMock: func(repo *bookingMocks.MockBooking, roomRepo *roomMocks.MockRoom) {},
			wantErr:   "time_from must be before time_to",
		},
		{
			name: "unknown room",
			req:  validReq,
			setupMock: func(repo *bookingMocks.MockBooking, roomRepo *roomMocks.MockRoom) {
				roomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: "room does not exist",
		},
		{
			name: "repository error",
			req:  validReq,
			setupMock: func(repo *bookingMocks.MockBooking, roomRepo *roomMocks.MockRoom) {
				roomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{}, nil)
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: "failed to create booking",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockRoomRepo := newBookingService(t)
			tt.setupMock(mockRepo, mockRoomRepo)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserEmail, "admin@ruang.local")
			err := svc.Create(ctx, tt.req)

			if tt.wantErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Update(t *testing.T) {
	current := existingBooking("b-1", "room-1", "2026-03-10", "10:00", "11:00")

	tests := []struct {
		name      string
		req       dto.UpdateBookingRequest
		setupMock func(repo *bookingMocks.MockBooking, roomRepo *roomMocks.MockRoom)
		wantErr   string
	}{
		{
			name: "keeping the same slot does not conflict with itself",
			req:  dto.UpdateBookingRequest{Purpose: "retro"},
			setupMock: func(repo *bookingMocks.MockBooking, roomRepo *roomMocks.MockRoom) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(current, nil)
				// The conflict query excludes the booking being updated.
				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{}, nil)
				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "moving onto another booking is rejected",
			req:  dto.UpdateBookingRequest{TimeFrom: "14:30", TimeTo: "15:30"},
			setupMock: func(repo *bookingMocks.MockBooking, roomRepo *roomMocks.MockRoom) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(current, nil)
				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{
						existingBooking("b-2", "room-1", "2026-03-10", "14:00", "15:00"),
					}, nil)
			},
			wantErr: "room already booked for that time",
		},
		{
			name: "booking not found",
			req:  dto.UpdateBookingRequest{Purpose: "retro"},
			setupMock: func(repo *bookingMocks.MockBooking, roomRepo *roomMocks.MockRoom) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: "not found",
		},
		{
			name:      "empty update request",
			req:       dto.UpdateBookingRequest{},
			setupMock: func(repo *bookingMocks.MockBooking, roomRepo *roomMocks.MockRoom) {},
			wantErr:   "update request cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockRoomRepo := newBookingService(t)
			tt.setupMock(mockRepo, mockRoomRepo)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserEmail, "admin@ruang.local")
			err := svc.Update(ctx, tt.req, "b-1")

			if tt.wantErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_ConflictFilterExcludesSelf(t *testing.T) {
	svc, mockRepo, _ := newBookingService(t)

	current := existingBooking("b-1", "room-1", "2026-03-10", "10:00", "11:00")

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(current, nil)
	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			found := false

			for _, raw := range filter.Filters {
				f, ok := raw.(gDto.Filter)
				if ok && f.Field == model.FieldID && f.Operator == gDto.FilterOperatorNotEq && f.Value == "b-1" {
					found = true
				}
			}

			assert.True(t, found, "conflict query must exclude the booking being updated")

			return []model.Booking{}, nil
		})
	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserEmail, "admin@ruang.local")
	err := svc.Update(ctx, dto.UpdateBookingRequest{Purpose: "planning"}, "b-1")

	assert.NoError(t, err)
}
