package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"ruang/config"
	"ruang/infras/otel"
	"ruang/internal/domains/availability/model/dto"
	bookingModel "ruang/internal/domains/booking/model"
	bookingRepo "ruang/internal/domains/booking/repository"
	roomRepo "ruang/internal/domains/room/repository"
	"ruang/shared"
	"ruang/shared/cache"
	"ruang/shared/constant"
	gDto "ruang/shared/dto"
	"ruang/shared/failure"
	"ruang/shared/timezone"
)

const (
	cacheCalendar   = "availability:calendar"
	cacheRoomStatus = "availability:rooms"
)

type Availability interface {
	Calendar(ctx context.Context, month string) (dto.CalendarResponse, error)
	RoomStatuses(ctx context.Context, date string) (dto.GetRoomStatusesResponse, error)
}

type serviceImpl struct {
	bookings bookingRepo.Booking
	rooms    roomRepo.Room
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(bookings bookingRepo.Booking, rooms roomRepo.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Availability {
	return &serviceImpl{
		bookings: bookings,
		rooms:    rooms,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

// Calendar builds the Monday-first month grid with per-day occupancy markers.
// month is YYYY-MM; empty defaults to the current month.
func (s *serviceImpl) Calendar(ctx context.Context, month string) (res dto.CalendarResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Calendar")
	defer scope.End()
	defer scope.TraceIfError(err)

	if month == constant.Empty {
		month = timezone.Now().Format(constant.MonthFormat)
	}

	firstOfMonth, err := time.Parse(constant.MonthFormat, month)
	if err != nil {
		return res, failure.BadRequestFromString("month must be in YYYY-MM format") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheCalendar, month)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for calendar")

		return res, nil
	}

	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	bookings, err := s.monthBookings(ctx, firstOfMonth, lastOfMonth)
	if err != nil {
		return res, err
	}

	res.Year = firstOfMonth.Year()
	res.Month = int(firstOfMonth.Month())
	res.Padding = monthPadding(firstOfMonth)
	res.Days = make([]dto.CalendarDay, lastOfMonth.Day())

	for i := range res.Days {
		date := firstOfMonth.AddDate(0, 0, i).Format(constant.DateOnlyFormat)

		res.Days[i] = dto.CalendarDay{
			Date:    date,
			Day:     i + 1,
			RoomIDs: dayRooms(bookings, date),
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save calendar to cache")
		}
	}()

	return res, nil
}

// RoomStatuses classifies every room against a reference date. date is
// YYYY-MM-DD; empty defaults to today.
func (s *serviceImpl) RoomStatuses(ctx context.Context, date string) (res dto.GetRoomStatusesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RoomStatuses")
	defer scope.End()
	defer scope.TraceIfError(err)

	if date == constant.Empty {
		date = timezone.Now().Format(constant.DateOnlyFormat)
	}

	if _, err = time.Parse(constant.DateOnlyFormat, date); err != nil {
		return res, failure.BadRequestFromString("date must be in YYYY-MM-DD format") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheRoomStatus, date)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room statuses")

		return res, nil
	}

	rooms, err := s.rooms.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	bookings, err := s.bookings.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.Date = date
	res.Rooms = make([]dto.RoomStatusResponse, len(rooms))

	for i, room := range rooms {
		res.Rooms[i] = dto.RoomStatusResponse{
			ID:     room.ID,
			Name:   room.Name,
			Color:  room.Color,
			Status: classifyRoom(room.ID, bookings, date),
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room statuses to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) monthBookings(ctx context.Context, from, to time.Time) ([]bookingModel.Booking, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldDate,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    from,
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				Field:    bookingModel.FieldDate,
				Operator: gDto.FilterOperatorLessEq,
				Value:    to,
				Table:    bookingModel.TableName,
			},
		},
	}

	bookings, err := s.bookings.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	return bookings, nil
}
