package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"ruang/config"
	"ruang/infras/kafka"
	"ruang/infras/otel"
	"ruang/internal/domains/booking/model"
	"ruang/internal/domains/booking/model/dto"
	"ruang/internal/domains/booking/repository"
	roomModel "ruang/internal/domains/room/model"
	roomRepo "ruang/internal/domains/room/repository"
	"ruang/shared"
	"ruang/shared/cache"
	"ruang/shared/constant"
	gDto "ruang/shared/dto"
	"ruang/shared/failure"
	"ruang/shared/timerange"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

const (
	eventBookingCreated = "booking.created"
	eventBookingUpdated = "booking.updated"
	eventBookingDeleted = "booking.deleted"
)

var errRoomAlreadyBooked = failure.BadRequestFromString("room already booked for that time")

type bookingEvent struct {
	Action    string `json:"action"`
	BookingID string `json:"booking_id"`
	RoomID    string `json:"room_id"`
	Date      string `json:"date"`
}

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Booking
	roomRepo roomRepo.Room
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	events   kafka.Client
}

func New(repo repository.Booking, roomRepo roomRepo.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, events kafka.Client) Booking {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		events:   events,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	if err = validateRange(req.TimeFrom, req.TimeTo); err != nil {
		return err
	}

	roomExists, err := s.roomRepo.Exist(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !roomExists {
		return failure.BadRequestFromString("room does not exist") // nolint:wrapcheck
	}

	booking, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	conflict, err := s.hasConflict(ctx, req.RoomID, booking.Date, req.TimeFrom, req.TimeTo, constant.Empty)
	if err != nil {
		return err
	}

	if conflict {
		return errRoomAlreadyBooked // nolint:wrapcheck
	}

	// The insert still races with concurrent requests that passed the check
	// above; the range-exclusion constraint on bookings is the backstop.
	if err = s.repo.Insert(ctx, booking); err != nil {
		if isOverlapViolation(err) {
			return errRoomAlreadyBooked // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create booking")

		return fmt.Errorf("failed to create booking: %w", err)
	}

	s.afterMutation(ctx, eventBookingCreated, booking.ID, booking.RoomID, booking.Date)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateBookingRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if current.ID == constant.Empty {
		log.Error().Msg("booking not found")

		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	// Effective values after the update, for the conflict re-check.
	roomID := current.RoomID
	if req.RoomID != constant.Empty {
		roomID = req.RoomID

		roomExists, err := s.roomRepo.Exist(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to check if room exists")

			return fmt.Errorf("failed to check if room exists: %w", err)
		}

		if !roomExists {
			return failure.BadRequestFromString("room does not exist") // nolint:wrapcheck
		}
	}

	date := current.Date
	if req.Date != constant.Empty {
		date, err = time.Parse(constant.DateOnlyFormat, req.Date)
		if err != nil {
			return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
		}
	}

	timeFrom := current.TimeFrom.Format(constant.TimeFormat)
	if req.TimeFrom != constant.Empty {
		timeFrom = req.TimeFrom
	}

	timeTo := current.TimeTo.Format(constant.TimeFormat)
	if req.TimeTo != constant.Empty {
		timeTo = req.TimeTo
	}

	if err = validateRange(timeFrom, timeTo); err != nil {
		return err
	}

	// The booking being updated is excluded so keeping the same slot passes.
	conflict, err := s.hasConflict(ctx, roomID, date, timeFrom, timeTo, id)
	if err != nil {
		return err
	}

	if conflict {
		return errRoomAlreadyBooked // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)

	if req.Date != constant.Empty {
		updatedFields[model.FieldDate] = date
	}

	if req.TimeFrom != constant.Empty {
		parsed, _ := time.Parse(constant.TimeFormat, timeFrom)
		updatedFields[model.FieldTimeFrom] = parsed
	}

	if req.TimeTo != constant.Empty {
		parsed, _ := time.Parse(constant.TimeFormat, timeTo)
		updatedFields[model.FieldTimeTo] = parsed
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		if isOverlapViolation(err) {
			return errRoomAlreadyBooked // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	s.afterMutation(ctx, eventBookingUpdated, id, roomID, date)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if current.ID == constant.Empty {
		log.Error().Msg("booking not found")

		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.afterMutation(ctx, eventBookingDeleted, id, current.RoomID, current.Date)

	return nil
}

// hasConflict reports whether any booking for the room on the date overlaps
// [timeFrom, timeTo). excludeID skips the booking being updated.
func (s *serviceImpl) hasConflict(ctx context.Context, roomID string, date time.Time, timeFrom, timeTo, excludeID string) (bool, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hasConflict")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldDate,
				Operator: gDto.FilterOperatorEq,
				Value:    date,
				Table:    model.TableName,
			},
		},
	}

	if excludeID != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldID,
			Operator: gDto.FilterOperatorNotEq,
			Value:    excludeID,
			Table:    model.TableName,
		})
	}

	existing, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for conflict check")

		return false, fmt.Errorf("failed to get bookings for conflict check: %w", err)
	}

	for _, booked := range existing {
		overlap, err := timerange.Overlaps(
			timeFrom,
			timeTo,
			booked.TimeFrom.Format(constant.TimeFormat),
			booked.TimeTo.Format(constant.TimeFormat),
		)
		if err != nil {
			return false, err // nolint:wrapcheck
		}

		if overlap {
			return true, nil
		}
	}

	return false, nil
}

func (s *serviceImpl) afterMutation(ctx context.Context, action, bookingID, roomID string, date time.Time) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, bookingID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)

		topic := s.cfg.Kafka.Topics.BookingEvents
		if topic == constant.Empty {
			return
		}

		event := kafka.Message{
			Key: bookingID,
			Value: bookingEvent{
				Action:    action,
				BookingID: bookingID,
				RoomID:    roomID,
				Date:      date.Format(constant.DateOnlyFormat),
			},
		}

		if err := s.events.SendMessages(c, topic, event); err != nil {
			log.Error().Err(err).Str("action", action).Msg("failed to publish booking event")
		}
	}()
}

func validateRange(timeFrom, timeTo string) error {
	from, err := timerange.ToMinutes(timeFrom)
	if err != nil {
		return err // nolint:wrapcheck
	}

	to, err := timerange.ToMinutes(timeTo)
	if err != nil {
		return err // nolint:wrapcheck
	}

	if from >= to {
		return failure.BadRequestFromString("time_from must be before time_to") // nolint:wrapcheck
	}

	return nil
}

func isOverlapViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == constant.PqErrorCodeExclusionViolation ||
			string(pqErr.Code) == constant.PqErrorCodeUniqueViolation
	}

	return false
}
