package availability

import (
	"net/http"

	"ruang/infras/otel"
	"ruang/internal/domains/availability/service"
	"ruang/shared/constant"
	"ruang/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Get("/calendar", handler.GetCalendar)
		routerGroup.Get("/rooms", handler.GetRoomStatuses)
	})
}

// GetCalendar returns the month grid with per-day occupancy markers.
// @Summary Get the booking calendar for a month
// @Description Build the Monday-first month grid; each day lists the rooms booked on it.
// @Tags Availability
// @Accept json
// @Produce json
// @Param month query string false "Month (YYYY-MM), defaults to the current month"
// @Success 200 {object} response.Data[dto.CalendarResponse] "Calendar grid"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /availability/calendar [get]
func (handler *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCalendar")
	defer scope.End()

	month := r.URL.Query().Get(constant.RequestParamMonth)

	calendar, err := handler.service.Calendar(ctx, month)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build calendar")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Calendar built successfully")

	response.WithJSON(w, http.StatusOK, calendar)
}

// GetRoomStatuses classifies every room for a reference date.
// @Summary Get room statuses for a date
// @Description Classify each room as available, booked or partial for the given date.
// @Tags Availability
// @Accept json
// @Produce json
// @Param date query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Data[dto.GetRoomStatusesResponse] "Room statuses"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /availability/rooms [get]
func (handler *Handler) GetRoomStatuses(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomStatuses")
	defer scope.End()

	date := r.URL.Query().Get(constant.RequestParamDate)

	statuses, err := handler.service.RoomStatuses(ctx, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to classify room statuses")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room statuses retrieved successfully")

	response.WithJSON(w, http.StatusOK, statuses)
}
