package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nabnoey/TK-libralies-System/internal/clock"
	"github.com/nabnoey/TK-libralies-System/internal/errors"
	"github.com/nabnoey/TK-libralies-System/internal/model"
	"github.com/nabnoey/TK-libralies-System/internal/service"
)

// ResourceHandler serves the room/seat registry and the public status boards.
type ResourceHandler struct {
	resourceService service.ResourceService
	clk             clock.Clock
}

// NewResourceHandler creates a new resource handler.
func NewResourceHandler(resourceService service.ResourceService, clk clock.Clock) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService, clk: clk}
}

// ListKaraokeRooms godoc
// @Summary List enabled karaoke rooms
// @Tags resources
// @Produce json
// @Success 200 {array} model.Resource
// @Router /rooms [get]
func (h *ResourceHandler) ListKaraokeRooms(c echo.Context) error {
	resources, err := h.resourceService.ListEnabled(c.Request().Context(), model.ResourceKaraoke)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, resources)
}

// ListMovieSeats godoc
// @Summary List enabled movie seats
// @Tags resources
// @Produce json
// @Success 200 {array} model.Resource
// @Router /seats [get]
func (h *ResourceHandler) ListMovieSeats(c echo.Context) error {
	resources, err := h.resourceService.ListEnabled(c.Request().Context(), model.ResourceMovie)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, resources)
}

// KaraokeStatusBoard godoc
// @Summary Per-room queue and occupancy for a date
// @Tags resources
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {array} service.ResourceBoard
// @Failure 400 {object} errors.ErrorResponse
// @Router /reservations/karaoke-status [get]
func (h *ResourceHandler) KaraokeStatusBoard(c echo.Context) error {
	return h.statusBoard(c, model.ResourceKaraoke)
}

// MovieStatusBoard godoc
// @Summary Per-seat queue and occupancy for a date
// @Tags resources
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {array} service.ResourceBoard
// @Failure 400 {object} errors.ErrorResponse
// @Router /reservations/movie-status [get]
func (h *ResourceHandler) MovieStatusBoard(c echo.Context) error {
	return h.statusBoard(c, model.ResourceMovie)
}

func (h *ResourceHandler) statusBoard(c echo.Context, rtype model.ResourceType) error {
	date := c.QueryParam("date")
	if date == "" {
		date = clock.Today(h.clk)
	} else if !clock.ValidDate(date) {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "date must be formatted as YYYY-MM-DD",
			Code:  "INVALID_DATE",
		})
	}

	boards, err := h.resourceService.StatusBoard(c.Request().Context(), rtype, date)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, boards)
}
