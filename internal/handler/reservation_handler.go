package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/nabnoey/TK-libralies-System/internal/auth"
	"github.com/nabnoey/TK-libralies-System/internal/errors"
	"github.com/nabnoey/TK-libralies-System/internal/model"
	"github.com/nabnoey/TK-libralies-System/internal/service"
)

// ReservationHandler handles reservation endpoints.
type ReservationHandler struct {
	reservationService service.ReservationService
}

// NewReservationHandler creates a new reservation handler.
func NewReservationHandler(reservationService service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

// CreateReservationRequest represents a reservation create request.
type CreateReservationRequest struct {
	ReservationType string   `json:"reservation_type" validate:"required"`
	ItemID          uint     `json:"item_id" validate:"required"`
	FriendEmails    []string `json:"friend_emails" validate:"required,dive,email"`
	ReservationDate string   `json:"reservation_date"`
}

// UpdateStatusRequest represents an operator status-change request.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ReservationResponse wraps a reservation for JSON output.
type ReservationResponse struct {
	Reservation *model.Reservation `json:"reservation"`
}

// Create godoc
// @Summary Create a reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateReservationRequest true "Reservation data"
// @Success 201 {object} service.CreateReservationResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /reservations [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{Error: "unauthorized", Code: "UNAUTHORIZED"})
	}

	var req CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	result, err := h.reservationService.Create(c.Request().Context(), service.CreateReservationInput{
		UserID:          identity.UserID,
		ReservationType: model.ResourceType(req.ReservationType),
		ItemID:          req.ItemID,
		FriendEmails:    req.FriendEmails,
		ReservationDate: req.ReservationDate,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, result)
}

// ListMine godoc
// @Summary List the caller's reservations
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Reservation
// @Router /reservations/mine [get]
func (h *ReservationHandler) ListMine(c echo.Context) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{Error: "unauthorized", Code: "UNAUTHORIZED"})
	}

	reservations, err := h.reservationService.ListMine(c.Request().Context(), identity.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, reservations)
}

// ListAll godoc
// @Summary List all reservations (operator)
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Reservation
// @Failure 403 {object} errors.ErrorResponse
// @Router /reservations [get]
func (h *ReservationHandler) ListAll(c echo.Context) error {
	reservations, err := h.reservationService.ListAll(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, reservations)
}

// Get godoc
// @Summary Get one of the caller's reservations
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} ReservationResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c echo.Context) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{Error: "unauthorized", Code: "UNAUTHORIZED"})
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid reservation id", Code: "INVALID_UUID"})
	}

	reservation, err := h.reservationService.Get(c.Request().Context(), id, identity.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, ReservationResponse{Reservation: reservation})
}

// UpdateStatus godoc
// @Summary Change a reservation's status (operator)
// @Description awaiting_checkin approves, completed completes, cancelled cancels; invalid jumps are rejected.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body UpdateStatusRequest true "Target status"
// @Success 200 {object} ReservationResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /reservations/{id}/status [patch]
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid reservation id", Code: "INVALID_UUID"})
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	reservation, err := h.reservationService.UpdateStatus(c.Request().Context(), id, model.ReservationStatus(req.Status))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, ReservationResponse{Reservation: reservation})
}

// CheckIn godoc
// @Summary Check in to an approved reservation
// @Description Past the deadline the reservation is cancelled automatically and the expiry reported.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} ReservationResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /reservations/{id}/checkin [patch]
func (h *ReservationHandler) CheckIn(c echo.Context) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{Error: "unauthorized", Code: "UNAUTHORIZED"})
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid reservation id", Code: "INVALID_UUID"})
	}

	reservation, err := h.reservationService.CheckIn(c.Request().Context(), id, identity.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		resp := httpErr.ToErrorResponse()
		if reservation != nil {
			// The late check-in performed a cancellation; return the record.
			if resp.Details == nil {
				resp.Details = map[string]interface{}{}
			}
			resp.Details["reservation"] = reservation
		}
		return echo.NewHTTPError(httpErr.StatusCode, resp)
	}
	return c.JSON(http.StatusOK, ReservationResponse{Reservation: reservation})
}

// Cancel godoc
// @Summary Cancel the caller's reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} ReservationResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /reservations/{id}/cancel [patch]
func (h *ReservationHandler) Cancel(c echo.Context) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{Error: "unauthorized", Code: "UNAUTHORIZED"})
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid reservation id", Code: "INVALID_UUID"})
	}

	reservation, err := h.reservationService.Cancel(c.Request().Context(), id, identity.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, ReservationResponse{Reservation: reservation})
}
