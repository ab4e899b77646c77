package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/lecture-hall-booking/internal/model"
	"github.com/iliyamo/lecture-hall-booking/internal/repository"
	"github.com/iliyamo/lecture-hall-booking/internal/service"
)

// EventService is the part of service.EventService used over HTTP.
type EventService interface {
	CreateEvent(ctx context.Context, actor model.Actor, in service.CreateEventInput) (*service.StatusResult, error)
	SetStatus(ctx context.Context, actor model.Actor, eventID uint64, status string) (*service.StatusResult, error)
	UserEvents(ctx context.Context, actor model.Actor) ([]repository.EventSummary, error)
	AllEvents(ctx context.Context, actor model.Actor) ([]repository.EventSummary, error)
	EventsByStatus(ctx context.Context, actor model.Actor, status string) ([]repository.EventSummary, error)
	EventByID(ctx context.Context, actor model.Actor, eventID uint64) (*repository.EventDetail, error)
	ConfirmedEvents(ctx context.Context) ([]repository.EventSummary, error)
}

// EventHandler serves the /api/events endpoints.
type EventHandler struct {
	svc    EventService
	logger *zap.Logger
}

func NewEventHandler(svc EventService, logger *zap.Logger) *EventHandler {
	return &EventHandler{svc: svc, logger: logger}
}

// Create handles POST /api/events.
func (h *EventHandler) Create(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req service.CreateEventInput
	if err := bindValid(c, &req); err != nil {
		return err
	}
	res, err := h.svc.CreateEvent(c.Request().Context(), actor, req)
	if err != nil {
		return serviceError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, res)
}

type statusReq struct {
	Status string `json:"status" validate:"required"`
}

// SetStatus handles PATCH /api/events/:id/status.
func (h *EventHandler) SetStatus(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req statusReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	res, err := h.svc.SetStatus(c.Request().Context(), actor, id, req.Status)
	if err != nil {
		return serviceError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Mine handles GET /api/events/user.
func (h *EventHandler) Mine(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	out, err := h.svc.UserEvents(c.Request().Context(), actor)
	if err != nil {
		return serviceError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, out)
}

// All handles GET /api/events.
func (h *EventHandler) All(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	out, err := h.svc.AllEvents(c.Request().Context(), actor)
	if err != nil {
		return serviceError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ByStatus handles GET /api/events/status/:status.
func (h *EventHandler) ByStatus(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	out, err := h.svc.EventsByStatus(c.Request().Context(), actor, c.Param("status"))
	if err != nil {
		return serviceError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/events/:id.
func (h *EventHandler) Get(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	d, err := h.svc.EventByID(c.Request().Context(), actor, id)
	if err != nil {
		return serviceError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, d)
}

// Confirmed handles GET /api/events/confirmed, the calendar feed.
func (h *EventHandler) Confirmed(c echo.Context) error {
	out, err := h.svc.ConfirmedEvents(c.Request().Context())
	if err != nil {
		return serviceError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, out)
}
