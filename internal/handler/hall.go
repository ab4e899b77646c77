package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/lecture-hall-booking/internal/model"
	"github.com/iliyamo/lecture-hall-booking/internal/service"
)

// HallService is the part of service.HallService used over HTTP.
type HallService interface {
	List(ctx context.Context) ([]model.Hall, error)
	Availability(ctx context.Context, hallCode, dateStart, dateEnd string) (*service.Availability, error)
}

type HallHandler struct {
	svc    HallService
	logger *zap.Logger
}

func NewHallHandler(svc HallService, logger *zap.Logger) *HallHandler {
	return &HallHandler{svc: svc, logger: logger}
}

// List handles GET /api/halls.
func (h *HallHandler) List(c echo.Context) error {
	halls, err := h.svc.List(c.Request().Context())
	if err != nil {
		return serviceError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, halls)
}

// Availability handles GET /api/halls/availability?hallCode&dateStart&dateEnd.
func (h *HallHandler) Availability(c echo.Context) error {
	out, err := h.svc.Availability(c.Request().Context(),
		c.QueryParam("hallCode"), c.QueryParam("dateStart"), c.QueryParam("dateEnd"))
	if err != nil {
		return serviceError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, out)
}
