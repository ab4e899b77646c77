package handler

import (
	"context"  // context for service calls
	"net/http" // HTTP status codes

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing
	"go.uber.org/zap"

	"github.com/iliyamo/lecture-hall-booking/internal/service"
)

// AuthService is the part of service.AuthService used over HTTP.
type AuthService interface {
	Signup(ctx context.Context, in service.SignupInput) (*service.Session, error)
	Login(ctx context.Context, username, password string) (*service.Session, error)
}

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	svc    AuthService
	logger *zap.Logger
}

func NewAuthHandler(svc AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

type loginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Signup handles POST /api/auth/signup.  Only STUDENT and PROFESSOR
// accounts can be created here.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req service.SignupInput
	if err := bindValid(c, &req); err != nil {
		return err
	}
	s, err := h.svc.Signup(c.Request().Context(), req)
	if err != nil {
		return serviceError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, s)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	s, err := h.svc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return serviceError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, s)
}
