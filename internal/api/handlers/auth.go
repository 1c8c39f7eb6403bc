package handlers

import (
	"context"
	"delivery-route-map/internal/api/dto"
	"delivery-route-map/internal/security"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LoginService interface {
	Login(ctx context.Context, username, password string) (string, error)
}

type AuthHandler struct {
	Auth   LoginService
	Logger *zap.Logger
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "username and password are required")
		return
	}

	token, err := h.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, security.ErrInvalidCredentials) {
		writeError(c, http.StatusUnauthorized, "invalid username or password")
		return
	}
	if err != nil {
		h.Logger.Error("login failed", zap.Error(err))
		writeError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token})
}
