package handler

import (
	"errors"
	"net/http"

	"github.com/juanmzaragoza/billing-dad-project/internal/apierror"
	"github.com/juanmzaragoza/billing-dad-project/internal/dto"
	"github.com/juanmzaragoza/billing-dad-project/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrCredencialesInvalidas) {
			c.JSON(http.StatusUnauthorized, apierror.New("Usuario o contraseña incorrectos"))
			return
		}
		respondError(c, err, "Error al iniciar sesión")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrTokenInvalido) {
			c.JSON(http.StatusUnauthorized, apierror.New("Refresh token inválido o expirado"))
			return
		}
		respondError(c, err, "Error al renovar la sesión")
		return
	}
	c.JSON(http.StatusOK, resp)
}
