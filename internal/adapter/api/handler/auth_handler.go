package handler

import (
	"github.com/labstack/echo/v4"

	"b2bmarket/internal/adapter/api/middleware"
	"b2bmarket/internal/domain/rules"
	"b2bmarket/internal/usecase"
	"b2bmarket/pkg/errors"
	"b2bmarket/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req rules.RegistrationInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	result, err := h.authUseCase.Register(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, result)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	result, err := h.authUseCase.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authUseCase.Logout(c.Request().Context(), middleware.SessionFrom(c)); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{
		"message": "Signed out",
	})
}

func (h *AuthHandler) Me(c echo.Context) error {
	return response.Success(c, h.authUseCase.Me(middleware.SessionFrom(c)))
}
