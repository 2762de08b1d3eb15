package handler

import (
	"github.com/labstack/echo/v4"

	"b2bmarket/internal/adapter/api/middleware"
	"b2bmarket/internal/domain/rules"
	"b2bmarket/internal/usecase"
	"b2bmarket/pkg/errors"
	"b2bmarket/pkg/response"
)

type RequirementHandler struct {
	requirementUseCase *usecase.RequirementUseCase
}

func NewRequirementHandler(requirementUseCase *usecase.RequirementUseCase) *RequirementHandler {
	return &RequirementHandler{
		requirementUseCase: requirementUseCase,
	}
}

func (h *RequirementHandler) ListRequirements(c echo.Context) error {
	session := middleware.SessionFrom(c)
	requirements, err := h.requirementUseCase.ListAll(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, usecase.NewRequirementViews(requirements, session.UID))
}

func (h *RequirementHandler) ListMine(c echo.Context) error {
	session := middleware.SessionFrom(c)
	requirements, err := h.requirementUseCase.ListForBuyer(c.Request().Context(), session.UID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, usecase.NewRequirementViews(requirements, session.UID))
}

func (h *RequirementHandler) PostRequirement(c echo.Context) error {
	var req rules.RequirementInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	session := middleware.SessionFrom(c)
	requirement, err := h.requirementUseCase.Post(c.Request().Context(), session, req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, usecase.NewRequirementView(requirement, session.UID))
}

func (h *RequirementHandler) ShowInterest(c echo.Context) error {
	if err := h.requirementUseCase.ShowInterest(c.Request().Context(), middleware.SessionFrom(c), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{
		"message": "Interest registered",
	})
}

func (h *RequirementHandler) DeleteRequirement(c echo.Context) error {
	if err := h.requirementUseCase.Delete(c.Request().Context(), middleware.SessionFrom(c), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{
		"message": "Requirement deleted",
	})
}
