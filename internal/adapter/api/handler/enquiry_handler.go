package handler

import (
	"github.com/labstack/echo/v4"

	"b2bmarket/internal/adapter/api/middleware"
	"b2bmarket/internal/domain/entity"
	"b2bmarket/internal/domain/rules"
	"b2bmarket/internal/usecase"
	"b2bmarket/pkg/errors"
	"b2bmarket/pkg/response"
)

type EnquiryHandler struct {
	enquiryUseCase *usecase.EnquiryUseCase
}

func NewEnquiryHandler(enquiryUseCase *usecase.EnquiryUseCase) *EnquiryHandler {
	return &EnquiryHandler{
		enquiryUseCase: enquiryUseCase,
	}
}

type closeEnquiryRequest struct {
	Reason entity.ClosureReason `json:"reason"`
}

func (h *EnquiryHandler) SendEnquiry(c echo.Context) error {
	var req rules.EnquiryInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	enquiry, err := h.enquiryUseCase.Send(c.Request().Context(), middleware.SessionFrom(c), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, usecase.NewEnquiryView(enquiry))
}

// ListReceived is the seller inbox, urgent first.
func (h *EnquiryHandler) ListReceived(c echo.Context) error {
	session := middleware.SessionFrom(c)
	enquiries, err := h.enquiryUseCase.ListForSeller(c.Request().Context(), session.UID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, usecase.NewEnquiryViews(enquiries))
}

func (h *EnquiryHandler) ListSent(c echo.Context) error {
	session := middleware.SessionFrom(c)
	enquiries, err := h.enquiryUseCase.ListForBuyer(c.Request().Context(), session.UID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, usecase.NewEnquiryViews(enquiries))
}

func (h *EnquiryHandler) Respond(c echo.Context) error {
	enquiry, err := h.enquiryUseCase.Respond(c.Request().Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, usecase.NewEnquiryView(enquiry))
}

func (h *EnquiryHandler) Close(c echo.Context) error {
	var req closeEnquiryRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	enquiry, err := h.enquiryUseCase.Close(c.Request().Context(), middleware.SessionFrom(c), c.Param("id"), req.Reason)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, usecase.NewEnquiryView(enquiry))
}
