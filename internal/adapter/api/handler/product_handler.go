package handler

import (
	"github.com/labstack/echo/v4"

	"b2bmarket/internal/adapter/api/middleware"
	"b2bmarket/internal/domain/rules"
	"b2bmarket/internal/usecase"
	"b2bmarket/pkg/errors"
	"b2bmarket/pkg/response"
	"b2bmarket/pkg/utils"
)

type ProductHandler struct {
	productUseCase *usecase.ProductUseCase
}

func NewProductHandler(productUseCase *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
	}
}

// ListProducts supports ?category=, ?seller_id=, ?q= and page/limit.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	products, err := h.productUseCase.List(c.Request().Context(), usecase.ProductQuery{
		Category: c.QueryParam("category"),
		SellerID: c.QueryParam("seller_id"),
		Search:   c.QueryParam("q"),
	})
	if err != nil {
		return response.Error(c, err)
	}

	views := h.productUseCase.Views(utils.Page(products, pagination))
	return response.Paginated(c, views, int64(len(products)), pagination.Page, pagination.PageSize)
}

func (h *ProductHandler) ListMyProducts(c echo.Context) error {
	session := middleware.SessionFrom(c)
	products, err := h.productUseCase.List(c.Request().Context(), usecase.ProductQuery{SellerID: session.UID})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, h.productUseCase.Views(products))
}

func (h *ProductHandler) Categories(c echo.Context) error {
	return response.Success(c, h.productUseCase.Categories())
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.productUseCase.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, h.productUseCase.View(product))
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req rules.ProductInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	product, err := h.productUseCase.Create(c.Request().Context(), middleware.SessionFrom(c), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, h.productUseCase.View(product))
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	var req rules.ProductInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	product, err := h.productUseCase.Update(c.Request().Context(), middleware.SessionFrom(c), c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, h.productUseCase.View(product))
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	if err := h.productUseCase.Delete(c.Request().Context(), middleware.SessionFrom(c), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{
		"message": "Product deleted",
	})
}
