package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"b2bmarket/internal/adapter/api/middleware"
	"b2bmarket/internal/domain/rules"
	"b2bmarket/internal/usecase"
	"b2bmarket/pkg/errors"
	"b2bmarket/pkg/logger"
	"b2bmarket/pkg/response"
)

// FileHandler accepts product image uploads as multipart form field "image".
type FileHandler struct {
	productUseCase *usecase.ProductUseCase
	maxFileSize    int64
}

func NewFileHandler(productUseCase *usecase.ProductUseCase) *FileHandler {
	return &FileHandler{
		productUseCase: productUseCase,
		maxFileSize:    rules.MaxImageBytes,
	}
}

var fileHandler *FileHandler

func SetupFileHandler(productUseCase *usecase.ProductUseCase) {
	fileHandler = NewFileHandler(productUseCase)
}

func GetFileHandler() *FileHandler {
	return fileHandler
}

func (h *FileHandler) UploadProductImage(c echo.Context) error {
	c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, h.maxFileSize+1<<20)

	file, err := c.FormFile("image")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing or invalid image", err))
	}

	contentType := file.Header.Get("Content-Type")
	logger.Debug("Received image %s, size: %d bytes, type: %s", file.Filename, file.Size, contentType)

	if err := rules.ValidateImage(contentType, file.Size); err != nil {
		return response.Error(c, err)
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Unable to read file", err))
	}
	defer src.Close()

	product, err := h.productUseCase.UploadImage(
		c.Request().Context(),
		middleware.SessionFrom(c),
		c.Param("id"),
		src,
		contentType,
		file.Size,
	)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, h.productUseCase.View(product))
}
