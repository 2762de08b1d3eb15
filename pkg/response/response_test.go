package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "b2bmarket/pkg/errors"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestErrorValidationCarriesFields(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	err := Error(c, apperrors.FieldError("name", "name is required"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, apperrors.CodeValidation, body.Error.Code)
	assert.Equal(t, map[string]interface{}{"name": "name is required"}, body.Error.Details)
}

func TestErrorRemoteIsGeneric(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	require.NoError(t, Error(c, apperrors.Remote("update enquiry", fmt.Errorf("permission denied"))))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, apperrors.RemoteFailureMessage, body.Error.Message)
	assert.NotContains(t, rec.Body.String(), "permission denied")
}

func TestErrorUnknownIsInternal(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, Error(c, fmt.Errorf("boom")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPaginated(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, Paginated(c, []string{"a", "b"}, 5, 1, 2))

	body := decode(t, rec)
	data := body.Data.(map[string]interface{})
	assert.Equal(t, float64(3), data["totalPages"])
}
