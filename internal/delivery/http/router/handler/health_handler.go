package handler

import (
	"net/http"

	"routereel/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports that the server is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}

// bindAndValidate decodes the request into req. When it reports false the
// error response has already been written and err is the write result.
func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, response.BindingError(c, "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return false, response.ValidationError(c, err)
	}

	return true, nil
}
