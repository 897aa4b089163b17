package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/farewatch/internal/models"
)

// statusFor maps a facade error onto the HTTP status and error code shown to
// the UI. Configuration and transport causes win over the authentication
// wrapper that carries them.
func statusFor(err error) (int, string) {
	var (
		validationErr models.ValidationError
		configErr     *models.ConfigurationError
		networkErr    *models.NetworkError
		authErr       *models.AuthenticationError
		providerErr   *models.ProviderError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, "validation_error"
	case errors.As(err, &configErr):
		return http.StatusInternalServerError, "configuration_error"
	case errors.As(err, &networkErr):
		return http.StatusServiceUnavailable, "network_error"
	case errors.As(err, &authErr):
		return http.StatusBadGateway, "authentication_error"
	case errors.As(err, &providerErr):
		switch status := providerErr.Status; {
		case status == http.StatusUnauthorized || status == http.StatusForbidden:
			// our bearer token was refused, not the caller's request
			return http.StatusBadGateway, "authentication_error"
		case status >= 400 && status < 500:
			return http.StatusBadRequest, "provider_error"
		default:
			return http.StatusBadGateway, "provider_error"
		}
	default:
		return http.StatusInternalServerError, "search_error"
	}
}

func writeError(c echo.Context, err error) error {
	status, code := statusFor(err)
	return c.JSON(status, models.ErrorResponse{
		Error:   code,
		Message: err.Error(),
		Code:    status,
	})
}
