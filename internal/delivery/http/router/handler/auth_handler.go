// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"unibite/internal/delivery/http/response"
	"unibite/internal/usecase"
)

// AuthHandler exposes the operator login chain over HTTP.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, logger: logger}
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Secret     string `json:"secret" validate:"required"`
}

// Login handles the primary credential gate.
func (h *AuthHandler) Login(c echo.Context) error {
	var input loginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.SubmitCredentials(c.Request().Context(), usecase.SubmitCredentialsInput{
		Identifier: input.Identifier,
		Secret:     input.Secret,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, advanceResponse{Stage: output.Stage.String()}, "Credentials accepted")
}

type secondFactorRequest struct {
	Code string `json:"code" validate:"required"`
}

// SecondFactor handles the one-time verification code gate.
func (h *AuthHandler) SecondFactor(c echo.Context) error {
	var input secondFactorRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid verification input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.SubmitSecondFactor(c.Request().Context(), input.Code)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, advanceResponse{
		Stage:       output.Stage.String(),
		AccessToken: output.AccessToken,
	}, "Verification code accepted")
}

type confirmDeviceRequest struct {
	Trusted bool `json:"trusted"`
}

// ConfirmDevice resolves the device-trust gate. Declining trust logs the
// operator out and is still a 200.
func (h *AuthHandler) ConfirmDevice(c echo.Context) error {
	var input confirmDeviceRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid device trust input")
	}

	output, err := h.uc.ConfirmDevice(c.Request().Context(), input.Trusted)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, advanceResponse{
		Stage:       output.Stage.String(),
		AccessToken: output.AccessToken,
	}, "Device trust resolved")
}

// Logout resets the login chain.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.uc.Logout(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"}, "Logout successful")
}

// Session reports the current authentication snapshot.
func (h *AuthHandler) Session(c echo.Context) error {
	session := h.uc.Session()

	return response.Success(c, http.StatusOK, sessionResponse{
		Stage:          session.Stage.String(),
		Loading:        session.Loading,
		FailedAttempts: session.FailedAttempts,
	}, "")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
