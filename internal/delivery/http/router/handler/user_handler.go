package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"unibite/internal/delivery/http/response"
	"unibite/internal/domain/entity"
	"unibite/internal/usecase"
)

// UserHandler holds dependencies for account moderation handlers.
type UserHandler struct {
	uc     usecase.StoreUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.StoreUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{uc: uc, logger: logger}
}

// List returns all cached platform accounts.
func (h *UserHandler) List(c echo.Context) error {
	return response.Success(c, http.StatusOK, toUserResponses(h.uc.Users()), "")
}

type addUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required"`
}

// Add creates a platform account.
func (h *UserHandler) Add(c echo.Context) error {
	var input addUserRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.AddUser(c.Request().Context(), usecase.AddUserInput{
		Name:  input.Name,
		Email: input.Email,
		Role:  entity.UserRole(input.Role),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]any{
		"user":    toUserResponse(*output.User),
		"outcome": toWriteOutcomeResponse(output.Outcome),
	}, "User created")
}

// Block bars an account from ordering.
func (h *UserHandler) Block(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid user id")
	}

	if err := h.uc.BlockUser(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User blocked")
}

// Unblock restores a blocked account.
func (h *UserHandler) Unblock(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid user id")
	}

	if err := h.uc.UnblockUser(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User unblocked")
}

// Delete removes an account.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid user id")
	}

	if err := h.uc.DeleteUser(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User deleted")
}
