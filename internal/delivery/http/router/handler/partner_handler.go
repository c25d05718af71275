package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"unibite/internal/delivery/http/response"
	"unibite/internal/usecase"
)

// PartnerHandler holds dependencies for delivery partner handlers.
type PartnerHandler struct {
	uc     usecase.StoreUsecase
	logger *slog.Logger
}

// NewPartnerHandler is the constructor for PartnerHandler, injected by Fx.
func NewPartnerHandler(uc usecase.StoreUsecase, logger *slog.Logger) *PartnerHandler {
	return &PartnerHandler{uc: uc, logger: logger}
}

// List returns all cached delivery partner profiles.
func (h *PartnerHandler) List(c echo.Context) error {
	return response.Success(c, http.StatusOK, toPartnerResponses(h.uc.DeliveryPartners()), "")
}

type addPartnerRequest struct {
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone"`
	Hostel     string `json:"hostel"`
	Room       string `json:"room"`
	Enrollment string `json:"enrollment"`
	Document   string `json:"document"`
}

// Add enrolls a courier.
func (h *PartnerHandler) Add(c echo.Context) error {
	var input addPartnerRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid partner input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.AddDeliveryPartner(c.Request().Context(), usecase.AddDeliveryPartnerInput{
		Name:       input.Name,
		Phone:      input.Phone,
		Hostel:     input.Hostel,
		Room:       input.Room,
		Enrollment: input.Enrollment,
		Document:   input.Document,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]any{
		"partner": toPartnerResponse(*output.Partner),
		"outcome": toWriteOutcomeResponse(output.Outcome),
	}, "Delivery partner enrolled")
}

// Block bars a courier from deliveries.
func (h *PartnerHandler) Block(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid partner id")
	}

	if err := h.uc.BlockDeliveryPartner(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Delivery partner blocked")
}

// Remove deletes a courier profile.
func (h *PartnerHandler) Remove(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid partner id")
	}

	if err := h.uc.RemoveDeliveryPartner(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Delivery partner removed")
}
