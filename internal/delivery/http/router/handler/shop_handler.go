package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"unibite/internal/delivery/http/response"
	"unibite/internal/domain/entity"
	"unibite/internal/domain/service"
	"unibite/internal/usecase"
)

// ShopHandler holds dependencies for shop and menu management handlers.
type ShopHandler struct {
	uc     usecase.StoreUsecase
	qrcode service.QRCodeService
	logger *slog.Logger
}

// NewShopHandler is the constructor for ShopHandler, injected by Fx.
func NewShopHandler(uc usecase.StoreUsecase, qrcode service.QRCodeService, logger *slog.Logger) *ShopHandler {
	return &ShopHandler{uc: uc, qrcode: qrcode, logger: logger}
}

// List returns all cached shops with their nested menus.
func (h *ShopHandler) List(c echo.Context) error {
	return response.Success(c, http.StatusOK, toShopResponses(h.uc.Shops()), "")
}

type addShopRequest struct {
	Name  string `json:"name" validate:"required"`
	Owner string `json:"owner"`
	Image string `json:"image"`
}

// Add registers a shop and returns the one-time generated credentials.
func (h *ShopHandler) Add(c echo.Context) error {
	var input addShopRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid shop input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.AddShop(c.Request().Context(), usecase.AddShopInput{
		Name:  input.Name,
		Owner: input.Owner,
		Image: input.Image,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	body := map[string]any{
		"shop":             toShopResponse(*output.Shop),
		"credentialStored": output.CredentialStored,
		"outcome":          toWriteOutcomeResponse(output.Outcome),
	}
	if output.Credential != nil {
		// The password is returned exactly once, here.
		body["credential"] = credentialResponse{
			ShopID:   output.Credential.ShopID.String(),
			LoginID:  output.Credential.LoginID,
			Password: output.Credential.Password,
		}
	}

	return response.Success(c, http.StatusCreated, body, "Shop created")
}

type editShopRequest struct {
	Name  *string `json:"name"`
	Owner *string `json:"owner"`
	Image *string `json:"image"`
}

// Edit applies a partial shop update; absent fields are left untouched.
func (h *ShopHandler) Edit(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid shop id")
	}

	var input editShopRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid shop input")
	}

	output, err := h.uc.EditShop(c.Request().Context(), usecase.EditShopInput{
		ID:    id,
		Name:  input.Name,
		Owner: input.Owner,
		Image: input.Image,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"outcome": toWriteOutcomeResponse(output.Outcome),
	}, "Shop updated")
}

// Toggle flips the shop between approved and disabled; pending approves.
func (h *ShopHandler) Toggle(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid shop id")
	}

	if err := h.uc.ToggleShopStatus(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Shop status toggled")
}

// Delete removes a shop together with its menu.
func (h *ShopHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid shop id")
	}

	if err := h.uc.DeleteShop(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Shop deleted")
}

type menuItemRequest struct {
	Name      string `json:"name" validate:"required"`
	Price     string `json:"price" validate:"required"`
	Category  string `json:"category"`
	Available bool   `json:"available"`
	Image     string `json:"image"`
}

// AddMenuItem appends one item to a shop's menu.
func (h *ShopHandler) AddMenuItem(c echo.Context) error {
	shopID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid shop id")
	}

	var input menuItemRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid menu item input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	price, err := decimal.NewFromString(input.Price)
	if err != nil {
		return response.BadRequest(c, "INVALID_PRICE", "Price must be a decimal number")
	}

	output, err := h.uc.AddMenuItem(c.Request().Context(), usecase.AddMenuItemInput{
		ShopID:   shopID,
		Name:     input.Name,
		Price:    price,
		Category: input.Category,
		Image:    input.Image,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]any{
		"item":    toMenuItemResponse(*output.Item),
		"outcome": toWriteOutcomeResponse(output.Outcome),
	}, "Menu item added")
}

type replaceMenuRequest struct {
	Items []menuItemRequest `json:"items"`
}

// ReplaceMenu swaps a shop's menu wholesale.
func (h *ShopHandler) ReplaceMenu(c echo.Context) error {
	shopID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid shop id")
	}

	var input replaceMenuRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid menu input")
	}

	items := make([]usecase.MenuItemInput, len(input.Items))
	for i, item := range input.Items {
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			return response.BadRequest(c, "INVALID_PRICE", "Price must be a decimal number")
		}
		items[i] = usecase.MenuItemInput{
			Name:      item.Name,
			Price:     price,
			Category:  item.Category,
			Available: item.Available,
			Image:     item.Image,
		}
	}

	if err := h.uc.UpdateShopMenu(c.Request().Context(), shopID, items); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Menu replaced")
}

// ToggleMenuItem flips one item's availability.
func (h *ShopHandler) ToggleMenuItem(c echo.Context) error {
	shopID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid shop id")
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid menu item id")
	}

	if err := h.uc.ToggleMenuItemAvailability(c.Request().Context(), shopID, itemID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Menu item availability toggled")
}

// DeleteMenuItem removes one item from a shop's menu.
func (h *ShopHandler) DeleteMenuItem(c echo.Context) error {
	shopID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid shop id")
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid menu item id")
	}

	if err := h.uc.DeleteMenuItem(c.Request().Context(), shopID, itemID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Menu item deleted")
}

type credentialQRRequest struct {
	ShopID  string `json:"shopId" validate:"required"`
	LoginID string `json:"loginId" validate:"required"`
}

// CredentialQR renders a shop's login identifier as a PNG QR code. The
// password is never part of the encoded payload.
func (h *ShopHandler) CredentialQR(c echo.Context) error {
	var input credentialQRRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid credential input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	shopID, err := uuid.Parse(input.ShopID)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid shop id")
	}

	png, err := h.qrcode.GenerateCredentialQR(&entity.ShopCredential{
		ShopID:  shopID,
		LoginID: input.LoginID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
