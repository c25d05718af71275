package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"unibite/internal/domain/entity"
)

// WriteOutcome reports how a remote write landed. Degraded means the full
// payload was rejected for unknown fields and the core subset was accepted
// instead; DroppedFields lists what the backend refused.
type WriteOutcome struct {
	Degraded      bool
	DroppedFields []string
}

// Stats is the derived dashboard overview, recomputed from cached state on
// every call.
type Stats struct {
	TotalUsers    int
	TotalShops    int
	ActiveShops   int
	TotalOrders   int
	ActiveOrders  int
	TotalPartners int
	// TotalRevenue sums the amounts of delivered orders.
	TotalRevenue decimal.Decimal
}

// --- Input DTOs ---

// AddUserInput defines the data required to create a platform account.
type AddUserInput struct {
	Name  string
	Email string
	Role  entity.UserRole
}

// AddShopInput defines the data required to register a shop.
type AddShopInput struct {
	Name  string
	Owner string
	Image string
}

// EditShopInput is a partial shop update; nil fields are left untouched.
type EditShopInput struct {
	ID    uuid.UUID
	Name  *string
	Owner *string
	Image *string
}

// AddMenuItemInput defines the data required to add a menu item to a shop.
// Availability always starts true.
type AddMenuItemInput struct {
	ShopID   uuid.UUID
	Name     string
	Price    decimal.Decimal
	Category string
	Image    string
}

// MenuItemInput is one item in a wholesale menu replacement.
type MenuItemInput struct {
	Name      string
	Price     decimal.Decimal
	Category  string
	Available bool
	Image     string
}

// AddDeliveryPartnerInput defines the data required to enroll a courier.
type AddDeliveryPartnerInput struct {
	Name       string
	Phone      string
	Hostel     string
	Room       string
	Enrollment string
	Document   string
}

// UpdateSettingsInput addresses one option inside the settings blob. An empty
// Section targets the operational top level.
type UpdateSettingsInput struct {
	Section string
	Key     string
	Value   any
}

// --- Output DTOs ---

// AddUserOutput returns the created account as acknowledged by the backend.
type AddUserOutput struct {
	User    *entity.User
	Outcome WriteOutcome
}

// AddShopOutput returns the created shop together with its generated login
// credentials. CredentialStored is false when the shop itself was accepted
// but the credential write failed; the shop still exists in that case.
type AddShopOutput struct {
	Shop             *entity.Shop
	Credential       *entity.ShopCredential
	CredentialStored bool
	Outcome          WriteOutcome
}

// EditShopOutput reports how the partial shop update landed. The cache only
// merges fields the backend acknowledged; anything the schema rejected shows
// up in the outcome instead.
type EditShopOutput struct {
	Outcome WriteOutcome
}

// AddMenuItemOutput returns the created menu item.
type AddMenuItemOutput struct {
	Item    *entity.MenuItem
	Outcome WriteOutcome
}

// AddDeliveryPartnerOutput returns the enrolled courier profile.
type AddDeliveryPartnerOutput struct {
	Partner *entity.DeliveryPartner
	Outcome WriteOutcome
}

// StoreLifecycle is the slice of the store the authentication machine drives:
// activation on login or rehydration, deactivation on logout.
type StoreLifecycle interface {
	// Activate performs the initial bulk refresh and subscribes to the
	// change feed. Idempotent; a second activation is a no-op.
	Activate(ctx context.Context) error

	// Deactivate releases the feed subscription and drops cached state.
	Deactivate(ctx context.Context)
}

// StoreUsecase is the in-process mirror of the remote domain state together
// with its write-through mutations. Reads serve from local caches and never
// fail; mutations follow validate → remote write → merge-on-ack → audit.
type StoreUsecase interface {
	StoreLifecycle

	// --- Read surface, cached ---

	Users() []entity.User
	Shops() []entity.Shop
	Orders() []entity.Order
	DeliveryPartners() []entity.DeliveryPartner
	Settings() entity.Settings
	SystemLogs() []entity.AuditEntry
	Stats() Stats
	Earnings() entity.EarningsSnapshot

	// RefreshAll re-fetches every collection and replaces the caches
	// wholesale. Partial failures leave the affected collections stale and
	// are reported in the returned error while the rest still populate.
	RefreshAll(ctx context.Context) error

	// --- Users ---

	AddUser(ctx context.Context, input AddUserInput) (*AddUserOutput, error)
	BlockUser(ctx context.Context, id uuid.UUID) error
	UnblockUser(ctx context.Context, id uuid.UUID) error
	DeleteUser(ctx context.Context, id uuid.UUID) error

	// --- Shops and menus ---

	AddShop(ctx context.Context, input AddShopInput) (*AddShopOutput, error)
	EditShop(ctx context.Context, input EditShopInput) (*EditShopOutput, error)
	ToggleShopStatus(ctx context.Context, id uuid.UUID) error
	DeleteShop(ctx context.Context, id uuid.UUID) error
	UpdateShopMenu(ctx context.Context, shopID uuid.UUID, items []MenuItemInput) error
	AddMenuItem(ctx context.Context, input AddMenuItemInput) (*AddMenuItemOutput, error)
	ToggleMenuItemAvailability(ctx context.Context, shopID, itemID uuid.UUID) error
	DeleteMenuItem(ctx context.Context, shopID, itemID uuid.UUID) error

	// --- Orders ---

	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error

	// --- Delivery partners ---

	AddDeliveryPartner(ctx context.Context, input AddDeliveryPartnerInput) (*AddDeliveryPartnerOutput, error)
	BlockDeliveryPartner(ctx context.Context, id uuid.UUID) error
	RemoveDeliveryPartner(ctx context.Context, id uuid.UUID) error

	// --- Settings and maintenance ---

	UpdateSettings(ctx context.Context, input UpdateSettingsInput) error
	ClearCache(ctx context.Context) error
	ResetSystem(ctx context.Context) error
}
