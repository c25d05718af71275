// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"unibite/config"
	"unibite/internal/domain/entity"
	domainerrors "unibite/internal/domain/errors"
	"unibite/internal/domain/gateway"
	"unibite/internal/errors"
	"unibite/internal/usecase"
)

const settingsRowID = "platform"

// adminStore implements the StoreUsecase interface. It holds a cached mirror
// of every remote collection, guarded by one RWMutex; mutations write remote
// first and merge into the mirror only after the gateway acknowledges.
type adminStore struct {
	gw      gateway.Gateway
	audit   *AuditLog
	logger  *slog.Logger
	timeout time.Duration

	mu         sync.RWMutex
	active     bool
	cancelFeed func()

	users        []entity.User
	shops        []entity.Shop
	orders       []entity.Order
	partners     []entity.DeliveryPartner
	transactions []entity.Transaction
	settings     entity.Settings
}

// AdminStoreParams holds dependencies for the store, injected by Fx.
type AdminStoreParams struct {
	fx.In

	Gateway gateway.Gateway
	Audit   *AuditLog
	Config  *config.Config
	Logger  *slog.Logger
}

// NewAdminStore is the constructor for adminStore.
func NewAdminStore(params AdminStoreParams) usecase.StoreUsecase {
	return &adminStore{
		gw:       params.Gateway,
		audit:    params.Audit,
		logger:   params.Logger,
		timeout:  params.Config.Gateway.Timeout,
		settings: entity.DefaultSettings(),
	}
}

// withTimeout bounds a gateway call so a hung backend cannot pin a caller.
func (s *adminStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// Activate performs the initial bulk refresh and subscribes to the change
// feed. Idempotent; a second activation is a no-op.
func (s *adminStore) Activate(ctx context.Context) error {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()

		return nil
	}
	s.active = true
	s.mu.Unlock()

	if err := s.audit.load(ctx); err != nil {
		s.logger.Warn("Failed to rehydrate audit log", slog.Any("error", err))
	}

	if err := s.RefreshAll(ctx); err != nil {
		// Partial or failed initial refresh keeps the session usable; the
		// feed or a manual refresh fills the gaps.
		s.logger.Warn("Initial refresh incomplete", slog.Any("error", err))
	}

	// The activating caller is usually a login request whose context ends
	// with the response; the subscription must outlive it and is released
	// only by Deactivate.
	cancel, err := s.gw.Subscribe(context.WithoutCancel(ctx), s.onCollectionChanged)
	if err != nil {
		s.mu.Lock()
		s.active = false
		s.mu.Unlock()

		return errors.Wrap(err, "failed to subscribe to change feed")
	}

	s.mu.Lock()
	s.cancelFeed = cancel
	s.mu.Unlock()

	s.logger.Info("Entity store activated")

	return nil
}

// Deactivate releases the feed subscription and drops cached state.
func (s *adminStore) Deactivate(_ context.Context) {
	s.mu.Lock()
	cancel := s.cancelFeed
	s.cancelFeed = nil
	wasActive := s.active
	s.active = false
	s.users = nil
	s.shops = nil
	s.orders = nil
	s.partners = nil
	s.transactions = nil
	s.settings = entity.DefaultSettings()
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if wasActive {
		s.logger.Info("Entity store deactivated")
	}
}

// onCollectionChanged handles one change-feed signal by re-fetching the
// affected collection. Signals for our own writes arrive too; the refresh is
// idempotent so the double apply is harmless.
func (s *adminStore) onCollectionChanged(collection string) {
	s.mu.RLock()
	active := s.active
	s.mu.RUnlock()
	if !active {
		return
	}

	ctx, cancel := s.withTimeout(context.Background())
	defer cancel()

	var err error
	switch collection {
	case gateway.CollectionUsers:
		err = s.refreshUsers(ctx)
	case gateway.CollectionShops, gateway.CollectionMenuItems:
		err = s.refreshShops(ctx)
	case gateway.CollectionOrders:
		err = s.refreshOrders(ctx)
	case gateway.CollectionDeliveryProfiles:
		err = s.refreshPartners(ctx)
	case gateway.CollectionTransactions:
		err = s.refreshTransactions(ctx)
	case gateway.CollectionPlatformSettings:
		err = s.refreshSettings(ctx)
	default:
		return
	}

	if err != nil {
		s.logger.Warn("Feed-triggered refresh failed",
			slog.String("collection", collection), slog.Any("error", err))
	}
}

// RefreshAll re-fetches every collection in parallel and replaces the caches
// wholesale. Collections that fail keep their previous snapshot; the
// aggregate error names every failure.
func (s *adminStore) RefreshAll(ctx context.Context) error {
	refreshers := []func(context.Context) error{
		s.refreshUsers,
		s.refreshShops,
		s.refreshOrders,
		s.refreshPartners,
		s.refreshTransactions,
		s.refreshSettings,
	}

	errs := make([]error, len(refreshers))
	var wg sync.WaitGroup
	for i, refresh := range refreshers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = refresh(ctx)
		}()
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return domainerrors.ErrGatewayUnavailable.WrapMessage(err.Error())
	}

	return nil
}

func (s *adminStore) refreshUsers(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.gw.Select(ctx, gateway.CollectionUsers, gateway.Query{})
	if err != nil {
		return errors.Wrap(err, "refresh users")
	}

	users := make([]entity.User, len(rows))
	for i, row := range rows {
		users[i] = userFromRow(row)
	}

	s.mu.Lock()
	s.users = users
	s.mu.Unlock()

	return nil
}

// refreshShops fetches shops and menu items together and nests each menu
// under its parent shop.
func (s *adminStore) refreshShops(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	shopRows, err := s.gw.Select(ctx, gateway.CollectionShops, gateway.Query{})
	if err != nil {
		return errors.Wrap(err, "refresh shops")
	}
	itemRows, err := s.gw.Select(ctx, gateway.CollectionMenuItems, gateway.Query{})
	if err != nil {
		return errors.Wrap(err, "refresh menu items")
	}

	shops := make([]entity.Shop, len(shopRows))
	index := make(map[string]int, len(shopRows))
	for i, row := range shopRows {
		shops[i] = shopFromRow(row)
		index[shops[i].ID.String()] = i
	}
	for _, row := range itemRows {
		item := menuItemFromRow(row)
		if i, ok := index[item.ShopID.String()]; ok {
			shops[i].Menu = append(shops[i].Menu, item)
		}
	}

	s.mu.Lock()
	s.shops = shops
	s.mu.Unlock()

	return nil
}

func (s *adminStore) refreshOrders(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.gw.Select(ctx, gateway.CollectionOrders, gateway.Query{})
	if err != nil {
		return errors.Wrap(err, "refresh orders")
	}

	orders := make([]entity.Order, len(rows))
	for i, row := range rows {
		orders[i] = orderFromRow(row)
	}

	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()

	return nil
}

func (s *adminStore) refreshPartners(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.gw.Select(ctx, gateway.CollectionDeliveryProfiles, gateway.Query{})
	if err != nil {
		return errors.Wrap(err, "refresh delivery partners")
	}

	partners := make([]entity.DeliveryPartner, len(rows))
	for i, row := range rows {
		partners[i] = partnerFromRow(row)
	}

	s.mu.Lock()
	s.partners = partners
	s.mu.Unlock()

	return nil
}

func (s *adminStore) refreshTransactions(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.gw.Select(ctx, gateway.CollectionTransactions, gateway.Query{})
	if err != nil {
		return errors.Wrap(err, "refresh transactions")
	}

	transactions := make([]entity.Transaction, len(rows))
	for i, row := range rows {
		transactions[i] = transactionFromRow(row)
	}

	s.mu.Lock()
	s.transactions = transactions
	s.mu.Unlock()

	return nil
}

// refreshSettings loads the single settings blob. A missing row means a
// fresh deployment running on defaults.
func (s *adminStore) refreshSettings(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.gw.Select(ctx, gateway.CollectionPlatformSettings,
		gateway.Query{Filter: gateway.Row{"id": settingsRowID}})
	if err != nil {
		return errors.Wrap(err, "refresh settings")
	}

	settings := entity.DefaultSettings()
	if len(rows) > 0 {
		var stored entity.Settings
		if err := json.Unmarshal([]byte(rowString(rows[0], "data")), &stored); err != nil {
			return errors.Wrap(err, "decode settings blob")
		}
		settings = stored
	}

	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()

	return nil
}

// --- Read surface ---

func (s *adminStore) Users() []entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.User, len(s.users))
	copy(out, s.users)

	return out
}

func (s *adminStore) Shops() []entity.Shop {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Shop, len(s.shops))
	copy(out, s.shops)

	return out
}

func (s *adminStore) Orders() []entity.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Order, len(s.orders))
	copy(out, s.orders)

	return out
}

func (s *adminStore) DeliveryPartners() []entity.DeliveryPartner {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.DeliveryPartner, len(s.partners))
	copy(out, s.partners)

	return out
}

func (s *adminStore) Settings() entity.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.settings.Clone()
}

func (s *adminStore) SystemLogs() []entity.AuditEntry {
	return s.audit.snapshot()
}

// Stats recomputes the dashboard overview from the cached mirror. Revenue
// counts delivered orders only; active orders are every non-terminal status.
func (s *adminStore) Stats() usecase.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := usecase.Stats{
		TotalUsers:    len(s.users),
		TotalShops:    len(s.shops),
		TotalOrders:   len(s.orders),
		TotalPartners: len(s.partners),
		TotalRevenue:  decimal.Zero,
	}

	for _, shop := range s.shops {
		if shop.Status == entity.ShopApproved {
			stats.ActiveShops++
		}
	}
	for _, order := range s.orders {
		if order.Status == entity.OrderDelivered {
			stats.TotalRevenue = stats.TotalRevenue.Add(order.Amount)
		}
		if order.Status.IsOpen() {
			stats.ActiveOrders++
		}
	}

	return stats
}

// Earnings aggregates the cached transactions into the derived snapshot.
func (s *adminStore) Earnings() entity.EarningsSnapshot {
	s.mu.RLock()
	transactions := make([]entity.Transaction, len(s.transactions))
	copy(transactions, s.transactions)
	s.mu.RUnlock()

	now := time.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	snapshot := entity.EarningsSnapshot{
		Total:   decimal.Zero,
		Monthly: decimal.Zero,
		Today:   decimal.Zero,
	}

	byDay := make(map[time.Time]decimal.Decimal)
	for _, txn := range transactions {
		snapshot.Total = snapshot.Total.Add(txn.Amount)

		settled := txn.CreatedAt.UTC()
		if !settled.Before(startOfMonth) {
			snapshot.Monthly = snapshot.Monthly.Add(txn.Amount)
		}
		if !settled.Before(startOfDay) {
			snapshot.Today = snapshot.Today.Add(txn.Amount)
		}

		day := time.Date(settled.Year(), settled.Month(), settled.Day(), 0, 0, 0, 0, time.UTC)
		byDay[day] = byDay[day].Add(txn.Amount)
	}

	for day, revenue := range byDay {
		snapshot.ByDay = append(snapshot.ByDay, entity.RevenuePoint{Day: day, Revenue: revenue})
	}
	sort.Slice(snapshot.ByDay, func(i, j int) bool {
		return snapshot.ByDay[i].Day.Before(snapshot.ByDay[j].Day)
	})

	return snapshot
}

// mapGatewayError translates gateway sentinels into the domain error surface.
// Schema rejections never reach here; the adaptation layer consumes them.
func mapGatewayError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gateway.ErrNotFound):
		return domainerrors.ErrNotFound.WrapMessage(err.Error())
	case errors.Is(err, gateway.ErrUnavailable):
		return domainerrors.ErrGatewayUnavailable.WrapMessage(err.Error())
	default:
		return domainerrors.ErrInternalError.WrapMessage(err.Error())
	}
}

// ClearCache is the audited maintenance action behind the dashboard's
// "clear system cache" button. The remote state is untouched.
func (s *adminStore) ClearCache(ctx context.Context) error {
	s.audit.record(ctx, "Clear System Cache", entity.AuditSuccess)

	return nil
}

// ResetSystem is the audited maintenance action behind the dashboard's
// "reload application" button: the cached mirror is rebuilt from the gateway
// wholesale. The remote state is untouched.
func (s *adminStore) ResetSystem(ctx context.Context) error {
	if err := s.RefreshAll(ctx); err != nil {
		return err
	}

	s.audit.record(ctx, "System Reset", entity.AuditWarning)

	return nil
}
