package impl

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"unibite/internal/domain/entity"
	"unibite/internal/domain/gateway"
)

// Row decoding is deliberately tolerant: the wire values arrive either as the
// types Go wrote (local profile before a restart), as their JSON round-trip
// shapes (string ids, float64 numbers), or as driver-native types. Fields the
// backend does not have simply decode to zero values.

func rowString(row gateway.Row, field string) string {
	switch v := row[field].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

func rowFloat(row gateway.Row, field string) float64 {
	switch v := row[field].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, _ := v.Float64()

		return f
	default:
		return 0
	}
}

func rowInt(row gateway.Row, field string) int {
	return int(rowFloat(row, field))
}

func rowBool(row gateway.Row, field string) bool {
	v, _ := row[field].(bool)

	return v
}

func rowDecimal(row gateway.Row, field string) decimal.Decimal {
	switch v := row[field].(type) {
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero
		}

		return d
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero
		}

		return d
	case decimal.Decimal:
		return v
	default:
		return decimal.Zero
	}
}

func rowTime(row gateway.Row, field string) time.Time {
	switch v := row[field].(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t
			}
		}
	}

	return time.Time{}
}

func rowUUID(row gateway.Row, field string) uuid.UUID {
	switch v := row[field].(type) {
	case uuid.UUID:
		return v
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil
		}

		return id
	default:
		return uuid.Nil
	}
}

func rowStrings(row gateway.Row, field string) []string {
	switch v := row[field].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}

		return out
	default:
		return nil
	}
}

// --- Users ---

func userToRow(user *entity.User) gateway.Row {
	return gateway.Row{
		"id":        user.ID.String(),
		"name":      user.Name,
		"email":     user.Email,
		"role":      string(user.Role),
		"status":    string(user.Status),
		"join_date": user.JoinDate.UTC().Format(time.RFC3339),
	}
}

func userFromRow(row gateway.Row) entity.User {
	status := entity.UserStatus(rowString(row, "status"))
	if !status.IsValid() {
		status = entity.UserActive
	}

	return entity.User{
		ID:       rowUUID(row, "id"),
		Name:     rowString(row, "name"),
		Email:    rowString(row, "email"),
		Role:     entity.UserRole(rowString(row, "role")),
		Status:   status,
		JoinDate: rowTime(row, "join_date"),
	}
}

// --- Shops ---

func shopToRow(shop *entity.Shop) gateway.Row {
	return gateway.Row{
		"id":      shop.ID.String(),
		"name":    shop.Name,
		"owner":   shop.Owner,
		"status":  string(shop.Status),
		"rating":  shop.Rating,
		"revenue": shop.Revenue.String(),
		"image":   shop.Image,
	}
}

// shopFromRow decodes a shop row. Backends predating the approval workflow
// expose an is_open boolean instead of a status column; it is normalized to
// approved/disabled here.
func shopFromRow(row gateway.Row) entity.Shop {
	status := entity.ShopStatus(rowString(row, "status"))
	if !status.IsValid() {
		if _, hasLegacyFlag := row["is_open"]; hasLegacyFlag {
			if rowBool(row, "is_open") {
				status = entity.ShopApproved
			} else {
				status = entity.ShopDisabled
			}
		} else {
			status = entity.ShopPending
		}
	}

	return entity.Shop{
		ID:      rowUUID(row, "id"),
		Name:    rowString(row, "name"),
		Owner:   rowString(row, "owner"),
		Status:  status,
		Rating:  rowFloat(row, "rating"),
		Revenue: rowDecimal(row, "revenue"),
		Image:   rowString(row, "image"),
	}
}

// --- Menu items ---

func menuItemToRow(item *entity.MenuItem) gateway.Row {
	return gateway.Row{
		"id":        item.ID.String(),
		"shop_id":   item.ShopID.String(),
		"name":      item.Name,
		"price":     item.Price.String(),
		"category":  item.Category,
		"available": item.Available,
		"image":     item.Image,
	}
}

func menuItemFromRow(row gateway.Row) entity.MenuItem {
	return entity.MenuItem{
		ID:        rowUUID(row, "id"),
		ShopID:    rowUUID(row, "shop_id"),
		Name:      rowString(row, "name"),
		Price:     rowDecimal(row, "price"),
		Category:  rowString(row, "category"),
		Available: rowBool(row, "available"),
		Image:     rowString(row, "image"),
	}
}

// --- Orders ---

func orderFromRow(row gateway.Row) entity.Order {
	return entity.Order{
		ID:        rowUUID(row, "id"),
		UserName:  rowString(row, "user_name"),
		ShopName:  rowString(row, "shop_name"),
		Items:     rowStrings(row, "items"),
		Amount:    rowDecimal(row, "amount"),
		Status:    entity.OrderStatus(rowString(row, "status")),
		CreatedAt: rowTime(row, "created_at"),
	}
}

// --- Delivery partners ---

func partnerToRow(partner *entity.DeliveryPartner) gateway.Row {
	return gateway.Row{
		"id":                   partner.ID.String(),
		"user_id":              partner.UserID.String(),
		"name":                 partner.Name,
		"status":               string(partner.Status),
		"completed_deliveries": partner.CompletedDeliveries,
		"rating":               partner.Rating,
		"join_date":            partner.JoinDate.UTC().Format(time.RFC3339),
		"phone":                partner.Phone,
		"hostel":               partner.Hostel,
		"room":                 partner.Room,
		"enrollment":           partner.Enrollment,
		"document":             partner.Document,
	}
}

func partnerFromRow(row gateway.Row) entity.DeliveryPartner {
	status := entity.PartnerStatus(rowString(row, "status"))
	if !status.IsValid() {
		status = entity.PartnerActive
	}

	return entity.DeliveryPartner{
		ID:                  rowUUID(row, "id"),
		UserID:              rowUUID(row, "user_id"),
		Name:                rowString(row, "name"),
		Status:              status,
		CompletedDeliveries: rowInt(row, "completed_deliveries"),
		Rating:              rowFloat(row, "rating"),
		JoinDate:            rowTime(row, "join_date"),
		Phone:               rowString(row, "phone"),
		Hostel:              rowString(row, "hostel"),
		Room:                rowString(row, "room"),
		Enrollment:          rowString(row, "enrollment"),
		Document:            rowString(row, "document"),
	}
}

// --- Transactions ---

func transactionFromRow(row gateway.Row) entity.Transaction {
	return entity.Transaction{
		ID:        rowUUID(row, "id"),
		OrderID:   rowUUID(row, "order_id"),
		ShopName:  rowString(row, "shop_name"),
		Amount:    rowDecimal(row, "amount"),
		CreatedAt: rowTime(row, "created_at"),
	}
}
