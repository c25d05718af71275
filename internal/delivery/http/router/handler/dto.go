package handler

import (
	"time"

	"unibite/internal/domain/entity"
	"unibite/internal/usecase"
)

// Response models for the JSON surface. Domain entities stay tag-free; the
// wire shape is owned here.

type userResponse struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	Status   string    `json:"status"`
	JoinDate time.Time `json:"joinDate"`
}

func toUserResponse(u entity.User) userResponse {
	return userResponse{
		ID:       u.ID.String(),
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role.String(),
		Status:   string(u.Status),
		JoinDate: u.JoinDate,
	}
}

func toUserResponses(users []entity.User) []userResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}

	return out
}

type menuItemResponse struct {
	ID        string `json:"id"`
	ShopID    string `json:"shopId"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Category  string `json:"category"`
	Available bool   `json:"available"`
	Image     string `json:"image,omitempty"`
}

func toMenuItemResponse(item entity.MenuItem) menuItemResponse {
	return menuItemResponse{
		ID:        item.ID.String(),
		ShopID:    item.ShopID.String(),
		Name:      item.Name,
		Price:     item.Price.String(),
		Category:  item.Category,
		Available: item.Available,
		Image:     item.Image,
	}
}

type shopResponse struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Owner   string             `json:"owner,omitempty"`
	Status  string             `json:"status"`
	Rating  float64            `json:"rating"`
	Revenue string             `json:"revenue"`
	Image   string             `json:"image,omitempty"`
	Menu    []menuItemResponse `json:"menu"`
}

func toShopResponse(shop entity.Shop) shopResponse {
	menu := make([]menuItemResponse, len(shop.Menu))
	for i, item := range shop.Menu {
		menu[i] = toMenuItemResponse(item)
	}

	return shopResponse{
		ID:      shop.ID.String(),
		Name:    shop.Name,
		Owner:   shop.Owner,
		Status:  shop.Status.String(),
		Rating:  shop.Rating,
		Revenue: shop.Revenue.String(),
		Image:   shop.Image,
		Menu:    menu,
	}
}

func toShopResponses(shops []entity.Shop) []shopResponse {
	out := make([]shopResponse, len(shops))
	for i, shop := range shops {
		out[i] = toShopResponse(shop)
	}

	return out
}

type credentialResponse struct {
	ShopID   string `json:"shopId"`
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

type orderResponse struct {
	ID        string    `json:"id"`
	UserName  string    `json:"userName"`
	ShopName  string    `json:"shopName"`
	Items     []string  `json:"items"`
	Amount    string    `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func toOrderResponses(orders []entity.Order) []orderResponse {
	out := make([]orderResponse, len(orders))
	for i, order := range orders {
		out[i] = orderResponse{
			ID:        order.ID.String(),
			UserName:  order.UserName,
			ShopName:  order.ShopName,
			Items:     order.Items,
			Amount:    order.Amount.String(),
			Status:    order.Status.String(),
			CreatedAt: order.CreatedAt,
		}
	}

	return out
}

type partnerResponse struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Status              string    `json:"status"`
	CompletedDeliveries int       `json:"completedDeliveries"`
	Rating              float64   `json:"rating"`
	JoinDate            time.Time `json:"joinDate"`
	Phone               string    `json:"phone,omitempty"`
	Hostel              string    `json:"hostel,omitempty"`
	Room                string    `json:"room,omitempty"`
	Enrollment          string    `json:"enrollment,omitempty"`
}

func toPartnerResponse(p entity.DeliveryPartner) partnerResponse {
	return partnerResponse{
		ID:                  p.ID.String(),
		Name:                p.Name,
		Status:              string(p.Status),
		CompletedDeliveries: p.CompletedDeliveries,
		Rating:              p.Rating,
		JoinDate:            p.JoinDate,
		Phone:               p.Phone,
		Hostel:              p.Hostel,
		Room:                p.Room,
		Enrollment:          p.Enrollment,
	}
}

func toPartnerResponses(partners []entity.DeliveryPartner) []partnerResponse {
	out := make([]partnerResponse, len(partners))
	for i, p := range partners {
		out[i] = toPartnerResponse(p)
	}

	return out
}

type auditEntryResponse struct {
	ID          string    `json:"id"`
	Action      string    `json:"action"`
	PerformedBy string    `json:"performedBy"`
	Date        time.Time `json:"date"`
	Severity    string    `json:"severity"`
}

func toAuditEntryResponses(entries []entity.AuditEntry) []auditEntryResponse {
	out := make([]auditEntryResponse, len(entries))
	for i, entry := range entries {
		out[i] = auditEntryResponse{
			ID:          entry.ID.String(),
			Action:      entry.Action,
			PerformedBy: entry.PerformedBy,
			Date:        entry.Date,
			Severity:    string(entry.Severity),
		}
	}

	return out
}

type statsResponse struct {
	TotalUsers    int    `json:"totalUsers"`
	TotalShops    int    `json:"totalShops"`
	ActiveShops   int    `json:"activeShops"`
	TotalOrders   int    `json:"totalOrders"`
	ActiveOrders  int    `json:"activeOrders"`
	TotalPartners int    `json:"totalPartners"`
	TotalRevenue  string `json:"totalRevenue"`
}

func toStatsResponse(stats usecase.Stats) statsResponse {
	return statsResponse{
		TotalUsers:    stats.TotalUsers,
		TotalShops:    stats.TotalShops,
		ActiveShops:   stats.ActiveShops,
		TotalOrders:   stats.TotalOrders,
		ActiveOrders:  stats.ActiveOrders,
		TotalPartners: stats.TotalPartners,
		TotalRevenue:  stats.TotalRevenue.String(),
	}
}

type revenuePointResponse struct {
	Day     string `json:"day"`
	Revenue string `json:"revenue"`
}

type earningsResponse struct {
	Total   string                 `json:"total"`
	Monthly string                 `json:"monthly"`
	Today   string                 `json:"today"`
	ByDay   []revenuePointResponse `json:"byDay"`
}

func toEarningsResponse(snapshot entity.EarningsSnapshot) earningsResponse {
	byDay := make([]revenuePointResponse, len(snapshot.ByDay))
	for i, point := range snapshot.ByDay {
		byDay[i] = revenuePointResponse{
			Day:     point.Day.Format("2006-01-02"),
			Revenue: point.Revenue.String(),
		}
	}

	return earningsResponse{
		Total:   snapshot.Total.String(),
		Monthly: snapshot.Monthly.String(),
		Today:   snapshot.Today.String(),
		ByDay:   byDay,
	}
}

type sessionResponse struct {
	Stage          string `json:"stage"`
	Loading        bool   `json:"loading"`
	FailedAttempts int    `json:"failedAttempts"`
}

type advanceResponse struct {
	Stage       string `json:"stage"`
	AccessToken string `json:"accessToken,omitempty"`
}

type writeOutcomeResponse struct {
	Degraded      bool     `json:"degraded"`
	DroppedFields []string `json:"droppedFields,omitempty"`
}

func toWriteOutcomeResponse(outcome usecase.WriteOutcome) writeOutcomeResponse {
	return writeOutcomeResponse{
		Degraded:      outcome.Degraded,
		DroppedFields: outcome.DroppedFields,
	}
}
