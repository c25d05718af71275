package localstore

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"unibite/internal/domain/gateway"
)

// seed populates demo rows for any collection the snapshot does not hold
// yet. Collections that already exist are left alone, so a restarted
// process keeps its accumulated state.
func seed(snapshot *Snapshot) error {
	for collection, rows := range seedRows() {
		key := collectionKey(collection)
		if snapshot.Has(key) {
			continue
		}
		if err := snapshot.Set(key, rows); err != nil {
			return errors.Wrapf(err, "seed collection %s", collection)
		}
	}

	return nil
}

func seedRows() map[string][]gateway.Row {
	shopBurger := uuid.NewString()
	shopPizza := uuid.NewString()
	shopSubway := uuid.NewString()
	shopCoffee := uuid.NewString()

	userAlice := uuid.NewString()
	userDavid := uuid.NewString()
	userEva := uuid.NewString()

	orderDelivered := uuid.NewString()

	return map[string][]gateway.Row{
		gateway.CollectionUsers: {
			{"id": userAlice, "name": "Alice Johnson", "email": "alice@campus.edu", "role": "student", "status": "active", "join_date": "2024-03-12T00:00:00Z"},
			{"id": userDavid, "name": "David Wilson", "email": "david@campus.edu", "role": "student", "status": "active", "join_date": "2024-04-02T00:00:00Z"},
			{"id": userEva, "name": "Eva Green", "email": "eva@campus.edu", "role": "student", "status": "blocked", "join_date": "2024-01-28T00:00:00Z"},
			{"id": uuid.NewString(), "name": "Bob Smith", "email": "bob@campus.edu", "role": "shop_owner", "status": "active", "join_date": "2023-11-05T00:00:00Z"},
		},
		gateway.CollectionShops: {
			{"id": shopBurger, "name": "Burger King", "owner": "Bob Smith", "status": "approved", "rating": 4.5, "revenue": "5400", "image": "https://images.unsplash.com/photo-1571091718767-18b5b1457add?w=500&q=80"},
			{"id": shopPizza, "name": "Pizza Hut", "owner": "John Doe", "status": "disabled", "rating": 4.2, "revenue": "3200", "image": "https://images.unsplash.com/photo-1513104890138-7c749659a591?w=500&q=80"},
			{"id": shopSubway, "name": "Subway", "owner": "Jane Roe", "status": "approved", "rating": 4.6, "revenue": "7800", "image": "https://images.unsplash.com/photo-1594957640201-90b9b46f53bd?w=500&q=80"},
			{"id": shopCoffee, "name": "Starbucks", "owner": "Mike Coffee", "status": "approved", "rating": 4.8, "revenue": "12000", "image": "https://images.unsplash.com/photo-1509042239860-f550ce710b93?w=500&q=80"},
		},
		gateway.CollectionMenuItems: {
			{"id": uuid.NewString(), "shop_id": shopBurger, "name": "Whopper", "price": "199", "category": "Burgers", "available": true, "image": "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=500&q=80"},
			{"id": uuid.NewString(), "shop_id": shopBurger, "name": "Chicken Fries", "price": "149", "category": "Sides", "available": true, "image": "https://images.unsplash.com/photo-1626082927389-6cd097cdc6ec?w=500&q=80"},
			{"id": uuid.NewString(), "shop_id": shopBurger, "name": "Coke", "price": "60", "category": "Drinks", "available": true, "image": "https://images.unsplash.com/photo-1622483767028-3f66f32aef97?w=500&q=80"},
			{"id": uuid.NewString(), "shop_id": shopPizza, "name": "Pepperoni Pizza", "price": "499", "category": "Pizzas", "available": true, "image": "https://images.unsplash.com/photo-1628840042765-356cda07504e?w=500&q=80"},
			{"id": uuid.NewString(), "shop_id": shopPizza, "name": "Garlic Bread", "price": "129", "category": "Sides", "available": false, "image": "https://images.unsplash.com/photo-1573140247632-f84660f67627?w=500&q=80"},
			{"id": uuid.NewString(), "shop_id": shopSubway, "name": "Veggie Delite", "price": "229", "category": "Subs", "available": true, "image": "https://images.unsplash.com/photo-1509722747713-09247f329f74?w=500&q=80"},
			{"id": uuid.NewString(), "shop_id": shopSubway, "name": "Tuna Sub", "price": "269", "category": "Subs", "available": true, "image": "https://images.unsplash.com/photo-1550547660-d9450f859349?w=500&q=80"},
			{"id": uuid.NewString(), "shop_id": shopCoffee, "name": "Cappuccino", "price": "240", "category": "Coffee", "available": true, "image": "https://images.unsplash.com/photo-1572442388796-11668a67e53d?w=500&q=80"},
			{"id": uuid.NewString(), "shop_id": shopCoffee, "name": "Croissant", "price": "180", "category": "Bakery", "available": true, "image": "https://images.unsplash.com/photo-1555507036-ab1f4038808a?w=500&q=80"},
		},
		gateway.CollectionOrders: {
			{"id": orderDelivered, "user_name": "Alice Johnson", "shop_name": "Burger King", "status": "delivered", "amount": "25.50", "created_at": "2024-06-01T12:10:00Z", "items": []string{"Whopper Meal", "Coke"}},
			{"id": uuid.NewString(), "user_name": "David Wilson", "shop_name": "Pizza Hut", "status": "pending", "amount": "45.00", "created_at": "2024-06-01T12:40:00Z", "items": []string{"Large Pepperoni", "Garlic Bread"}},
			{"id": uuid.NewString(), "user_name": "Eva Green", "shop_name": "Starbucks", "status": "ready", "amount": "12.00", "created_at": "2024-06-01T13:05:00Z", "items": []string{"Latte", "Muffin"}},
			{"id": uuid.NewString(), "user_name": "Alice Johnson", "shop_name": "Subway", "status": "cancelled", "amount": "15.00", "created_at": "2024-05-31T19:30:00Z", "items": []string{"Footlong Sub"}},
			{"id": uuid.NewString(), "user_name": "David Wilson", "shop_name": "Burger King", "status": "picked", "amount": "30.00", "created_at": "2024-06-01T13:50:00Z", "items": []string{"Chicken Royale", "Fries"}},
		},
		gateway.CollectionDeliveryProfiles: {
			{"id": uuid.NewString(), "user_id": userAlice, "name": "Raj Patel", "status": "online", "completed_deliveries": 132, "rating": 4.7, "join_date": "2024-02-10T00:00:00Z", "phone": "+91 98765 10001", "hostel": "H-4", "room": "212", "enrollment": "EN2021045", "document": ""},
			{"id": uuid.NewString(), "user_id": userDavid, "name": "Sneha Iyer", "status": "active", "completed_deliveries": 87, "rating": 4.9, "join_date": "2024-03-22T00:00:00Z", "phone": "+91 98765 10002", "hostel": "H-1", "room": "105", "enrollment": "EN2022110", "document": ""},
		},
		gateway.CollectionTransactions: {
			{"id": uuid.NewString(), "order_id": orderDelivered, "shop_name": "Burger King", "amount": "25.50", "created_at": "2024-06-01T12:55:00Z"},
		},
	}
}
