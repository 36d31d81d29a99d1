// Package storetest holds fixtures shared by store implementations' tests.
package storetest

import (
	"fmt"

	nt "cafedash/entity"
)

// Scenario returns three small orders with known filter outcomes.
func Scenario() []nt.Order {
	return []nt.Order{
		{
			ID: "O1", Timestamp: "2024-03-01T09:00:00+09:00", TotalPrice: 800, FinalPrice: 800,
			GenderName: "男性", OrderTypeName: nt.DineIn, WeatherName: "晴れ", TimeSlotName: "モーニング",
			Items: []nt.OrderItem{{ID: "i1", MenuItemName: "コーヒー", CategoryName: "ドリンク", Price: 800}},
		},
		{
			ID: "O2", Timestamp: "2024-03-01T12:00:00+09:00", TotalPrice: 1200, FinalPrice: 1200,
			GenderName: "女性", OrderTypeName: nt.Takeout, WeatherName: "雨", TimeSlotName: "ランチ",
			Items: []nt.OrderItem{{ID: "i2", MenuItemName: "ケーキ", CategoryName: "ケーキ", Price: 1200}},
		},
		{
			ID: "O3", Timestamp: "2024-03-01T15:00:00+09:00", TotalPrice: 600, Discount: 50, FinalPrice: 550,
			GenderName: "女性", OrderTypeName: nt.DineIn, WeatherName: "晴れ", TimeSlotName: "ランチ",
			Items: []nt.OrderItem{
				{ID: "i3", MenuItemName: "コーヒー", CategoryName: "ドリンク", Price: 300},
				{ID: "i4", MenuItemName: "ケーキ", CategoryName: "ケーキ", Price: 300},
			},
		},
	}
}

// Many returns count item-less orders with ascending prices.
func Many(count int) []nt.Order {
	orders := make([]nt.Order, count)
	for i := range orders {
		orders[i] = nt.Order{
			ID:         fmt.Sprintf("o%03d", i),
			Timestamp:  fmt.Sprintf("2024-03-01T10:%02d:00", i%60),
			TotalPrice: float64(100 * (i + 1)),
			GenderName: []string{"男性", "女性"}[i%2],
			Items:      []nt.OrderItem{},
		}
	}
	return orders
}

// IDs of orders in order.
func IDs(orders []nt.Order) []string {
	out := []string{}
	for _, order := range orders {
		out = append(out, order.ID)
	}
	return out
}
