package entity

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Order is one customer transaction as served by the backend.
type Order struct {
	ID            string      `json:"id"`
	Timestamp     string      `json:"timestamp"`
	Gender        int         `json:"gender"`
	GenderName    string      `json:"gender_name"`
	OrderType     int         `json:"order_type"`
	OrderTypeName string      `json:"order_type_name"`
	Weather       int         `json:"weather"`
	WeatherName   string      `json:"weather_name"`
	TimeSlot      int         `json:"time_slot"`
	TimeSlotName  string      `json:"time_slot_name"`
	TotalPrice    float64     `json:"total_price"`
	Discount      float64     `json:"discount"`
	FinalPrice    float64     `json:"final_price"`
	Items         []OrderItem `json:"items"`
}

// OrderItem is a single line of an order.
type OrderItem struct {
	ID            string  `json:"id"`
	MenuItem      int     `json:"menu_item"`
	MenuItemName  string  `json:"menu_item_name"`
	MenuItemPrice float64 `json:"menu_item_price"`
	CategoryName  string  `json:"category_name"`
	Price         float64 `json:"price"`
}

// Label returns the display label of a categorical attribute.
func (order Order) Label(attr Attribute) string {
	switch attr {
	case Gender:
		return order.GenderName
	case OrderType:
		return order.OrderTypeName
	case Weather:
		return order.WeatherName
	case TimeSlot:
		return order.TimeSlotName
	}
	return ""
}

// Time parses the order timestamp.
func (order Order) Time() (time.Time, error) {
	return ParseTimestamp(order.Timestamp)
}

// Normalize guarantees a non-nil item list.
func Normalize(orders []Order) []Order {
	for i := range orders {
		if orders[i].Items == nil {
			orders[i].Items = []OrderItem{}
		}
	}
	return orders
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp parses the ISO-8601 variants the backend emits.
func ParseTimestamp(ts string) (tm time.Time, err error) {

	for _, layout := range timestampLayouts {
		tm, err = time.Parse(layout, ts)
		if err == nil {
			return
		}
	}

	err = errors.Errorf("unrecognized timestamp %q", ts)
	return
}

// FormatTimestamp renders a timestamp for display, falling back to the raw string.
func FormatTimestamp(ts string) string {
	tm, err := ParseTimestamp(ts)
	if err != nil {
		return ts
	}
	return tm.Format("2006/01/02 15:04")
}

// Yen formats an amount as whole yen with thousands separators,
// rounding half up.
func Yen(amount float64) string {

	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "¥-"
	}

	neg := amount < 0
	if neg {
		amount = -amount
	}

	digits := strconv.FormatFloat(math.Floor(amount+0.5), 'f', 0, 64)
	if digits == "0" {
		neg = false
	}

	var buf strings.Builder
	for i, ch := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			buf.WriteByte(',')
		}
		buf.WriteRune(ch)
	}

	if neg {
		return fmt.Sprintf("-¥%s", buf.String())
	}
	return "¥" + buf.String()
}

// ErrNotFound is returned when an order id is not in the snapshot.
var ErrNotFound = errors.New("order not found")
