package entity

import (
	"fmt"
	"strings"
)

// Attribute identifies a filterable attribute family of an order.
type Attribute int

const (
	Items Attribute = iota
	Gender
	OrderType
	Weather
	TimeSlot
	TotalPrice
)

// Attributes lists every attribute family in gate order.
var Attributes = []Attribute{Items, Gender, OrderType, Weather, TimeSlot, TotalPrice}

// Categorical lists the attributes filtered by a set of display labels.
var Categorical = []Attribute{Gender, OrderType, Weather, TimeSlot}

var attributeNames = map[Attribute]string{
	Items:      "items",
	Gender:     "gender_name",
	OrderType:  "order_type_name",
	Weather:    "weather_name",
	TimeSlot:   "time_slot_name",
	TotalPrice: "total_price",
}

var attributeLabels = map[Attribute]string{
	Items:      "検索語",
	Gender:     "性別",
	OrderType:  "注文タイプ",
	Weather:    "天気",
	TimeSlot:   "時間帯",
	TotalPrice: "価格",
}

// String returns the column name of the attribute.
func (attr Attribute) String() string {
	return attributeNames[attr]
}

// MarshalText renders the column name in json.
func (attr Attribute) MarshalText() ([]byte, error) {
	return []byte(attr.String()), nil
}

// Label returns the display label of the attribute.
func (attr Attribute) Label() string {
	return attributeLabels[attr]
}

// Kind is the evaluation strategy of a descriptor.
type Kind int

const (
	TextSearch Kind = iota
	CategoricalSet
	NumericRange
)

var kindNames = map[Kind]string{
	TextSearch:     "text",
	CategoricalSet: "set",
	NumericRange:   "range",
}

func (kind Kind) String() string {
	return kindNames[kind]
}

func (kind Kind) MarshalText() ([]byte, error) {
	return []byte(kind.String()), nil
}

var attributeKinds = map[Attribute]Kind{
	Items:      TextSearch,
	Gender:     CategoricalSet,
	OrderType:  CategoricalSet,
	Weather:    CategoricalSet,
	TimeSlot:   CategoricalSet,
	TotalPrice: NumericRange,
}

// Kind returns the fixed evaluation strategy for the attribute.
func (attr Attribute) Kind() Kind {
	return attributeKinds[attr]
}

// SearchMode combines search terms.
type SearchMode string

const (
	ModeAnd SearchMode = "AND"
	ModeOr  SearchMode = "OR"
)

// Normal returns the mode, defaulting anything unrecognized to AND.
func (mode SearchMode) Normal() SearchMode {
	if strings.EqualFold(string(mode), string(ModeOr)) {
		return ModeOr
	}
	return ModeAnd
}

// Options are the display labels offered per categorical attribute.
var Options = map[Attribute][]string{
	Gender:    {"男性", "女性"},
	OrderType: {"店内", "テイクアウト"},
	Weather:   {"晴れ", "曇り", "雨"},
	TimeSlot:  {"モーニング", "ランチ", "ティータイム", "ディナー"},
}

const (
	// Takeout is the order type label for takeaway orders.
	Takeout = "テイクアウト"
	// DineIn is the order type label for eat-in orders.
	DineIn = "店内"
)

// FilterState holds the raw filter inputs of a session.
type FilterState struct {
	Search     string     `yaml:"search,omitempty" json:"search,omitempty"`
	Mode       SearchMode `yaml:"mode,omitempty" json:"mode,omitempty"`
	Genders    []string   `yaml:"genders,omitempty" json:"genders,omitempty"`
	OrderTypes []string   `yaml:"order_types,omitempty" json:"order_types,omitempty"`
	Weathers   []string   `yaml:"weathers,omitempty" json:"weathers,omitempty"`
	TimeSlots  []string   `yaml:"time_slots,omitempty" json:"time_slots,omitempty"`
	PriceMin   string     `yaml:"price_min,omitempty" json:"price_min,omitempty"`
	PriceMax   string     `yaml:"price_max,omitempty" json:"price_max,omitempty"`
}

// Selected returns the selection set for a categorical attribute.
func (state FilterState) Selected(attr Attribute) []string {
	switch attr {
	case Gender:
		return state.Genders
	case OrderType:
		return state.OrderTypes
	case Weather:
		return state.Weathers
	case TimeSlot:
		return state.TimeSlots
	}
	return nil
}

// WithSelected returns a copy of state with the selection for attr replaced.
func (state FilterState) WithSelected(attr Attribute, values []string) FilterState {
	switch attr {
	case Gender:
		state.Genders = values
	case OrderType:
		state.OrderTypes = values
	case Weather:
		state.Weathers = values
	case TimeSlot:
		state.TimeSlots = values
	}
	return state
}

// Descriptor is a normalized, attribute-tagged filter rule.
type Descriptor struct {
	Attribute Attribute  `json:"attribute"`
	Kind      Kind       `json:"kind"`
	Terms     []string   `json:"terms,omitempty"`
	Mode      SearchMode `json:"mode,omitempty"`
	Values    []string   `json:"values,omitempty"`
	Min       *float64   `json:"min,omitempty"`
	Max       *float64   `json:"max,omitempty"`
}

// Badge renders a one-line summary of the descriptor.
func (desc Descriptor) Badge() string {
	switch desc.Kind {
	case TextSearch:
		return fmt.Sprintf("%s: %s (%s検索)", desc.Attribute.Label(), strings.Join(desc.Terms, " "), desc.Mode)
	case CategoricalSet:
		return fmt.Sprintf("%s: %s", desc.Attribute.Label(), strings.Join(desc.Values, ", "))
	case NumericRange:
		lo, hi := "0", "10,000"
		if desc.Min != nil {
			lo = strings.TrimPrefix(Yen(*desc.Min), "¥")
		}
		if desc.Max != nil {
			hi = strings.TrimPrefix(Yen(*desc.Max), "¥")
		}
		return fmt.Sprintf("%s: %s円 - %s円", desc.Attribute.Label(), lo, hi)
	}
	return ""
}

// SortColumn names a sortable column.
type SortColumn string

const (
	SortID         SortColumn = "id"
	SortTimestamp  SortColumn = "timestamp"
	SortTotalPrice SortColumn = "total_price"
	SortDiscount   SortColumn = "discount"
)

// SortColumns lists sortable columns in cycling order.
var SortColumns = []SortColumn{SortTimestamp, SortID, SortTotalPrice, SortDiscount}

// Sortable reports whether the column can be sorted on.
func (col SortColumn) Sortable() bool {
	for _, sc := range SortColumns {
		if sc == col {
			return true
		}
	}
	return false
}

// Sort represents a sort directive for order queries.
type Sort struct {
	Column SortColumn `yaml:"column" json:"column"`
	Desc   bool       `yaml:"desc,omitempty" json:"desc"`
}

// DefaultSort is applied when no sort has been chosen.
var DefaultSort = Sort{Column: SortTimestamp, Desc: true}
