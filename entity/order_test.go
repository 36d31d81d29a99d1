package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYen(t *testing.T) {

	cases := map[float64]string{
		0:       "¥0",
		5:       "¥5",
		999:     "¥999",
		1000:    "¥1,000",
		1234567: "¥1,234,567",
		1299.5:  "¥1,300",
		1299.49: "¥1,299",
		-50:     "-¥50",
		-1500.5: "-¥1,501",
		-0.2:    "¥0",
		1e20:    "¥100,000,000,000,000,000,000",
	}
	for amount, want := range cases {
		assert.Equal(t, want, Yen(amount), "%v", amount)
	}
}

func TestBadge(t *testing.T) {

	lo, hi := 500.0, 1500.0

	assert.Equal(t, "検索語: コーヒー ケーキ (OR検索)",
		Descriptor{Attribute: Items, Kind: TextSearch, Terms: []string{"コーヒー", "ケーキ"}, Mode: ModeOr}.Badge())
	assert.Equal(t, "天気: 晴れ, 雨",
		Descriptor{Attribute: Weather, Kind: CategoricalSet, Values: []string{"晴れ", "雨"}}.Badge())
	assert.Equal(t, "価格: 500円 - 10,000円",
		Descriptor{Attribute: TotalPrice, Kind: NumericRange, Min: &lo}.Badge())
	assert.Equal(t, "価格: 0円 - 1,500円",
		Descriptor{Attribute: TotalPrice, Kind: NumericRange, Max: &hi}.Badge())
}

func TestParseTimestamp(t *testing.T) {

	tm, err := ParseTimestamp("2024-03-01T09:00:00+09:00")
	require.NoError(t, err)
	assert.Equal(t, 9, tm.Hour())

	_, err = ParseTimestamp("2024-03-01 07:00 bad")
	assert.Error(t, err)

	assert.Equal(t, "2024/03/01 09:00", FormatTimestamp("2024-03-01T09:00:00+09:00"))
	assert.Equal(t, "junk", FormatTimestamp("junk"))
}

func TestLabel(t *testing.T) {

	order := Order{GenderName: "女性", OrderTypeName: Takeout, WeatherName: "雨", TimeSlotName: "ランチ"}

	assert.Equal(t, "女性", order.Label(Gender))
	assert.Equal(t, Takeout, order.Label(OrderType))
	assert.Equal(t, "雨", order.Label(Weather))
	assert.Equal(t, "ランチ", order.Label(TimeSlot))
	assert.Equal(t, "", order.Label(TotalPrice))
}
