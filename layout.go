package cafedash

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	nt "cafedash/entity"
	"cafedash/query"
)

// Layout is the table columns plus the session to start with.
type Layout struct {
	Columns       []nt.Column `yaml:"columns"`
	query.Session `yaml:",inline"`
}

// LoadLayout reads a layout file, filling in defaults for what it leaves out.
func LoadLayout(path string) (layout *Layout, err error) {

	data, err := os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read layout")
		return
	}

	layout = &Layout{}
	err = yaml.Unmarshal(data, layout)
	if err != nil {
		err = errors.Wrapf(err, "failed to unmarshal layout")
		return
	}

	layout.normalize()
	return
}

// DefaultLayout shows every column with the default session.
func DefaultLayout() *Layout {
	return &Layout{
		Columns: []nt.Column{
			{Field: "id", Title: "ID", Width: 8},
			{Field: "timestamp", Title: "日時", Width: 16},
			{Field: "items", Title: "商品", Width: 30},
			{Field: "gender_name", Title: "性別", Width: 4},
			{Field: "order_type_name", Title: "注文タイプ", Width: 10},
			{Field: "weather_name", Title: "天気", Width: 4},
			{Field: "time_slot_name", Title: "時間帯", Width: 8},
			{Field: "total_price", Title: "合計", Width: 8},
			{Field: "discount", Title: "割引", Width: 6},
			{Field: "final_price", Title: "支払額", Width: 8},
		},
		Session: query.NewSession(0),
	}
}

func (layout *Layout) normalize() {

	if len(layout.Columns) == 0 {
		layout.Columns = DefaultLayout().Columns
	}
	if layout.Sort.Column == "" {
		layout.Sort = nt.DefaultSort
	}
	layout.Filter.Mode = layout.Filter.Mode.Normal()
	layout.PageSize = query.PageSize(layout.PageSize)
	layout.Page = 0
}
