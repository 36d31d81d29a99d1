package entity

// Column configures one column of the order table.
type Column struct {
	Field  string `yaml:"field"`
	Title  string `yaml:"title,omitempty"`
	Width  int    `yaml:"width"`
	Format string `yaml:"format,omitempty"`
	Hidden bool   `yaml:"hidden,omitempty"`
}

// Heading returns the title, falling back to the field name.
func (col Column) Heading() string {
	if col.Title != "" {
		return col.Title
	}
	return col.Field
}
