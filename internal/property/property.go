package property

import "encoding/json"

// Property is one real-estate listing. Fields are stored exactly as they
// appeared in the source CSV. Records are immutable once built; the store
// hands out copies by value.
type Property struct {
	ID             uint64 `json:"id"`
	Prefecture     string `json:"prefecture"`
	City           string `json:"city"`
	Town           string `json:"town"`
	Chome          string `json:"chome"`
	Banchi         string `json:"banchi"`
	Go             string `json:"go"`
	Building       string `json:"building"`
	Price          string `json:"price"`
	NearestStation string `json:"nearest_station"`
	PropertyType   string `json:"property_type"`
	LandArea       string `json:"land_area"`
}

// FullAddress concatenates the seven address components in Japanese
// addressing order (largest unit first). Components are stored without
// separators, so plain concatenation yields a well-formed address.
func (p Property) FullAddress() string {
	return p.Prefecture + p.City + p.Town + p.Chome + p.Banchi + p.Go + p.Building
}

// MarshalJSON adds the computed full_address field right after id.
func (p Property) MarshalJSON() ([]byte, error) {
	type alias Property // drop methods to avoid recursion
	return json.Marshal(struct {
		ID          uint64 `json:"id"`
		FullAddress string `json:"full_address"`
		alias
	}{
		ID:          p.ID,
		FullAddress: p.FullAddress(),
		alias:       alias(p),
	})
}

// Column describes one CSV column: its header name and how its value is
// assigned onto a Property.
type Column struct {
	Name string
	Set  func(*Property, string)
}

// Columns is the CSV schema in file order. The header row of an upload must
// match these names exactly (case-insensitive); data rows must have exactly
// this many fields.
var Columns = []Column{
	{"prefecture", func(p *Property, v string) { p.Prefecture = v }},
	{"city", func(p *Property, v string) { p.City = v }},
	{"town", func(p *Property, v string) { p.Town = v }},
	{"chome", func(p *Property, v string) { p.Chome = v }},
	{"banchi", func(p *Property, v string) { p.Banchi = v }},
	{"go", func(p *Property, v string) { p.Go = v }},
	{"building", func(p *Property, v string) { p.Building = v }},
	{"price", func(p *Property, v string) { p.Price = v }},
	{"nearest_station", func(p *Property, v string) { p.NearestStation = v }},
	{"property_type", func(p *Property, v string) { p.PropertyType = v }},
	{"land_area", func(p *Property, v string) { p.LandArea = v }},
}

// ColumnNames returns the schema's header names in order.
func ColumnNames() []string {
	names := make([]string, len(Columns))
	for i, c := range Columns {
		names[i] = c.Name
	}
	return names
}
