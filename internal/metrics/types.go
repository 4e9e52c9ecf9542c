package metrics

// Role identifies the semantic meaning of one spreadsheet column.
type Role string

const (
	// RolePrice is the column holding the order amount.
	RolePrice Role = "price"
	// RoleTimestamp is the column holding the order date.
	RoleTimestamp Role = "timestamp"
)

// RoleSpec declares the header cell a role is expected to match.
// Matching is exact after normalization (trim, lowercase, strip all
// internal whitespace), so "Item Price" and "ITEM  PRICE" both satisfy
// a spec with Header "Item Price".
type RoleSpec struct {
	Role   Role
	Header string
}

// DefaultRoleSpecs returns the role table for the standard orders layout.
func DefaultRoleSpecs(priceHeader, timestampHeader string) []RoleSpec {
	return []RoleSpec{
		{Role: RolePrice, Header: priceHeader},
		{Role: RoleTimestamp, Header: timestampHeader},
	}
}

// ColumnMap maps each resolved role to its zero-based body-row index.
// It is resolved once per table and is constant for the lifetime of one
// aggregation request.
type ColumnMap map[Role]int

// Table is a raw spreadsheet range: row 0 is the header, rows 1..N are
// body rows. Cells are strings or numbers as delivered by the Sheets
// API; rows are independently sized and a short row's missing trailing
// cells are treated as empty.
type Table [][]any

// Header returns the header row, or nil for an empty table.
func (t Table) Header() []any {
	if len(t) == 0 {
		return nil
	}
	return t[0]
}

// Body returns the body rows (everything after the header).
func (t Table) Body() [][]any {
	if len(t) <= 1 {
		return nil
	}
	return t[1:]
}

// Summary holds the scalar KPIs for one aggregation request.
type Summary struct {
	TotalAmount       float64 `json:"totalAmount"`
	OrderCount        int     `json:"orderCount"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	WindowStart       string  `json:"windowStart"`
	WindowEnd         string  `json:"windowEnd"`
	Source            string  `json:"source,omitempty"`
}

// SeriesPoint is one calendar date and the sum of amounts of all
// accepted rows sharing that date.
type SeriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}
