package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ordersTable() Table {
	return Table{
		{"Item Price", "Purchase Date Time"},
		{"100,50", "2024-03-01"},
		{"49,50", "2024-03-01"},
		{"200", "2024-03-02"},
		{"not a number", "2024-03-03"}, // amount fails, still counts
		{"75", "not a date"},           // date fails, dropped
		{"10", "2024-04-01"},           // outside window in filtered tests
	}
}

func resolveOrders(t *testing.T) ColumnMap {
	t.Helper()
	cols, err := ResolveColumns(ordersTable().Header(), DefaultRoleSpecs("Item Price", "Purchase Date Time"))
	require.NoError(t, err)
	return cols
}

func TestSummarize(t *testing.T) {
	cols := resolveOrders(t)

	t.Run("unbounded window", func(t *testing.T) {
		s := Summarize(ordersTable(), cols, DefaultWindow(), time.UTC)

		assert.Equal(t, 5, s.OrderCount, "unparseable date drops the row, unparseable amount does not")
		assert.InDelta(t, 360.0, s.TotalAmount, 1e-9)
		assert.InDelta(t, 72.0, s.AverageOrderValue, 1e-9)
		assert.Equal(t, DefaultWindowStart, s.WindowStart)
		assert.Equal(t, DefaultWindowEnd, s.WindowEnd)
	})

	t.Run("bounded window", func(t *testing.T) {
		w := Window{Start: "2024-03-01", End: "2024-03-31"}
		s := Summarize(ordersTable(), cols, w, time.UTC)

		assert.Equal(t, 4, s.OrderCount)
		assert.InDelta(t, 350.0, s.TotalAmount, 1e-9)
		assert.InDelta(t, 87.5, s.AverageOrderValue, 1e-9)
	})

	t.Run("empty body", func(t *testing.T) {
		s := Summarize(Table{{"Item Price", "Purchase Date Time"}}, cols, DefaultWindow(), time.UTC)

		assert.Zero(t, s.TotalAmount)
		assert.Zero(t, s.OrderCount)
		assert.Zero(t, s.AverageOrderValue)
	})

	t.Run("row order does not change the result", func(t *testing.T) {
		table := ordersTable()
		reversed := Table{table[0]}
		for i := len(table) - 1; i >= 1; i-- {
			reversed = append(reversed, table[i])
		}

		a := Summarize(table, cols, DefaultWindow(), time.UTC)
		b := Summarize(reversed, cols, DefaultWindow(), time.UTC)
		assert.Equal(t, a.OrderCount, b.OrderCount)
		assert.InDelta(t, a.TotalAmount, b.TotalAmount, 1e-9)
	})

	t.Run("short rows treated as empty cells", func(t *testing.T) {
		table := Table{
			{"Item Price", "Purchase Date Time"},
			{"50"}, // no timestamp cell: dropped
			{},     // fully empty: dropped
			{"25", "2024-03-01"},
		}
		s := Summarize(table, cols, DefaultWindow(), time.UTC)
		assert.Equal(t, 1, s.OrderCount)
		assert.InDelta(t, 25.0, s.TotalAmount, 1e-9)
	})
}

func TestBuildTimeSeries(t *testing.T) {
	cols := resolveOrders(t)

	t.Run("per-day sums sorted ascending", func(t *testing.T) {
		points := BuildTimeSeries(ordersTable(), cols, DefaultWindow(), time.UTC)

		require.Len(t, points, 4)
		assert.Equal(t, "2024-03-01", points[0].Date)
		assert.InDelta(t, 150.0, points[0].Value, 1e-9)
		assert.Equal(t, "2024-03-02", points[1].Date)
		assert.InDelta(t, 200.0, points[1].Value, 1e-9)
		assert.Equal(t, "2024-03-03", points[2].Date)
		assert.Zero(t, points[2].Value)
		assert.Equal(t, "2024-04-01", points[3].Date)
	})

	t.Run("strictly ascending with no duplicate dates", func(t *testing.T) {
		points := BuildTimeSeries(ordersTable(), cols, DefaultWindow(), time.UTC)
		for i := 1; i < len(points); i++ {
			assert.Less(t, points[i-1].Date, points[i].Date)
		}
	})

	t.Run("series total equals summary total", func(t *testing.T) {
		w := Window{Start: "2024-03-01", End: "2024-03-31"}
		s := Summarize(ordersTable(), cols, w, time.UTC)
		points := BuildTimeSeries(ordersTable(), cols, w, time.UTC)

		var sum float64
		for _, p := range points {
			sum += p.Value
		}
		assert.InDelta(t, s.TotalAmount, sum, 1e-9)
	})

	t.Run("empty body yields empty series", func(t *testing.T) {
		points := BuildTimeSeries(Table{{"Item Price", "Purchase Date Time"}}, cols, DefaultWindow(), time.UTC)
		assert.Empty(t, points)
	})

	t.Run("no interpolation of missing dates", func(t *testing.T) {
		table := Table{
			{"Item Price", "Purchase Date Time"},
			{"1", "2024-03-01"},
			{"2", "2024-03-05"},
		}
		points := BuildTimeSeries(table, cols, DefaultWindow(), time.UTC)
		require.Len(t, points, 2)
		assert.Equal(t, "2024-03-01", points[0].Date)
		assert.Equal(t, "2024-03-05", points[1].Date)
	})
}
