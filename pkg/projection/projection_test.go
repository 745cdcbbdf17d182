package projection_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedspend/awards-api/pkg/projection"
)

func TestNewCatalog_SplitsColumnsAndAnnotations(t *testing.T) {
	t.Parallel()

	cat, err := projection.NewCatalog(
		projection.Field{External: "id", Source: "id"},
		projection.Field{External: "total", Source: "COALESCE(total_obligation, 0)", Computed: true},
		projection.Field{External: "_trx", Source: "latest_transaction_id"},
	)
	require.NoError(t, err)

	cols := cat.Columns()
	require.Len(t, cols, 2)
	assert.Equal(t, "id", cols[0].External)
	assert.Equal(t, "_trx", cols[1].External)

	anns := cat.Annotations()
	require.Len(t, anns, 1)
	assert.Equal(t, "total", anns[0].External)
}

func TestNewCatalog_RejectsDuplicates(t *testing.T) {
	t.Parallel()

	_, err := projection.NewCatalog(
		projection.Field{External: "id", Source: "id"},
		projection.Field{External: "id", Source: "award_id"},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate external name "id"`)
}

func TestNewCatalog_RejectsEmptyNames(t *testing.T) {
	t.Parallel()

	_, err := projection.NewCatalog(projection.Field{External: "", Source: "id"})
	require.Error(t, err)

	_, err = projection.NewCatalog(projection.Field{External: "id", Source: ""})
	require.Error(t, err)
}

func TestSelectList_OrderAndQuoting(t *testing.T) {
	t.Parallel()

	cat := projection.MustCatalog(
		projection.Field{External: "piid", Source: "piid"},
		projection.Field{External: "fy", Source: "EXTRACT(YEAR FROM action_date)", Computed: true},
		projection.Field{External: "_lei", Source: "recipient_id"},
	)

	assert.Equal(t,
		`piid AS "piid", recipient_id AS "_lei", (EXTRACT(YEAR FROM action_date)) AS "fy"`,
		cat.SelectList(),
	)
}

func TestExtend_ReplacesInPlaceAndAppends(t *testing.T) {
	t.Parallel()

	base := projection.MustCatalog(
		projection.Field{External: "piid", Source: "piid"},
		projection.Field{External: "_end_date", Source: "period_of_performance_current_end_date"},
	)
	ext, err := base.Extend(
		projection.Field{External: "_end_date", Source: "ordering_period_end_date"},
		projection.Field{External: "_last_modified_date", Source: "last_modified"},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"piid", "_end_date", "_last_modified_date"}, ext.Externals())

	f, ok := ext.Source("_end_date")
	require.True(t, ok)
	assert.Equal(t, "ordering_period_end_date", f.Source)

	// the base catalogue is untouched
	f, ok = base.Source("_end_date")
	require.True(t, ok)
	assert.Equal(t, "period_of_performance_current_end_date", f.Source)
}

func TestField_Internal(t *testing.T) {
	t.Parallel()

	assert.True(t, projection.Field{External: "_trx", Source: "latest_transaction_id"}.Internal())
	assert.False(t, projection.Field{External: "piid", Source: "piid"}.Internal())
}

func TestRow_TypedAccessors(t *testing.T) {
	t.Parallel()

	signed := time.Date(2019, 4, 21, 0, 0, 0, 0, time.UTC)
	row := projection.Row{
		"piid":        "ABC-123",
		"id":          int64(42),
		"subawards":   int32(7),
		"total":       float64(1000.5),
		"date_signed": signed,
		"categories":  []any{"small_business", "other_than_small_business"},
		"missing":     nil,
	}

	require.NotNil(t, row.String("piid"))
	assert.Equal(t, "ABC-123", *row.String("piid"))
	assert.Nil(t, row.String("missing"))
	assert.Nil(t, row.String("never_selected"))

	require.NotNil(t, row.Int64("id"))
	assert.EqualValues(t, 42, *row.Int64("id"))
	assert.EqualValues(t, 7, *row.Int64("subawards"))

	require.NotNil(t, row.Float64("total"))
	assert.InDelta(t, 1000.5, *row.Float64("total"), 0.0001)

	require.NotNil(t, row.Date("date_signed"))
	assert.Equal(t, "2019-04-21", *row.Date("date_signed"))
	assert.Nil(t, row.Date("missing"))

	assert.Equal(t, []string{"small_business", "other_than_small_business"}, row.StringSlice("categories"))
	assert.Empty(t, row.StringSlice("missing"))
}
