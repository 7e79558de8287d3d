package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_BasicSelect(t *testing.T) {
	stmt := From("products").
		Select("product_id", "title", "category").
		Build()

	assert.Equal(t, "SELECT product_id, title, category FROM products", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_SelectAllColumns(t *testing.T) {
	stmt := From("products").Build()

	assert.Equal(t, "SELECT * FROM products", stmt.SQL)
}

func TestBuilder_MultipleWhereConditions(t *testing.T) {
	stmt := From("products").
		Select("product_id").
		Where(Eq("category", "phones")).
		Where(Eq("status", "active")).
		Build()

	assert.Equal(t, "SELECT product_id FROM products WHERE category = @p0 AND status = @p1", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": "phones",
		"p1": "active",
	}, stmt.Params)
}

func TestBuilder_OrderByWithTiebreak(t *testing.T) {
	stmt := From("orders").
		Select("order_id").
		OrderBy("created_at", Desc).
		OrderBy("order_id", Asc).
		Build()

	assert.Equal(t, "SELECT order_id FROM orders ORDER BY created_at DESC, order_id ASC", stmt.SQL)
}

func TestBuilder_Limit(t *testing.T) {
	stmt := From("products").
		Select("product_id").
		Limit(8).
		Build()

	assert.Equal(t, "SELECT product_id FROM products LIMIT @limit", stmt.SQL)
	assert.Equal(t, map[string]interface{}{"limit": int64(8)}, stmt.Params)
}

func TestBuilder_PrefixThenAfterParamsDoNotCollide(t *testing.T) {
	stmt := From("products").
		Select("product_id", "title").
		Where(Prefix("title", "Pho")).
		Where(After("title", "Phone A", "product_id", "p-3", Asc)).
		OrderBy("title", Asc).
		OrderBy("product_id", Asc).
		Limit(4).
		Build()

	expected := "SELECT product_id, title FROM products" +
		" WHERE (title >= @p0 AND title <= @p1)" +
		" AND (title > @p2 OR (title = @p2 AND product_id > @p3))" +
		" ORDER BY title ASC, product_id ASC LIMIT @limit"
	assert.Equal(t, expected, stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0":    "Pho",
		"p1":    "Pho" + PrefixUpperBound,
		"p2":    "Phone A",
		"p3":    "p-3",
		"limit": int64(4),
	}, stmt.Params)
}

func TestBuilder_CountDropsOrderingAndLimit(t *testing.T) {
	builder := From("products").
		Select("product_id", "title").
		Where(Eq("category", "phones")).
		OrderBy("product_id", Asc).
		Limit(8)

	countStmt := builder.Count().Build()
	assert.Equal(t, "SELECT COUNT(*) FROM products WHERE category = @p0", countStmt.SQL)
	assert.Equal(t, map[string]interface{}{"p0": "phones"}, countStmt.Params)

	// original builder untouched
	assert.Contains(t, builder.Build().SQL, "LIMIT @limit")
}

func TestBuilder_Immutability(t *testing.T) {
	base := From("products").Select("product_id")

	stmt1 := base.Where(Eq("status", "active")).Build()
	stmt2 := base.Where(Eq("category", "phones")).OrderBy("product_id", Asc).Build()

	assert.Contains(t, stmt1.SQL, "status = @p0")
	assert.NotContains(t, stmt1.SQL, "category")
	assert.NotContains(t, stmt1.SQL, "ORDER BY")

	assert.Contains(t, stmt2.SQL, "category = @p0")
	assert.NotContains(t, stmt2.SQL, "status")
}

func TestCondition_Comparisons(t *testing.T) {
	tests := []struct {
		name     string
		cond     Condition
		index    int
		expected string
	}{
		{"eq", Eq("status", "active"), 0, "status = @p0"},
		{"gte", Gte("price", 10), 3, "price >= @p3"},
		{"lte", Lte("price", 99), 1, "price <= @p1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, params := tt.cond.SQL(tt.index)
			assert.Equal(t, tt.expected, sql)
			assert.Len(t, params, 1)
		})
	}
}

func TestCondition_Prefix(t *testing.T) {
	sql, params := Prefix("title", "Cam").SQL(0)

	assert.Equal(t, "(title >= @p0 AND title <= @p1)", sql)
	assert.Equal(t, "Cam", params["p0"])
	assert.Equal(t, "Cam"+PrefixUpperBound, params["p1"])
}

func TestCondition_AfterDescending(t *testing.T) {
	sql, params := After("created_at", "2026-01-01", "order_id", "o-9", Desc).SQL(2)

	assert.Equal(t, "(created_at < @p2 OR (created_at = @p2 AND order_id > @p3))", sql)
	assert.Equal(t, map[string]interface{}{"p2": "2026-01-01", "p3": "o-9"}, params)
}

func TestCondition_AfterOnIDColumnOnly(t *testing.T) {
	sql, params := After("product_id", "p-5", "product_id", "p-5", Asc).SQL(0)

	assert.Equal(t, "product_id > @p0", sql)
	assert.Equal(t, map[string]interface{}{"p0": "p-5"}, params)
}

func TestBuilder_String(t *testing.T) {
	str := From("products").Where(Eq("status", "active")).String()

	require.NotEmpty(t, str)
	assert.Contains(t, str, "SQL:")
	assert.Contains(t, str, "Params:")
}

func TestBuilder_Offset(t *testing.T) {
	stmt := From("products").
		Select("product_id").
		OrderBy("product_id", Asc).
		Limit(8).
		Offset(16).
		Build()

	assert.Equal(t, "SELECT product_id FROM products ORDER BY product_id ASC LIMIT @limit OFFSET @offset", stmt.SQL)
	assert.Equal(t, int64(16), stmt.Params["offset"])

	t.Run("ignored without limit", func(t *testing.T) {
		stmt := From("products").Offset(16).Build()
		assert.Equal(t, "SELECT * FROM products", stmt.SQL)
	})

	t.Run("dropped by count", func(t *testing.T) {
		stmt := From("products").Limit(8).Offset(16).Count().Build()
		assert.Equal(t, "SELECT COUNT(*) FROM products", stmt.SQL)
		assert.NotContains(t, stmt.Params, "offset")
	})
}
