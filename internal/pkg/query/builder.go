package query

import (
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"
)

// Direction represents ORDER BY direction.
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

// orderTerm is a single ORDER BY column.
type orderTerm struct {
	column    string
	direction Direction
}

// Builder composes the SELECT statements behind the catalog's read models.
// Parameter names are generated so conditions never collide.
//
// Every method returns a new Builder, so a filtered base query can be shared
// between a page query and its COUNT(*) companion.
type Builder struct {
	table        string
	selectCols   []string
	whereClauses []Condition
	orderBy      []orderTerm
	limitVal     int64
	offsetVal    int64
}

// From creates a new Builder for the specified table.
func From(table string) *Builder {
	return &Builder{
		table:        table,
		selectCols:   []string{},
		whereClauses: []Condition{},
	}
}

// Select specifies the columns to retrieve.
func (b *Builder) Select(columns ...string) *Builder {
	newBuilder := b.clone()
	newBuilder.selectCols = append(newBuilder.selectCols, columns...)
	return newBuilder
}

// Where adds a WHERE condition.
// Multiple calls are combined with AND logic.
func (b *Builder) Where(condition Condition) *Builder {
	newBuilder := b.clone()
	newBuilder.whereClauses = append(newBuilder.whereClauses, condition)
	return newBuilder
}

// OrderBy appends a sort column. The first call defines the primary key of
// the ordering, later calls act as tiebreakers.
func (b *Builder) OrderBy(column string, direction Direction) *Builder {
	newBuilder := b.clone()
	newBuilder.orderBy = append(newBuilder.orderBy, orderTerm{column: column, direction: direction})
	return newBuilder
}

// Limit sets the maximum number of rows to return.
func (b *Builder) Limit(limit int64) *Builder {
	newBuilder := b.clone()
	newBuilder.limitVal = limit
	return newBuilder
}

// Offset sets the number of rows to skip. It only takes effect together
// with Limit.
func (b *Builder) Offset(offset int64) *Builder {
	newBuilder := b.clone()
	newBuilder.offsetVal = offset
	return newBuilder
}

// Count returns a new builder that generates a COUNT(*) query
// with the same FROM and WHERE clauses.
func (b *Builder) Count() *Builder {
	newBuilder := b.clone()
	newBuilder.selectCols = []string{"COUNT(*)"}
	newBuilder.limitVal = 0
	newBuilder.offsetVal = 0
	newBuilder.orderBy = nil
	return newBuilder
}

// Build renders the statement. Condition parameters are numbered in the
// order the conditions were added.
func (b *Builder) Build() spanner.Statement {
	params := make(map[string]interface{})

	cols := "*"
	if len(b.selectCols) > 0 {
		cols = strings.Join(b.selectCols, ", ")
	}

	var sql strings.Builder
	fmt.Fprintf(&sql, "SELECT %s FROM %s", cols, b.table)
	if where := b.where(params); where != "" {
		sql.WriteString(" WHERE " + where)
	}
	if order := b.order(); order != "" {
		sql.WriteString(" ORDER BY " + order)
	}

	// OFFSET is only valid after LIMIT.
	if b.limitVal > 0 {
		sql.WriteString(" LIMIT @limit")
		params["limit"] = b.limitVal
		if b.offsetVal > 0 {
			sql.WriteString(" OFFSET @offset")
			params["offset"] = b.offsetVal
		}
	}

	return spanner.Statement{SQL: sql.String(), Params: params}
}

// where joins the conditions with AND and collects their parameters.
func (b *Builder) where(params map[string]interface{}) string {
	parts := make([]string, 0, len(b.whereClauses))
	next := 0
	for _, condition := range b.whereClauses {
		fragment, condParams := condition.SQL(next)
		parts = append(parts, fragment)
		for k, v := range condParams {
			params[k] = v
		}
		next += len(condParams)
	}
	return strings.Join(parts, " AND ")
}

func (b *Builder) order() string {
	terms := make([]string, 0, len(b.orderBy))
	for _, term := range b.orderBy {
		terms = append(terms, term.column+" "+term.direction.String())
	}
	return strings.Join(terms, ", ")
}

// clone creates a shallow copy of the builder for immutability.
func (b *Builder) clone() *Builder {
	newBuilder := &Builder{
		table:        b.table,
		selectCols:   make([]string, len(b.selectCols)),
		whereClauses: make([]Condition, len(b.whereClauses)),
		orderBy:      make([]orderTerm, len(b.orderBy)),
		limitVal:     b.limitVal,
		offsetVal:    b.offsetVal,
	}
	copy(newBuilder.selectCols, b.selectCols)
	copy(newBuilder.whereClauses, b.whereClauses)
	copy(newBuilder.orderBy, b.orderBy)
	return newBuilder
}

// String renders the statement for debug logs.
func (b *Builder) String() string {
	stmt := b.Build()
	return fmt.Sprintf("SQL: %s\nParams: %v", stmt.SQL, stmt.Params)
}
