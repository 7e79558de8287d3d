package query

import "fmt"

// PrefixUpperBound is appended to a prefix to form the inclusive upper end of
// a range scan. It sorts after every character a title is expected to hold,
// so `field >= p AND field <= p+PrefixUpperBound` matches values starting with p.
// The match is case-sensitive.
const PrefixUpperBound = "\uf8ff"

// Condition represents a WHERE clause condition.
// Implementations must generate SQL fragments and parameter maps
// using Spanner's named parameter format (@paramName).
type Condition interface {
	// SQL returns the SQL fragment and parameter map for this condition.
	// paramIndex is used to generate unique parameter names (@p0, @p1, etc.)
	SQL(paramIndex int) (string, map[string]interface{})
}

func paramName(index int) string {
	return fmt.Sprintf("p%d", index)
}

// compareCondition implements a binary comparison (field <op> value).
type compareCondition struct {
	field string
	op    string
	value interface{}
}

// SQL generates the SQL fragment for the comparison.
func (c *compareCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	name := paramName(paramIndex)
	return fmt.Sprintf("%s %s @%s", c.field, c.op, name), map[string]interface{}{name: c.value}
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("status", "active") generates "status = @p0"
func Eq(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: "=", value: value}
}

// Gte creates a "field >= value" condition.
func Gte(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: ">=", value: value}
}

// Lte creates a "field <= value" condition.
func Lte(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: "<=", value: value}
}

// prefixCondition implements the prefix range trick.
type prefixCondition struct {
	field  string
	prefix string
}

// Prefix creates a case-sensitive prefix match using a closed range:
// "(field >= @p0 AND field <= @p1)" with @p1 = prefix + PrefixUpperBound.
func Prefix(field, prefix string) Condition {
	return &prefixCondition{field: field, prefix: prefix}
}

// SQL generates the SQL fragment for the prefix range.
func (c *prefixCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	lower := paramName(paramIndex)
	upper := paramName(paramIndex + 1)
	sql := fmt.Sprintf("(%s >= @%s AND %s <= @%s)", c.field, lower, c.field, upper)
	return sql, map[string]interface{}{
		lower: c.prefix,
		upper: c.prefix + PrefixUpperBound,
	}
}

// afterCondition implements keyset continuation after a cursor row.
type afterCondition struct {
	sortField string
	sortValue interface{}
	idField   string
	idValue   string
	direction Direction
}

// After creates a keyset condition that selects rows strictly after the
// cursor row (sortValue, idValue) in the given direction, using idField as
// tiebreaker. When sortField equals idField the tiebreak is omitted.
//
// Asc:  "(sort > @p0 OR (sort = @p0 AND id > @p1))"
// Desc: "(sort < @p0 OR (sort = @p0 AND id > @p1))"
func After(sortField string, sortValue interface{}, idField, idValue string, direction Direction) Condition {
	return &afterCondition{
		sortField: sortField,
		sortValue: sortValue,
		idField:   idField,
		idValue:   idValue,
		direction: direction,
	}
}

// SQL generates the SQL fragment for keyset continuation.
func (c *afterCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	op := ">"
	if c.direction == Desc {
		op = "<"
	}

	sortParam := paramName(paramIndex)
	if c.sortField == c.idField {
		return fmt.Sprintf("%s %s @%s", c.sortField, op, sortParam), map[string]interface{}{
			sortParam: c.sortValue,
		}
	}

	idParam := paramName(paramIndex + 1)
	sql := fmt.Sprintf("(%s %s @%s OR (%s = @%s AND %s > @%s))",
		c.sortField, op, sortParam, c.sortField, sortParam, c.idField, idParam)
	return sql, map[string]interface{}{
		sortParam: c.sortValue,
		idParam:   c.idValue,
	}
}
