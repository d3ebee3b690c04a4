package query

import (
	"fmt"
	"reflect"
	"strings"
)

// predicate is a WHERE clause fragment whose placeholders are numbered
// once the full query is assembled.
type predicate struct {
	clause string
	args   []any
}

// SortField represents a single column in an ORDER BY clause.
// Field is the logical field name (mapped via ProjectionMap).
// Descending controls sort direction (false = ASC, true = DESC).
type SortField struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
}

// Builder constructs SQL queries using a fluent API with automatic parameter numbering.
type Builder struct {
	projection  *ProjectionMap
	predicates  []predicate
	sortFields  []SortField
	defaultSort []SortField
}

// NewBuilder creates a Builder for the given projection with optional default sort fields.
func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{
		projection:  projection,
		defaultSort: defaultSort,
	}
}

// ParseSortFields parses a comma-separated sort string into a SortField slice.
// Fields prefixed with "-" are descending. Example: "invoiceNumber,-createdAt".
// Returns nil for empty input.
func ParseSortFields(s string) []SortField {
	if s == "" {
		return nil
	}

	var fields []SortField
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		field, descending := strings.CutPrefix(part, "-")
		fields = append(fields, SortField{Field: field, Descending: descending})
	}

	return fields
}

// Build returns a SELECT query with the current conditions and ordering.
func (b *Builder) Build() (string, []any) {
	where, args := b.buildWhere()
	return b.selectClause() + where + b.buildOrderBy(), args
}

// BuildCount returns a COUNT(*) query with the current conditions.
func (b *Builder) BuildCount() (string, []any) {
	where, args := b.buildWhere()
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", b.projection.From(), where), args
}

// BuildPage returns a paginated SELECT query with ordering, limit, and offset.
func (b *Builder) BuildPage(page, pageSize int) (string, []any) {
	where, args := b.buildWhere()
	offset := (page - 1) * pageSize

	sql := fmt.Sprintf(
		"%s%s%s LIMIT %d OFFSET %d",
		b.selectClause(),
		where,
		b.buildOrderBy(),
		pageSize,
		offset,
	)

	return sql, args
}

// BuildSingle returns a SELECT query for a single record by ID.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	sql := fmt.Sprintf(
		"%s WHERE %s = $1",
		b.selectClause(),
		b.projection.Column(idField),
	)
	return sql, []any{id}
}

// OrderByFields sets the sort order, overriding default sort fields.
func (b *Builder) OrderByFields(fields []SortField) *Builder {
	b.sortFields = fields
	return b
}

// WhereContains adds a case-insensitive ILIKE condition. No-op for nil or empty values.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	if value == nil || *value == "" {
		return b
	}
	b.predicates = append(b.predicates, predicate{
		clause: fmt.Sprintf("%s ILIKE $%%d", b.projection.Column(field)),
		args:   []any{"%" + *value + "%"},
	})
	return b
}

// WhereEquals adds an equality condition. No-op for nil values.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	b.predicates = append(b.predicates, predicate{
		clause: fmt.Sprintf("%s = $%%d", b.projection.Column(field)),
		args:   []any{value},
	})
	return b
}

// WhereSearch adds an OR condition across multiple fields with ILIKE. No-op for nil or empty search.
func (b *Builder) WhereSearch(search *string, fields ...string) *Builder {
	if search == nil || *search == "" || len(fields) == 0 {
		return b
	}

	clauses := make([]string, len(fields))
	args := make([]any, len(fields))
	pattern := "%" + *search + "%"

	for i, field := range fields {
		clauses[i] = fmt.Sprintf("%s ILIKE $%%d", b.projection.Column(field))
		args[i] = pattern
	}

	b.predicates = append(b.predicates, predicate{
		clause: "(" + strings.Join(clauses, " OR ") + ")",
		args:   args,
	})
	return b
}

func (b *Builder) selectClause() string {
	return fmt.Sprintf("SELECT %s FROM %s", b.projection.Columns(), b.projection.From())
}

func (b *Builder) buildOrderBy() string {
	fields := b.sortFields
	if len(fields) == 0 {
		fields = b.defaultSort
	}
	if len(fields) == 0 {
		return ""
	}

	parts := make([]string, len(fields))
	for i, f := range fields {
		dir := "ASC"
		if f.Descending {
			dir = "DESC"
		}
		parts[i] = b.projection.Column(f.Field) + " " + dir
	}

	return " ORDER BY " + strings.Join(parts, ", ")
}

// buildWhere joins the predicates with AND and renumbers their $%d
// placeholders into sequential positional parameters.
func (b *Builder) buildWhere() (string, []any) {
	if len(b.predicates) == 0 {
		return "", nil
	}

	clauses := make([]string, 0, len(b.predicates))
	args := make([]any, 0)
	param := 1

	for _, p := range b.predicates {
		clause := p.clause
		for _, arg := range p.args {
			clause = strings.Replace(clause, "$%d", fmt.Sprintf("$%d", param), 1)
			args = append(args, arg)
			param++
		}
		clauses = append(clauses, clause)
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

func isNil(value any) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}

	return false
}
