package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rihla-travel/portal/internal/model"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrInvalidIdentifier   = errors.New("invalid identifier")
)

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Query selects Columns from Table ordered descending by OrderBy.
// Filter adds equality conditions joined with AND.
type Query struct {
	Table   string
	Columns []string
	OrderBy string
	Limit   int
	Filter  map[string]any
}

// ApplicationRepository reads and writes the per-service application tables.
// Table and column names come from the intake catalog, never from user input,
// and are still validated before they reach SQL.
type ApplicationRepository interface {
	Insert(ctx context.Context, app *model.Application) error
	Select(ctx context.Context, q Query) ([]model.Row, error)
	ByID(ctx context.Context, table string, columns []string, id string) (model.Row, error)
	ReferencedValues(ctx context.Context, table string, columns []string) (map[string]struct{}, error)
}

type applicationRepository struct {
	db *sqlx.DB
}

func NewApplicationRepository(db *sqlx.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func quote(name string) (string, error) {
	if !identRe.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	return `"` + name + `"`, nil
}

func quoteAll(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, n := range names {
		q, err := quote(n)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

// Insert writes exactly one row. created_at is assigned by the store and read back.
func (r *applicationRepository) Insert(ctx context.Context, app *model.Application) error {
	table, err := quote(app.Table)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(app.Values))
	for k := range app.Values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	names := append([]string{"id", "user_id"}, keys...)
	cols, err := quoteAll(names)
	if err != nil {
		return err
	}

	args := []any{app.ID, app.UserID}
	for _, k := range keys {
		args = append(args, app.Values[k])
	}

	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING created_at`,
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	err = r.db.QueryRowxContext(ctx, query, args...).Scan(&app.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", app.Table, err)
	}

	return nil
}

func (r *applicationRepository) Select(ctx context.Context, q Query) ([]model.Row, error) {
	table, err := quote(q.Table)
	if err != nil {
		return nil, err
	}
	cols, err := quoteAll(q.Columns)
	if err != nil {
		return nil, err
	}
	order, err := quote(q.OrderBy)
	if err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	filterKeys := make([]string, 0, len(q.Filter))
	for k := range q.Filter {
		filterKeys = append(filterKeys, k)
	}
	slices.Sort(filterKeys)
	for _, k := range filterKeys {
		col, err := quote(k)
		if err != nil {
			return nil, err
		}
		args = append(args, q.Filter[k])
		where = append(where, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s", strings.Join(cols, ", "), table)
	if len(where) > 0 {
		fmt.Fprintf(&b, " WHERE %s", strings.Join(where, " AND "))
	}
	fmt.Fprintf(&b, " ORDER BY %s DESC", order)
	if q.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.Limit)
	}

	rows, err := r.db.QueryxContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", q.Table, err)
	}
	defer rows.Close()

	var out []model.Row
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *applicationRepository) ByID(ctx context.Context, table string, columns []string, id string) (model.Row, error) {
	t, err := quote(table)
	if err != nil {
		return nil, err
	}
	cols, err := quoteAll(columns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE "id" = $1`, strings.Join(cols, ", "), t)
	rows, err := r.db.QueryxContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", table, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrApplicationNotFound
	}
	return scanRow(rows)
}

// ReferencedValues returns every non-empty value stored in columns of table.
func (r *applicationRepository) ReferencedValues(ctx context.Context, table string, columns []string) (map[string]struct{}, error) {
	refs := make(map[string]struct{})
	if len(columns) == 0 {
		return refs, nil
	}

	t, err := quote(table)
	if err != nil {
		return nil, err
	}
	cols, err := quoteAll(columns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s`, strings.Join(cols, ", "), t)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", table, err)
	}
	defer rows.Close()

	vals := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range vals {
		dest[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		for _, v := range vals {
			if v.Valid && v.String != "" {
				refs[v.String] = struct{}{}
			}
		}
	}
	return refs, rows.Err()
}

func scanRow(rows *sqlx.Rows) (model.Row, error) {
	m := make(map[string]any)
	if err := rows.MapScan(m); err != nil {
		return nil, err
	}
	// Drivers differ on whether TEXT arrives as string or []byte.
	for k, v := range m {
		if b, ok := v.([]byte); ok {
			m[k] = string(b)
		}
	}
	return model.Row(m), nil
}
