// Package recordstore is the query client for the relational record store.
// It exposes the handful of operations the application needs (select with
// ordering, limit and exact count, insert, update by id and delete by id)
// against a fixed set of named collections.
package recordstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "techassist/internal/errors"
)

type Collection string

const (
	Customers         Collection = "customers"
	Technicians       Collection = "technicians"
	Services          Collection = "services"
	ServiceOrders     Collection = "service_orders"
	ServiceOrderItems Collection = "service_order_items"
	// OrderDetailed is a read-only view.
	OrderDetailed Collection = "order_detailed"
)

func (c Collection) Writable() bool {
	switch c {
	case Customers, Technicians, Services, ServiceOrders, ServiceOrderItems:
		return true
	}
	return false
}

// Query describes a select. A zero Limit means no limit.
type Query struct {
	Columns []string
	Where   sq.Sqlizer
	OrderBy []string
	Limit   uint64
}

type Values map[string]any

// runner is satisfied by both *sql.DB and *sql.Tx.
type runner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db     *sql.DB
	conn   runner
	tracer trace.Tracer
}

func New(db *sql.DB) *Store {
	return &Store{
		db:     db,
		conn:   db,
		tracer: otel.Tracer("techassist/recordstore"),
	}
}

// Ping checks that the record store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// WithTx runs fn against a Store bound to a single transaction. The
// transaction is committed when fn returns nil and rolled back otherwise.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer sqlTx.Rollback()

	txStore := &Store{db: s.db, conn: sqlTx, tracer: s.tracer}
	if err := fn(txStore); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Select runs q against c and calls scan once per returned row.
func (s *Store) Select(ctx context.Context, c Collection, q Query, scan func(rows *sql.Rows) error) (err error) {
	ctx, span := s.start(ctx, "select", c)
	defer func() { end(span, err) }()

	columns := q.Columns
	if len(columns) == 0 {
		columns = []string{"*"}
	}

	builder := sq.Select(columns...).From(string(c))
	if q.Where != nil {
		builder = builder.Where(q.Where)
	}
	if len(q.OrderBy) > 0 {
		builder = builder.OrderBy(q.OrderBy...)
	}
	if q.Limit > 0 {
		builder = builder.Limit(q.Limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("building select on %s: %w", c, err)
	}

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("selecting from %s: %w", c, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("scanning %s row: %w", c, err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating %s rows: %w", c, err)
	}

	return nil
}

// Count returns the exact number of rows in c matching where, which may be nil.
func (s *Store) Count(ctx context.Context, c Collection, where sq.Sqlizer) (n int, err error) {
	ctx, span := s.start(ctx, "count", c)
	defer func() { end(span, err) }()

	builder := sq.Select("COUNT(*)").From(string(c))
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("building count on %s: %w", c, err)
	}

	if err := s.conn.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", c, err)
	}

	return n, nil
}

// Insert adds one row and returns its generated id.
func (s *Store) Insert(ctx context.Context, c Collection, values Values) (id int64, err error) {
	ctx, span := s.start(ctx, "insert", c)
	defer func() { end(span, err) }()

	if !c.Writable() {
		return 0, fmt.Errorf("collection %s is read-only", c)
	}

	query, args, err := sq.Insert(string(c)).SetMap(values).ToSql()
	if err != nil {
		return 0, fmt.Errorf("building insert on %s: %w", c, err)
	}

	result, err := s.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapDriverError(fmt.Sprintf("inserting into %s", c), err)
	}

	id, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return id, nil
}

// InsertBatch adds several rows sharing the same columns in one statement.
func (s *Store) InsertBatch(ctx context.Context, c Collection, columns []string, rows [][]any) (err error) {
	ctx, span := s.start(ctx, "insert_batch", c)
	defer func() { end(span, err) }()

	if !c.Writable() {
		return fmt.Errorf("collection %s is read-only", c)
	}
	if len(rows) == 0 {
		return nil
	}

	builder := sq.Insert(string(c)).Columns(columns...)
	for _, row := range rows {
		builder = builder.Values(row...)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("building batch insert on %s: %w", c, err)
	}

	if _, err := s.conn.ExecContext(ctx, query, args...); err != nil {
		return mapDriverError(fmt.Sprintf("batch inserting into %s", c), err)
	}

	return nil
}

// UpdateByID changes the given columns of the row with id. It returns a
// NotFoundError when no row has that id.
func (s *Store) UpdateByID(ctx context.Context, c Collection, id int64, values Values) error {
	affected, err := s.UpdateWhere(ctx, c, id, nil, values)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("%s with id %d not found", c, id))
	}
	return nil
}

// UpdateWhere changes the row with id only if it also matches guard, and
// returns the number of rows matched. A nil guard matches any row.
func (s *Store) UpdateWhere(ctx context.Context, c Collection, id int64, guard sq.Sqlizer, values Values) (affected int64, err error) {
	ctx, span := s.start(ctx, "update", c)
	defer func() { end(span, err) }()

	if !c.Writable() {
		return 0, fmt.Errorf("collection %s is read-only", c)
	}

	update := sq.Update(string(c)).SetMap(values).Where(sq.Eq{"id": id})
	if guard != nil {
		update = update.Where(guard)
	}

	query, args, err := update.ToSql()
	if err != nil {
		return 0, fmt.Errorf("building update on %s: %w", c, err)
	}

	result, err := s.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapDriverError(fmt.Sprintf("updating %s", c), err)
	}

	affected, err = result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}
	return affected, nil
}

// DeleteByID removes the row with id. It returns a NotFoundError when no row
// has that id.
func (s *Store) DeleteByID(ctx context.Context, c Collection, id int64) (err error) {
	ctx, span := s.start(ctx, "delete", c)
	defer func() { end(span, err) }()

	if !c.Writable() {
		return fmt.Errorf("collection %s is read-only", c)
	}

	query, args, err := sq.Delete(string(c)).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("building delete on %s: %w", c, err)
	}

	result, err := s.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return mapDriverError(fmt.Sprintf("deleting from %s", c), err)
	}

	return requireAffected(result, c, id)
}

func (s *Store) start(ctx context.Context, op string, c Collection) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "recordstore."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "mysql"),
			attribute.String("db.operation", op),
			attribute.String("db.collection", string(c)),
		),
	)
}

func end(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func requireAffected(result sql.Result, c Collection, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("%s with id %d not found", c, id))
	}

	return nil
}

// MySQL server error numbers the application reacts to.
const (
	errDuplicateEntry  = 1062
	errRowIsReferenced = 1451
	errNoReferencedRow = 1452
	errCheckConstraint = 3819
)

func mapDriverError(action string, err error) error {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return fmt.Errorf("%s: %w", action, err)
	}

	switch mysqlErr.Number {
	case errRowIsReferenced:
		return apperrors.NewConflictError("record is referenced by other records")
	case errDuplicateEntry:
		return apperrors.NewConflictError("record already exists")
	case errNoReferencedRow:
		return apperrors.NewValidationError("referenced record does not exist")
	case errCheckConstraint:
		return apperrors.NewValidationError("value violates a constraint")
	}

	return fmt.Errorf("%s: %w", action, err)
}
