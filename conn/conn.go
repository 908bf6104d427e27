package conn

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/exp/slog"
	"golang.org/x/xerrors"

	"github.com/nlimpid/sqlrows/hydrate"
	"github.com/nlimpid/sqlrows/result"
	"github.com/nlimpid/sqlrows/row"
)

// DB runs statements on a database/sql handle and returns buffered result
// views.
type DB struct {
	db         *sql.DB
	cfg        Config
	log        *slog.Logger
	sizeHint   int
	resultOpts []result.Option
}

// Option configures a DB.
type Option func(*DB)

// WithLogger sets the logger used for statement logs and handed to every
// result view. slog.Default() is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(d *DB) {
		if l != nil {
			d.log = l
		}
	}
}

// WithResultOptions sets options applied to every view before the per-call
// options.
func WithResultOptions(opts ...result.Option) Option {
	return func(d *DB) {
		d.resultOpts = append(d.resultOpts, opts...)
	}
}

// WithExpectedSize pre-allocates the row buffer for result sets of the given
// size.
func WithExpectedSize(n int) Option {
	return func(d *DB) {
		if n > 0 {
			d.sizeHint = n
		}
	}
}

// Open opens a handle with cfg.Driver and cfg.DSN. The driver must be
// registered by the caller.
func Open(cfg Config, opts ...Option) (*DB, error) {
	if cfg.Driver == "" {
		return nil, xerrors.New("driver name is required")
	}
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, xerrors.Errorf("failed to open %s: %w", cfg.Driver, err)
	}
	return New(db, cfg, opts...), nil
}

// New wraps an existing handle and applies the pool settings of cfg.
func New(db *sql.DB, cfg Config, opts ...Option) *DB {
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	d := &DB{
		db:  db,
		cfg: cfg,
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SQL returns the underlying handle.
func (d *DB) SQL() *sql.DB { return d.db }

func (d *DB) Close() error { return d.db.Close() }

func (d *DB) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return xerrors.Errorf("ping %s: %w", d.cfg.Driver, err)
	}
	return nil
}

// Query runs a statement returning rows. A statement producing zero rows
// yields a nil view and a nil error; every View method treats nil as the
// empty result.
func (d *DB) Query(ctx context.Context, query string, args ...any) (*result.View, error) {
	return d.QueryWith(ctx, query, args)
}

// QueryWith is Query with per-call view options.
func (d *DB) QueryWith(ctx context.Context, query string, args []any, opts ...result.Option) (*result.View, error) {
	set, err := d.buffer(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if set.RowCount() == 0 {
		return nil, nil
	}

	all := make([]result.Option, 0, len(d.resultOpts)+len(opts)+1)
	all = append(all, result.WithLogger(d.log))
	all = append(all, d.resultOpts...)
	all = append(all, opts...)

	v, err := result.New(set, all...)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (d *DB) buffer(ctx context.Context, query string, args []any) (*result.MemorySet, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		d.logStatement(query, args, time.Since(start), err)
		return nil, xerrors.Errorf("query failed: %w", err)
	}

	set, err := bufferRows(rows, d.sizeHint)
	d.logStatement(query, args, time.Since(start), err)
	return set, err
}

// Exec runs a statement that returns no rows and reports the number of
// affected rows.
func (d *DB) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.logStatement(query, args, time.Since(start), err)
	if err != nil {
		return 0, xerrors.Errorf("exec failed: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, xerrors.Errorf("failed to get affected rows: %w", err)
	}
	return n, nil
}

// Each runs a query and passes the view to fn. The view is closed when fn
// returns, whatever the outcome. fn receives a nil view for zero rows.
func (d *DB) Each(ctx context.Context, query string, args []any, fn func(*result.View) error, opts ...result.Option) (err error) {
	v, err := d.QueryWith(ctx, query, args, opts...)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, v.Close())
	}()
	return fn(v)
}

// Row returns the first row of a query, cast with the default rules.
// sql.ErrNoRows is returned when the query yields nothing.
func (d *DB) Row(ctx context.Context, query string, args ...any) (*row.Row, error) {
	var out *row.Row
	err := d.Each(ctx, query, args, func(v *result.View) error {
		rec, err := v.Get(0)
		if err != nil {
			return err
		}
		if rec == nil {
			return sql.ErrNoRows
		}
		out = rec.(*row.Row)
		return nil
	}, result.Arrays())
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Value returns the first column of the first row.
func (d *DB) Value(ctx context.Context, query string, args ...any) (any, error) {
	r, err := d.Row(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	cols := r.Columns()
	if len(cols) == 0 {
		return nil, sql.ErrNoRows
	}
	return r.Value(cols[0]), nil
}

// QueryObjects runs a query and hydrates every row into a new T.
func QueryObjects[T any, P hydrate.Ptr[T]](ctx context.Context, d *DB, query string, args ...any) ([]*T, error) {
	var out []*T
	err := d.Each(ctx, query, args, func(v *result.View) error {
		var err error
		out, err = result.Collect[*T](v)
		return err
	}, result.As[T, P]())
	if err != nil {
		return nil, err
	}
	return out, nil
}
