package identity

import (
	"context"
	"database/sql"
	"embed"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// OpenDB connects to the persistence engine. A postgres DSN selects pgx,
// anything else is treated as a sqlite path.
func OpenDB(dsn string) (*bun.DB, error) {
	var db *bun.DB

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		sqldb, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not open postgres connection")
		}
		db = bun.NewDB(sqldb, pgdialect.New())
	} else {
		sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not open sqlite connection")
		}
		db = bun.NewDB(sqldb, sqlitedialect.New())
	}

	// The join model must be known before any query expands Roles.
	db.RegisterModel((*UserRole)(nil))

	return db, nil
}

// RunMigrations applies the embedded schema migrations, including the
// unique index on users.name that backstops duplicate-name detection.
func RunMigrations(ctx context.Context, db *bun.DB) error {
	goose.SetBaseFS(migrationsFS)

	dialect := "sqlite3"
	if _, ok := db.Dialect().(*pgdialect.Dialect); ok {
		dialect = "postgres"
	}

	if err := goose.SetDialect(dialect); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "could not set migration dialect")
	}

	if err := goose.UpContext(ctx, db.DB, "migrations"); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "migrations failed")
	}

	return nil
}
