package database

import (
	"comandas_server/config"
	"comandas_server/structs"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// DB wraps the bun database connection with additional functionality
type DB struct {
	*bun.DB
}

var instance *DB

// Connect opens a connection pool using the configured driver and checks it with a ping.
func Connect(ctx context.Context, dbCfg *structs.DatabaseConfig, logger *gecho.Logger) (*DB, error) {
	sqldb, err := openSQLDB(dbCfg)
	if err != nil {
		return nil, err
	}

	sqldb.SetMaxOpenConns(dbCfg.MaxConns)
	sqldb.SetMaxIdleConns(dbCfg.MinConns)
	sqldb.SetConnMaxLifetime(dbCfg.MaxLifetime)
	sqldb.SetConnMaxIdleTime(dbCfg.MaxIdleTime)

	db := bun.NewDB(sqldb, pgdialect.New())
	db.AddQueryHook(&connectionHealthHook{logger: logger, slow: dbCfg.SlowQuery})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Connected to database successfully", gecho.Field("driver", dbCfg.Driver))

	return &DB{db}, nil
}

func openSQLDB(dbCfg *structs.DatabaseConfig) (*sql.DB, error) {
	addr := net.JoinHostPort(dbCfg.Host, strconv.Itoa(dbCfg.Port))

	switch strings.ToLower(dbCfg.Driver) {
	case "", "pgdriver":
		connector := pgdriver.NewConnector(
			pgdriver.WithAddr(addr),
			pgdriver.WithUser(dbCfg.User),
			pgdriver.WithPassword(dbCfg.Password),
			pgdriver.WithDatabase(dbCfg.Name),
			pgdriver.WithInsecure(dbCfg.SSLMode == "disable"),
			pgdriver.WithReadTimeout(dbCfg.ReadTimeout),
			pgdriver.WithWriteTimeout(dbCfg.WriteTimeout),
		)
		return sql.OpenDB(connector), nil
	case "pgx":
		connCfg, err := pgx.ParseConfig(DSN(dbCfg))
		if err != nil {
			return nil, fmt.Errorf("invalid database configuration: %w", err)
		}
		return stdlib.OpenDB(*connCfg), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", dbCfg.Driver)
	}
}

// DSN renders the configuration as a postgres:// URL.
func DSN(dbCfg *structs.DatabaseConfig) string {
	sslMode := dbCfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		dbCfg.User,
		dbCfg.Password,
		net.JoinHostPort(dbCfg.Host, strconv.Itoa(dbCfg.Port)),
		dbCfg.Name,
		sslMode,
	)
}

// Initialize sets up the global database instance using centralized configuration
func Initialize(ctx context.Context) (*DB, error) {
	db, err := Connect(ctx, config.GetConfig().Database, config.GetLogger())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	instance = db
	return db, nil
}

// GetInstance returns the global database instance, nil before Initialize.
func GetInstance() *DB {
	return instance
}

// CloseInstance closes the global database instance
func CloseInstance() error {
	if instance != nil {
		return instance.Close()
	}
	return nil
}

// Health checks the database connection health
func (db *DB) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return db.PingContext(ctx)
}

// connectionHealthHook logs slow queries and dropped connections
type connectionHealthHook struct {
	logger *gecho.Logger
	slow   time.Duration
}

func (h *connectionHealthHook) BeforeQuery(ctx context.Context, event *bun.QueryEvent) context.Context {
	return ctx
}

func (h *connectionHealthHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	duration := time.Since(event.StartTime)
	if h.slow > 0 && duration > h.slow {
		h.logger.Warn("Slow database query detected",
			gecho.Field("query", event.Query),
			gecho.Field("duration", duration),
		)
	}

	if event.Err != nil && (errors.Is(event.Err, sql.ErrConnDone) ||
		event.Err.Error() == "EOF" || event.Err.Error() == "unexpected EOF") {
		h.logger.Error("Database connection lost, the server may have closed it",
			gecho.Field("error", event.Err),
			gecho.Field("query", event.Query),
		)
	}
}
