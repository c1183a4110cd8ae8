package pgexec

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/keeganpoppen/nixcloud-webservices/pkg/registry"
)

// DialFunc opens a connection to one database as one role. The default
// dials the unix socket in socketDir; tests inject their own.
type DialFunc func(user, dbname, socketDir string) (*gorm.DB, error)

// Config holds executor configuration.
type Config struct {
	// RunDir is the default unix socket directory.
	RunDir string
	// AdminRole is the administrative role used by the create phase.
	AdminRole string
	// Dial is optional; when nil the executor dials the unix socket.
	Dial DialFunc
}

// Executor performs provisioning SQL against a local PostgreSQL server.
type Executor struct {
	runDir    string
	adminRole string
	dial      DialFunc
}

// New returns an Executor for the given configuration.
func New(cfg Config) *Executor {
	dial := cfg.Dial
	if dial == nil {
		dial = Connect
	}
	return &Executor{
		runDir:    cfg.RunDir,
		adminRole: cfg.AdminRole,
		dial:      dial,
	}
}

// Connect establishes a peer-authenticated connection over the unix socket
// in socketDir.
func Connect(user, dbname, socketDir string) (*gorm.DB, error) {
	// Default to silent logging unless PGPROV_LOG_LEVEL=debug is set
	logMode := logger.Silent
	if os.Getenv("PGPROV_LOG_LEVEL") == "debug" {
		logMode = logger.Info
	}

	dsn := fmt.Sprintf("host=%s user=%s dbname=%s sslmode=disable", socketDir, user, dbname)
	db, err := gorm.Open(
		postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logMode),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %s as %s: %w", dbname, user, err)
	}
	return db, nil
}

// Create creates the owning role and the database unless they already exist.
// Both commands check for existence first, so re-running after a partial
// failure converges instead of aborting on "already exists"; the completion
// marker is still the skip signal, but never a correctness requirement.
func (e *Executor) Create(ctx context.Context, db registry.Database) error {
	conn, err := e.dial(e.adminRole, "postgres", e.socketDir(db))
	if err != nil {
		return err
	}
	defer closeConn(conn)
	conn = conn.WithContext(ctx)

	roleExists, err := exists(conn, "SELECT count(*) FROM pg_catalog.pg_roles WHERE rolname = ?", db.Owner)
	if err != nil {
		return fmt.Errorf("failed to check role %q: %w", db.Owner, err)
	}
	if !roleExists {
		stmt := fmt.Sprintf("CREATE ROLE %s LOGIN", pq.QuoteIdentifier(db.Owner))
		if err := conn.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create role %q: %w", db.Owner, err)
		}
	}

	dbExists, err := exists(conn, "SELECT count(*) FROM pg_catalog.pg_database WHERE datname = ?", db.Name)
	if err != nil {
		return fmt.Errorf("failed to check database %q: %w", db.Name, err)
	}
	if !dbExists {
		stmt := fmt.Sprintf("CREATE DATABASE %s OWNER %s",
			pq.QuoteIdentifier(db.Name), pq.QuoteIdentifier(db.Owner))
		if err := conn.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create database %q: %w", db.Name, err)
		}
	}
	return nil
}

// PostCreate runs the post-create script against the new database, connected
// as the owning role rather than the administrative identity.
func (e *Executor) PostCreate(ctx context.Context, db registry.Database) error {
	script := strings.TrimSpace(db.PostCreate)
	if script == "" {
		return fmt.Errorf("database %q has no post-create script", db.Name)
	}

	conn, err := e.dial(db.Owner, db.Name, e.socketDir(db))
	if err != nil {
		return err
	}
	defer closeConn(conn)

	if err := conn.WithContext(ctx).Exec(script).Error; err != nil {
		return fmt.Errorf("post-create script for database %q failed: %w", db.Name, err)
	}
	return nil
}

// Ping reports whether the server accepts administrative connections.
func (e *Executor) Ping(ctx context.Context) error {
	conn, err := e.dial(e.adminRole, "postgres", e.runDir)
	if err != nil {
		return err
	}
	defer closeConn(conn)

	var one int
	if err := conn.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error; err != nil {
		return fmt.Errorf("server not ready: %w", err)
	}
	return nil
}

func (e *Executor) socketDir(db registry.Database) string {
	if db.Socket != "" {
		return db.Socket
	}
	return e.runDir
}

func exists(conn *gorm.DB, query string, arg string) (bool, error) {
	var count int64
	if err := conn.Raw(query, arg).Scan(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func closeConn(conn *gorm.DB) {
	if sqlDB, err := conn.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
