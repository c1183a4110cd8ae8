package integration

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/keeganpoppen/nixcloud-webservices/pkg/pgexec"
)

// TestContext holds the PostgreSQL testcontainer and the executor wiring the
// provisioning tests run against.
type TestContext struct {
	Container *tcpostgres.PostgresContainer
	Host      string
	Port      string
	Dial      pgexec.DialFunc
}

// NewTestContext starts a PostgreSQL testcontainer configured for trust
// authentication, so provisioned roles can connect over TCP the way peer
// authentication would let them connect over the socket.
func NewTestContext(ctx context.Context) (*TestContext, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("postgres"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithEnv(map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		}),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve container port: %w", err)
	}

	tc := &TestContext{
		Container: container,
		Host:      host,
		Port:      port.Port(),
	}
	// The executor normally dials the unix socket; tests route every
	// connection to the container instead.
	tc.Dial = func(user, dbname, _ string) (*gorm.DB, error) {
		dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable",
			tc.Host, tc.Port, user, dbname)
		return gorm.Open(
			gormpostgres.New(gormpostgres.Config{
				DSN:                  dsn,
				PreferSimpleProtocol: true,
			}),
			&gorm.Config{
				Logger: logger.Default.LogMode(logger.Silent),
			},
		)
	}
	return tc, nil
}

// AdminConn opens a connection as the postgres superuser.
func (tc *TestContext) AdminConn(dbname string) (*gorm.DB, error) {
	return tc.Dial("postgres", dbname, "")
}

// Terminate stops the container.
func (tc *TestContext) Terminate(ctx context.Context) error {
	return tc.Container.Terminate(ctx)
}
