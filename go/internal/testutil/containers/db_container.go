package containers

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	image      = "postgres:16.3-alpine"
	dbName     = "transfer_market"
	dbUser     = "market"
	dbPassword = "secret"
)

type DBContainer struct {
	container *postgres.PostgresContainer
}

// NewDBContainer starts Postgres with the repository schema applied. The
// container is terminated when the test finishes.
func NewDBContainer(t testing.TB) *DBContainer {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, image,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.WithInitScripts(SchemaFiles(t)...),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("error starting container: %v", err)
	}

	c := &DBContainer{container: container}
	t.Cleanup(c.shutdown(t))
	return c
}

func (c *DBContainer) shutdown(t testing.TB) func() {
	return func() {
		if err := c.container.Terminate(context.Background()); err != nil {
			t.Errorf("error terminating container: %v", err)
		}
	}
}

func (c *DBContainer) ConnectionString(t testing.TB) string {
	t.Helper()
	// explicitly set sslmode=disable because the container is not configured to use TLS
	connStr, err := c.container.ConnectionString(context.Background(), "sslmode=disable")
	if err != nil {
		t.Fatalf("error getting connection string: %v", err)
	}
	return connStr
}

// Pool opens a pgx pool against the container, closed when the test finishes.
func (c *DBContainer) Pool(t testing.TB) *pgxpool.Pool {
	t.Helper()
	pool, err := pgxpool.New(context.Background(), c.ConnectionString(t))
	if err != nil {
		t.Fatalf("error creating pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// SchemaFiles returns the migration files under sql/schema in apply order.
func SchemaFiles(t testing.TB) []string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot locate schema directory")
	}
	root := filepath.Join(filepath.Dir(file), "..", "..", "..", "..")
	files, err := filepath.Glob(filepath.Join(root, "sql", "schema", "*.sql"))
	if err != nil || len(files) == 0 {
		t.Fatalf("no schema files found under %s: %v", root, err)
	}
	return files
}
