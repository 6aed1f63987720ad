// Package dbtest starts a throwaway PostgreSQL for integration tests.
package dbtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"go.uber.org/zap"

	"github.com/parkops/events-backend/pkg/database"
)

// Postgres runs postgres:16-alpine in Docker, applies the migrations and returns a pool.
// The test is skipped in -short mode or when Docker is not reachable.
func Postgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test skipped in short mode")
	}

	dp, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	if err := dp.Client.Ping(); err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	dp.MaxWait = 90 * time.Second

	res, err := dp.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_DB=parks_events",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	_ = res.Expire(300)
	t.Cleanup(func() {
		if err := dp.Purge(res); err != nil {
			t.Logf("purge postgres: %v", err)
		}
	})

	dsn := fmt.Sprintf("postgres://postgres:postgres@%s/parks_events?sslmode=disable", res.GetHostPort("5432/tcp"))
	ctx := context.Background()
	var pool *pgxpool.Pool
	err = dp.Retry(func() error {
		p, err := database.NewPostgresPool(ctx, dsn, 60, zap.NewNop())
		if err != nil {
			return err
		}
		pool = p
		return nil
	})
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := database.Migrate(ctx, pool, zap.NewNop()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return pool
}
