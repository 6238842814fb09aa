package dao

import (
	"context"
	"fmt"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func postgresDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker unavailable: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=storefront",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=storefront",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("postgres://storefront:secret@%s/storefront?sslmode=disable", resource.GetHostPort("5432/tcp"))

	var db *gorm.DB
	err = pool.Retry(func() error {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Ping()
	})
	require.NoError(t, err)
	require.NoError(t, InitTables(db))

	return db
}

func TestCredentialDAO_Postgres(t *testing.T) {
	ctx := context.Background()
	d := NewCredentialDAO(postgresDB(t))

	_, err := d.FindByUserID(ctx, 5)
	assert.ErrorIs(t, err, ErrCredentialNotFound)

	require.NoError(t, d.Upsert(ctx, Credential{UserID: 5, Token: "first", Role: "buyer", UserName: "Bo"}))
	require.NoError(t, d.Upsert(ctx, Credential{UserID: 5, Token: "second", Role: "buyer", UserName: "Bo"}))

	got, err := d.FindByUserID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Token)

	require.NoError(t, d.Delete(ctx, 5))
	_, err = d.FindByUserID(ctx, 5)
	assert.ErrorIs(t, err, ErrCredentialNotFound)
}
