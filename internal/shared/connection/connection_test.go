package connection

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"employee-management/db/migrations"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// closedAddr returns a local address nothing listens on.
func closedAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func countSleeps(t *testing.T) *int {
	t.Helper()
	n := 0
	orig := sleep
	sleep = func(time.Duration) { n++ }
	t.Cleanup(func() { sleep = orig })
	return &n
}

func TestConnectRedisWithRetry(t *testing.T) {
	addr := closedAddr(t)

	tests := []struct {
		name       string
		maxRetries int
		wantSleeps int
	}{
		{name: "zero retries still tries once", maxRetries: 0, wantSleeps: 0},
		{name: "single attempt", maxRetries: 1, wantSleeps: 0},
		{name: "no sleep after the last attempt", maxRetries: 3, wantSleeps: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sleeps := countSleeps(t)

			rdb, err := ConnectRedisWithRetry(addr, tt.maxRetries)

			assert.Nil(t, rdb)
			require.Error(t, err)
			assert.NotNil(t, errors.Unwrap(err))
			assert.Equal(t, tt.wantSleeps, *sleeps)
		})
	}
}

func TestConnectGORMWithRetry(t *testing.T) {
	host, port, err := net.SplitHostPort(closedAddr(t))
	require.NoError(t, err)
	dsn := "host=" + host + " port=" + port + " user=app password=app dbname=app sslmode=disable connect_timeout=1"

	sleeps := countSleeps(t)

	db, err := ConnectGORMWithRetry(dsn, PoolConfig{MaxOpenConns: 1}, 2)

	assert.Nil(t, db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 retries")
	assert.Equal(t, 1, *sleeps)
}

func TestEmbeddedMigrations(t *testing.T) {
	goose.SetBaseFS(migrations.FS)
	t.Cleanup(func() { goose.SetBaseFS(nil) })

	ms, err := goose.CollectMigrations(".", 0, goose.MaxVersion)
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, int64(1), ms[0].Version)
	assert.Contains(t, ms[0].Source, "00001_create_employees_table.sql")
}

func TestMigrate_UnknownDirection(t *testing.T) {
	err := Migrate(context.Background(), nil, "sideways")
	assert.EqualError(t, err, `unknown migration direction "sideways"`)
}
