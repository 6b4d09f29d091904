package bootstrap_test

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"employee-management/internal/bootstrap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingAuditLogger struct {
	entries []bootstrap.AuditLog
}

func (r *recordingAuditLogger) Log(_ context.Context, entry bootstrap.AuditLog) {
	r.entries = append(r.entries, entry)
}

func TestStartHTTPServer(t *testing.T) {
	t.Run("shuts down when the context ends", func(t *testing.T) {
		audit := &recordingAuditLogger{}
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() {
			done <- bootstrap.StartHTTPServer(ctx, http.NotFoundHandler(), bootstrap.ServerConfig{Port: "0"}, audit)
		}()

		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop")
		}
		require.Len(t, audit.entries, 1)
		assert.Equal(t, "SERVER_SHUTDOWN", audit.entries[0].Action)
	})

	t.Run("reports a busy port", func(t *testing.T) {
		ln, err := net.Listen("tcp", ":0")
		require.NoError(t, err)
		defer ln.Close()
		_, port, err := net.SplitHostPort(ln.Addr().String())
		require.NoError(t, err)

		audit := &recordingAuditLogger{}
		err = bootstrap.StartHTTPServer(context.Background(), http.NotFoundHandler(), bootstrap.ServerConfig{Port: port}, audit)

		assert.Error(t, err)
		assert.Empty(t, audit.entries)
	})
}

func TestZapAuditLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	bootstrap.NewZapAuditLogger(zap.New(core)).Log(context.Background(), bootstrap.AuditLog{
		Action:  "SERVER_SHUTDOWN",
		Message: "Server is shutting down",
	})

	entries := logs.FilterLoggerName("audit").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "SERVER_SHUTDOWN", entries[0].ContextMap()["action"])
}
