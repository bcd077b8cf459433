package contextutil_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"go-dailyreport/internal/shared/contextutil"
)

func TestRequestID(t *testing.T) {
	ctx := contextutil.WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", contextutil.GetRequestID(ctx))
	assert.Equal(t, "", contextutil.GetRequestID(context.Background()))
}

func TestGetLogger(t *testing.T) {
	stored := zap.NewNop().Named("request")
	fallback := zap.NewNop().Named("service")

	t.Run("returns the request-scoped logger when present", func(t *testing.T) {
		ctx := contextutil.WithLogger(context.Background(), stored)
		assert.Same(t, stored, contextutil.GetLogger(ctx, fallback))
	})

	t.Run("falls back to the caller's logger", func(t *testing.T) {
		assert.Same(t, fallback, contextutil.GetLogger(context.Background(), fallback))
	})

	t.Run("never returns nil", func(t *testing.T) {
		assert.NotNil(t, contextutil.GetLogger(context.Background(), nil))
	})
}
