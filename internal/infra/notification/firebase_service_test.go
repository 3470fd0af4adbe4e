package notification

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"morgenstar/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WithoutFirebaseConfigIsNoop(t *testing.T) {
	svc, err := New(Params{
		Ctx:    context.Background(),
		Config: &config.Config{},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	_, ok := svc.(*noopService)
	assert.True(t, ok)

	sent, failed, invalid, err := svc.SendBatchNotification(context.Background(), []string{"a", "b"}, "Bestellstatus", "versendet", nil)
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Zero(t, failed)
	assert.Empty(t, invalid)

	assert.NoError(t, svc.SendSingleNotification(context.Background(), "a", "Bestellstatus", "versendet", nil))
}

func TestFirebaseService_BatchLimit(t *testing.T) {
	svc := &firebaseService{}
	tokens := make([]string, MaxBatchSize+1)

	_, _, _, err := svc.SendBatchNotification(context.Background(), tokens, "t", "b", nil)
	assert.ErrorContains(t, err, "token count exceeds limit")

	sent, failed, invalid, err := svc.SendBatchNotification(context.Background(), nil, "t", "b", nil)
	require.NoError(t, err)
	assert.Zero(t, sent+failed)
	assert.Nil(t, invalid)
}
