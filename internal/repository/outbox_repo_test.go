package repository

import (
	"context"
	"testing"

	"github.com/bigface030/fatten-up-plan/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewOutboxRepository(db)
	ctx := context.Background()

	msg := &model.OutboxMessage{
		MessageKey: "EVT001",
		Topic:      "ledger.record.event",
		Payload:    `{"event":"record_created"}`,
		Status:     model.OutboxStatusPending,
	}
	require.NoError(t, repo.Create(ctx, nil, msg))

	pending, err := repo.GetPendingMessages(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "EVT001", pending[0].MessageKey)

	// 发送成功后不再出现在待发送列表
	require.NoError(t, repo.UpdateStatus(ctx, msg.ID, model.OutboxStatusSent))
	pending, err = repo.GetPendingMessages(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestOutboxRetryAndFail(t *testing.T) {
	db := newTestDB(t)
	repo := NewOutboxRepository(db)
	ctx := context.Background()

	msg := &model.OutboxMessage{
		MessageKey: "EVT002",
		Topic:      "ledger.record.event",
		Payload:    "{}",
		Status:     model.OutboxStatusPending,
	}
	require.NoError(t, repo.Create(ctx, nil, msg))

	require.NoError(t, repo.IncrementRetryCount(ctx, msg.ID))
	require.NoError(t, repo.IncrementRetryCount(ctx, msg.ID))

	var loaded model.OutboxMessage
	require.NoError(t, db.First(&loaded, msg.ID).Error)
	assert.Equal(t, 2, loaded.RetryCount)

	require.NoError(t, repo.MarkAsFailed(ctx, msg.ID))
	require.NoError(t, db.First(&loaded, msg.ID).Error)
	assert.Equal(t, model.OutboxStatusFailed, loaded.Status)
	assert.Equal(t, 3, loaded.RetryCount)

	pending, err := repo.GetPendingMessages(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
