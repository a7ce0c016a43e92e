package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bianca-ap01/coin-swap/pkg/domain/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRepository_ListNewestFirst(t *testing.T) {
	repo := &historyRepository{db: newSQLiteDB(t)}
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Append(ctx,
		history.NewRecord(history.Entry{Username: "ana", Description: "first"}, base),
		history.NewRecord(history.Entry{Username: "luis", Description: "other"}, base.Add(time.Second)),
	))
	require.NoError(t, repo.Append(ctx,
		history.NewRecord(history.Entry{Username: "ana", Description: "second"}, base.Add(time.Minute)),
		history.NewRecord(history.Entry{Username: "ana", Description: "third"}, base.Add(time.Minute)),
	))

	got, err := repo.ListByUsername(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "third", got[0].Description)
	assert.Equal(t, "second", got[1].Description)
	assert.Equal(t, "first", got[2].Description)
	assert.True(t, base.Equal(got[2].Timestamp))
	assert.Equal(t, "ana", got[0].Username)
}

func TestHistoryRepository_Empty(t *testing.T) {
	repo := &historyRepository{db: newSQLiteDB(t)}

	require.NoError(t, repo.Append(context.Background()))

	got, err := repo.ListByUsername(context.Background(), "ana")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
