package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/client/internal/domain/entity"
	domainerror "github.com/finance-tracker/client/internal/domain/error"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return server, client
}

func TestViewStateRepository(t *testing.T) {
	ctx := context.Background()
	server, client := newTestRedis(t)
	repo := NewViewStateRepository(client, time.Hour)

	categoryID := int64(4)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	view := &entity.TransactionView{
		ID: uuid.New(),
		Filter: entity.FilterSpec{
			SearchTerm: "coffee",
			CategoryID: &categoryID,
			StartDate:  &start,
			Type:       entity.TypeFilterExpense,
		},
		Page:      3,
		UpdatedAt: time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC),
	}

	t.Run("save and load round trip", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, view))

		found, err := repo.FindByID(ctx, view.ID)
		require.NoError(t, err)
		assert.Equal(t, view.ID, found.ID)
		assert.Equal(t, 3, found.Page)
		assert.Equal(t, "coffee", found.Filter.SearchTerm)
		require.NotNil(t, found.Filter.CategoryID)
		assert.Equal(t, int64(4), *found.Filter.CategoryID)
		require.NotNil(t, found.Filter.StartDate)
		assert.True(t, start.Equal(*found.Filter.StartDate))
		assert.Nil(t, found.Filter.EndDate)
		assert.Equal(t, entity.TypeFilterExpense, found.Filter.Type)
	})

	t.Run("key carries the ttl", func(t *testing.T) {
		assert.Equal(t, time.Hour, server.TTL(viewKey(view.ID)))
	})

	t.Run("expired view is not found", func(t *testing.T) {
		server.FastForward(2 * time.Hour)

		_, err := repo.FindByID(ctx, view.ID)
		assert.ErrorIs(t, err, domainerror.ErrViewNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, view))
		require.NoError(t, repo.Delete(ctx, view.ID))

		_, err := repo.FindByID(ctx, view.ID)
		assert.ErrorIs(t, err, domainerror.ErrViewNotFound)

		err = repo.Delete(ctx, view.ID)
		var storeErr *domainerror.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, domainerror.ErrCodeViewNotFound, storeErr.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domainerror.ErrViewNotFound)
	})
}

func TestViewStateRepositoryWithoutTTL(t *testing.T) {
	server, client := newTestRedis(t)
	repo := NewViewStateRepository(client, 0)

	view := &entity.TransactionView{ID: uuid.New(), Page: 1}
	require.NoError(t, repo.Save(context.Background(), view))
	assert.Equal(t, time.Duration(0), server.TTL(viewKey(view.ID)))
}
