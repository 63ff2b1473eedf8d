package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhaven/order-service/internal/domains/orders/domain"
)

func TestSave_AssignsSequentialIDs(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	first, err := repo.Save(ctx, domain.BuildRejectedOrder("1234567890", 5))
	require.NoError(t, err)
	second, err := repo.Save(ctx, domain.BuildRejectedOrder("1234567890", 5))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestSave_RejectsInvalidOrder(t *testing.T) {
	repo := NewRepository()

	_, err := repo.Save(context.Background(), &domain.Order{ISBN: "1", Status: domain.Status("PENDING")})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestList_PreservesInsertionOrderAndIsolation(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	book := domain.Book{ISBN: "1234567891", Title: "Dune", Author: "Frank Herbert", Price: 19.90}
	_, err := repo.Save(ctx, domain.BuildAcceptedOrder(book, 2))
	require.NoError(t, err)
	_, err = repo.Save(ctx, domain.BuildRejectedOrder("1234567890", 1))
	require.NoError(t, err)

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, domain.StatusAccepted, orders[0].Status)
	assert.Equal(t, domain.StatusRejected, orders[1].Status)

	// Mutating a listed order must not leak into the store.
	orders[0].Quantity = 99
	again, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, again[0].Quantity)
}
