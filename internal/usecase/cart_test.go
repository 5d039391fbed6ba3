package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddItemMergesLines(t *testing.T) {
	f := newFixture(testProduct("p1", "P1", "10.00", 10))
	ctx := context.Background()

	cart, err := f.carts.Create(ctx, "user-1")
	require.NoError(t, err)

	_, err = f.carts.AddItem(ctx, cart.ID, "p1", 2)
	require.NoError(t, err)
	got, err := f.carts.AddItem(ctx, cart.ID, "p1", 3)
	require.NoError(t, err)

	require.Len(t, got.Items, 1)
	assert.Equal(t, 5, got.Items[0].Quantity)
}

func TestCartAddItemChecksCumulativeStock(t *testing.T) {
	f := newFixture(testProduct("p1", "P1", "10.00", 5))
	ctx := context.Background()

	cart, _ := f.carts.Create(ctx, "")
	_, err := f.carts.AddItem(ctx, cart.ID, "p1", 3)
	require.NoError(t, err)

	// 3 already held; stock 5 cannot cover 3+3
	_, err = f.carts.AddItem(ctx, cart.ID, "p1", 3)
	assert.ErrorIs(t, err, ErrUnavailable)

	// cart unchanged on failure
	got, err := f.carts.Get(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 3, got.Items[0].Quantity)

	// 3+2 fits exactly
	_, err = f.carts.AddItem(ctx, cart.ID, "p1", 2)
	assert.NoError(t, err)
}

func TestCartAddItemErrors(t *testing.T) {
	f := newFixture(testProduct("p1", "P1", "10.00", 5))
	ctx := context.Background()
	cart, _ := f.carts.Create(ctx, "")

	_, err := f.carts.AddItem(ctx, "missing-cart", "p1", 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.carts.AddItem(ctx, cart.ID, "missing-product", 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.carts.AddItem(ctx, cart.ID, "p1", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCartSetQuantity(t *testing.T) {
	f := newFixture(testProduct("p1", "P1", "10.00", 5))
	ctx := context.Background()
	cart, _ := f.carts.Create(ctx, "")
	_, err := f.carts.AddItem(ctx, cart.ID, "p1", 2)
	require.NoError(t, err)

	got, err := f.carts.SetQuantity(ctx, cart.ID, "p1", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Items[0].Quantity)

	_, err = f.carts.SetQuantity(ctx, cart.ID, "p1", 6)
	assert.ErrorIs(t, err, ErrUnavailable)

	// zero removes the line
	got, err = f.carts.SetQuantity(ctx, cart.ID, "p1", 0)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestCartSnapshotSubtotal(t *testing.T) {
	f := newFixture(
		testProduct("p1", "P1", "10.00", 10),
		testProduct("p2", "P2", "3.75", 10),
	)
	ctx := context.Background()
	cart, _ := f.carts.Create(ctx, "")
	_, err := f.carts.AddItem(ctx, cart.ID, "p1", 2)
	require.NoError(t, err)
	_, err = f.carts.AddItem(ctx, cart.ID, "p2", 4)
	require.NoError(t, err)

	snap, err := f.carts.Snapshot(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, snap.Items, 2)
	assert.Equal(t, 6, snap.ItemCount)

	// subtotal == sum of unitPrice*quantity over surviving lines
	want := decimal.Zero
	for _, it := range snap.Items {
		assert.True(t, it.TotalPrice.Equal(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))))
		want = want.Add(it.TotalPrice)
	}
	assert.True(t, snap.Subtotal.Equal(want))
	assert.True(t, snap.Subtotal.Equal(decimal.RequireFromString("35.00")))
}

func TestCartSnapshotDropsVanishedProducts(t *testing.T) {
	f := newFixture(
		testProduct("p1", "P1", "10.00", 10),
		testProduct("p2", "P2", "5.00", 10),
	)
	ctx := context.Background()
	cart, _ := f.carts.Create(ctx, "")
	_, err := f.carts.AddItem(ctx, cart.ID, "p1", 1)
	require.NoError(t, err)
	_, err = f.carts.AddItem(ctx, cart.ID, "p2", 1)
	require.NoError(t, err)

	_, err = f.products.Delete(ctx, "p2")
	require.NoError(t, err)

	snap, err := f.carts.Snapshot(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "p1", snap.Items[0].ProductID)
	assert.True(t, snap.Subtotal.Equal(decimal.RequireFromString("10.00")))
	assert.Equal(t, 1, snap.ItemCount)
}

func TestCartClearAndDelete(t *testing.T) {
	f := newFixture(testProduct("p1", "P1", "10.00", 10))
	ctx := context.Background()
	cart, _ := f.carts.Create(ctx, "")
	_, err := f.carts.AddItem(ctx, cart.ID, "p1", 1)
	require.NoError(t, err)

	got, err := f.carts.Clear(ctx, cart.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Items)

	existed, err := f.carts.Delete(ctx, cart.ID)
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = f.carts.Delete(ctx, cart.ID)
	require.NoError(t, err)
	assert.False(t, existed)

	_, err = f.carts.Get(ctx, cart.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
