package shop

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func testCatalog() *Catalog {
	return NewCatalog(
		Product{ID: 1, Name: "Keyboard", Price: decimal.RequireFromString("49.90")},
		Product{ID: 2, Name: "Mouse", Price: decimal.RequireFromString("19.90")},
		Product{ID: 3, Name: "Monitor", Price: decimal.RequireFromString("179.99")},
	)
}

func newTestFileCart(t *testing.T) (*FileCart, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cart.json")
	return NewFileCart(path, zap.NewNop()), path
}

func TestFileCart_AddMergesQuantities(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog()
	cart, _ := newTestFileCart(t)

	first, err := cart.Add(ctx, cat, 1, 2)
	require.NoError(t, err)
	require.Equal(t, 2, first.Quantity)
	require.Equal(t, "Keyboard", first.Name)

	second, err := cart.Add(ctx, cat, 1, 3)
	require.NoError(t, err)
	require.Equal(t, 5, second.Quantity)
	require.False(t, second.LastUpdated.Before(first.LastUpdated))

	lines, err := cart.Lines(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, 5, lines["1"].Quantity)
}

func TestFileCart_AddUnknownProductLeavesCartUnchanged(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog()
	cart, _ := newTestFileCart(t)

	_, err := cart.Add(ctx, cat, 2, 1)
	require.NoError(t, err)

	_, err = cart.Add(ctx, cat, 999, 1)
	require.ErrorIs(t, err, ErrProductNotFound)

	lines, err := cart.Lines(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Contains(t, lines, "2")
}

func TestFileCart_CheckoutTotals(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog()
	cart, _ := newTestFileCart(t)

	_, err := cart.Add(ctx, cat, 1, 2) // 2 x 49.90 = 99.80
	require.NoError(t, err)
	_, err = cart.Add(ctx, cat, 2, 1) // 1 x 19.90 = 19.90
	require.NoError(t, err)

	sum, err := cart.Checkout(ctx, cat)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("119.70").Equal(sum.Total), "total=%s", sum.Total)

	want := []LineSnapshot{
		{ProductID: 1, Name: "Keyboard", Price: decimal.RequireFromString("49.90"),
			Quantity: 2, Subtotal: decimal.RequireFromString("99.80")},
		{ProductID: 2, Name: "Mouse", Price: decimal.RequireFromString("19.90"),
			Quantity: 1, Subtotal: decimal.RequireFromString("19.90")},
	}
	if diff := cmp.Diff(want, sum.Items, decimalComparer); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}

	// Checkout must not mutate the cart; clearing is the caller's job.
	lines, err := cart.Lines(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 2)
}

func TestFileCart_CheckoutSkipsStaleLines(t *testing.T) {
	ctx := context.Background()
	cart, _ := newTestFileCart(t)

	full := testCatalog()
	_, err := cart.Add(ctx, full, 1, 1)
	require.NoError(t, err)
	_, err = cart.Add(ctx, full, 3, 2)
	require.NoError(t, err)

	// Product 3 vanished from the catalog between add and checkout.
	shrunk := NewCatalog(Product{ID: 1, Name: "Keyboard", Price: decimal.RequireFromString("49.90")})

	sum, err := cart.Checkout(ctx, shrunk)
	require.NoError(t, err)
	require.Len(t, sum.Items, 1)
	require.EqualValues(t, 1, sum.Items[0].ProductID)
	require.True(t, decimal.RequireFromString("49.90").Equal(sum.Total), "total=%s", sum.Total)
}

func TestFileCart_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog()
	cart, path := newTestFileCart(t)

	_, err := cart.Add(ctx, cat, 2, 4)
	require.NoError(t, err)

	reopened := NewFileCart(path, zap.NewNop())
	lines, err := reopened.Lines(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, 4, lines["2"].Quantity)

	opts := []cmp.Option{decimalComparer, cmpopts.EquateApproxTime(time.Second)}
	if diff := cmp.Diff(mustLines(t, cart), lines, opts...); diff != "" {
		t.Fatalf("reloaded state mismatch (-want +got):\n%s", diff)
	}
}

func TestFileCart_ClearEmptiesMemoryAndFile(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog()
	cart, path := newTestFileCart(t)

	_, err := cart.Add(ctx, cat, 1, 1)
	require.NoError(t, err)

	require.NoError(t, cart.Clear(ctx))

	lines, err := cart.Lines(ctx)
	require.NoError(t, err)
	require.Empty(t, lines)

	reopened := NewFileCart(path, zap.NewNop())
	lines, err = reopened.Lines(ctx)
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestMemCart_RandomizedMerge(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog()
	cart := NewMemCart()

	q1 := gofakeit.Number(1, 50)
	q2 := gofakeit.Number(1, 50)

	_, err := cart.Add(ctx, cat, 2, q1)
	require.NoError(t, err)

	ln, err := cart.Add(ctx, cat, 2, q2)
	require.NoError(t, err)
	require.Equal(t, q1+q2, ln.Quantity)
}

func mustLines(t *testing.T, c CartStore) map[string]Line {
	t.Helper()
	lines, err := c.Lines(context.Background())
	require.NoError(t, err)
	return lines
}
