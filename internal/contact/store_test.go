package contact

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
)

func TestMemStore_SequenceIDs(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		c, err := store.Create(ctx, gofakeit.Name(), gofakeit.Email())
		require.NoError(t, err)
		require.Equal(t, i, c.ID)
	}

	require.NoError(t, store.Delete(ctx, 3))

	c, err := store.Create(ctx, gofakeit.Name(), gofakeit.Email())
	require.NoError(t, err)
	require.Equal(t, 6, c.ID, "deleted ids are not reused")
}

func TestMemStore_SearchCaseInsensitiveSubstring(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	alice, err := store.Create(ctx, "Alice Johnson", "alice@example.com")
	require.NoError(t, err)
	bob, err := store.Create(ctx, "Bob Johnson", "bob@example.com")
	require.NoError(t, err)
	_, err = store.Create(ctx, "Carol Smith", "carol@example.com")
	require.NoError(t, err)

	matches, err := store.Search(ctx, "johnson")
	require.NoError(t, err)
	require.Equal(t, []Contact{alice, bob}, matches)

	matches, err = store.Search(ctx, "ALI")
	require.NoError(t, err)
	require.Equal(t, []Contact{alice}, matches)

	matches, err = store.Search(ctx, "nobody")
	require.NoError(t, err)
	require.Empty(t, matches)
}

func TestMemStore_UpdateAndDelete(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	c, err := store.Create(ctx, gofakeit.Name(), gofakeit.Email())
	require.NoError(t, err)

	c.Name = "Renamed"
	require.NoError(t, store.Update(ctx, c))

	got, ok, err := store.Get(ctx, c.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, c, got)

	require.ErrorIs(t, store.Update(ctx, Contact{ID: 999, Name: "x", Email: "x@y.z"}), ErrNotFound)
	require.ErrorIs(t, store.Delete(ctx, 999), ErrNotFound)

	require.NoError(t, store.Delete(ctx, c.ID))
	_, ok, err = store.Get(ctx, c.ID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", gofakeit.Email(), "first.last+tag@example.org"}
	for _, addr := range valid {
		require.True(t, ValidEmail(addr), addr)
	}

	invalid := []string{"", "plainaddress", "@no-local.part", "spaces in@addr.com",
		fmt.Sprintf("Bob <%s>", gofakeit.Email())}
	for _, addr := range invalid {
		require.False(t, ValidEmail(addr), addr)
	}
}
