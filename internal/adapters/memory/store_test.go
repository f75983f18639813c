package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/parley/pkg/domain"
)

func TestStoreRoundTrip(t *testing.T) {
	store := New()
	ctx := context.Background()

	state := domain.NewState("sess", []string{"a"})
	state.FilledSlots["#size#"] = "medium"
	require.NoError(t, store.Save(ctx, "sess", state))

	loaded, err := store.Load(ctx, "sess")
	require.NoError(t, err)
	assert.Equal(t, "sess", loaded.SessionID)
	assert.Equal(t, "medium", loaded.FilledSlots["#size#"])

	// The store must not alias the caller's state in either direction.
	state.FilledSlots["#size#"] = "changed"
	loaded.FilledSlots["#size#"] = "also changed"
	fresh, err := store.Load(ctx, "sess")
	require.NoError(t, err)
	assert.Equal(t, "medium", fresh.FilledSlots["#size#"])
}

func TestStoreLoadMissing(t *testing.T) {
	store := New()
	_, err := store.Load(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStoreDeleteAndList(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "b", domain.NewState("b", nil)))
	require.NoError(t, store.Save(ctx, "a", domain.NewState("a", nil)))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids, "listing is sorted")

	require.NoError(t, store.Delete(ctx, "a"))
	require.NoError(t, store.Delete(ctx, "ghost"), "deleting a missing session is not an error")

	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids)
}
