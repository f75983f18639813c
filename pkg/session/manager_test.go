package session

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/parley/internal/adapters/memory"
	"github.com/aretw0/parley/pkg/domain"
)

func TestLoadOrStart(t *testing.T) {
	mgr := NewManager(memory.New())
	ctx := context.Background()

	fresh := func() *domain.State { return domain.NewState("", []string{"shop/order"}) }

	state, loaded, err := mgr.LoadOrStart(ctx, "sess", fresh)
	require.NoError(t, err)
	assert.False(t, loaded, "first call creates the session")
	assert.Equal(t, "sess", state.SessionID, "manager stamps the requested ID")
	assert.Equal(t, []string{"shop/order"}, state.AvailableNodes)

	// The fresh state was persisted, so a second call loads it.
	state.FilledSlots["#size#"] = "medium"
	require.NoError(t, mgr.Save(ctx, "sess", state))

	reloaded, loaded, err := mgr.LoadOrStart(ctx, "sess", fresh)
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, "medium", reloaded.FilledSlots["#size#"])
}

func TestLoadMissing(t *testing.T) {
	mgr := NewManager(memory.New())
	_, err := mgr.Load(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestDeleteAndList(t *testing.T) {
	mgr := NewManager(memory.New())
	ctx := context.Background()

	require.NoError(t, mgr.Save(ctx, "a", domain.NewState("a", nil)))
	require.NoError(t, mgr.Save(ctx, "b", domain.NewState("b", nil)))

	ids, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	require.NoError(t, mgr.Delete(ctx, "a"))
	ids, err = mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids)
}

func TestWithLockSerializesTurns(t *testing.T) {
	mgr := NewManager(memory.New())
	ctx := context.Background()

	var inside, max int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := mgr.WithLock(ctx, "sess", func(ctx context.Context) error {
				mu.Lock()
				inside++
				if inside > max {
					max = inside
				}
				mu.Unlock()

				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, max, "only one holder per session at any time")
}

func TestLockEntriesAreCollected(t *testing.T) {
	mgr := NewManager(memory.New())
	ctx := context.Background()

	require.NoError(t, mgr.WithLock(ctx, "sess", func(ctx context.Context) error { return nil }))

	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	assert.Empty(t, mgr.locks, "released entries do not leak")
}

func TestWithLockDifferentSessionsDoNotBlock(t *testing.T) {
	mgr := NewManager(memory.New())
	ctx := context.Background()

	release := make(chan struct{})
	held := make(chan struct{})

	go func() {
		_ = mgr.WithLock(ctx, "a", func(ctx context.Context) error {
			close(held)
			<-release
			return nil
		})
	}()

	<-held
	// Session "b" acquires immediately while "a" is held.
	err := mgr.WithLock(ctx, "b", func(ctx context.Context) error { return nil })
	assert.NoError(t, err)
	close(release)
}
