package services

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nanolink/models"
	"nanolink/store"
)

func TestLinkService_CreateAndResolve(t *testing.T) {
	service := NewLinkService(store.NewMemoryStore())
	ctx := context.Background()

	link, err := service.Create(ctx, 1, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, uint(1), link.UserID)
	assert.Equal(t, "https://example.com", link.LongLink)
	assert.Len(t, link.NanoLink, 6)
	for _, r := range link.NanoLink {
		assert.Contains(t, aliasCharset, string(r))
	}

	longLink, err := service.Resolve(ctx, link.NanoLink)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", longLink)
}

func TestLinkService_Resolve_NotFound(t *testing.T) {
	service := NewLinkService(store.NewMemoryStore())

	_, err := service.Resolve(context.Background(), "zzzzzz")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLinkService_ListByOwner(t *testing.T) {
	service := NewLinkService(store.NewMemoryStore())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := service.Create(ctx, 1, "https://example.com")
		require.NoError(t, err)
	}
	_, err := service.Create(ctx, 2, "https://example.org")
	require.NoError(t, err)

	links, err := service.ListByOwner(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, links, 3)

	links, err = service.ListByOwner(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestLinkService_Update(t *testing.T) {
	service := NewLinkService(store.NewMemoryStore())
	ctx := context.Background()

	link, err := service.Create(ctx, 1, "https://example.com")
	require.NoError(t, err)

	updated, err := service.Update(ctx, 1, link.ID, "https://example.org")
	require.NoError(t, err)
	assert.Equal(t, "https://example.org", updated.LongLink)
	assert.Equal(t, link.NanoLink, updated.NanoLink, "alias is immutable")

	longLink, err := service.Resolve(ctx, link.NanoLink)
	require.NoError(t, err)
	assert.Equal(t, "https://example.org", longLink)
}

func TestLinkService_OwnershipEnforcement(t *testing.T) {
	service := NewLinkService(store.NewMemoryStore())
	ctx := context.Background()

	link, err := service.Create(ctx, 1, "https://example.com")
	require.NoError(t, err)

	t.Run("stranger cannot update", func(t *testing.T) {
		_, err := service.Update(ctx, 2, link.ID, "https://evil.example")
		assert.ErrorIs(t, err, ErrNotOwner)

		longLink, err := service.Resolve(ctx, link.NanoLink)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", longLink, "failed update must not mutate")
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		_, err := service.Delete(ctx, 2, link.ID)
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("missing link is not found for everyone", func(t *testing.T) {
		_, err := service.Update(ctx, 1, 9999, "https://example.org")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = service.Delete(ctx, 2, 9999)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestLinkService_Delete(t *testing.T) {
	service := NewLinkService(store.NewMemoryStore())
	ctx := context.Background()

	link, err := service.Create(ctx, 1, "https://example.com")
	require.NoError(t, err)

	removed, err := service.Delete(ctx, 1, link.ID)
	require.NoError(t, err)
	assert.Equal(t, link.ID, removed.ID)
	assert.Equal(t, link.NanoLink, removed.NanoLink)

	_, err = service.Resolve(ctx, link.NanoLink)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLinkService_ConcurrentCreationAliasesAreUnique(t *testing.T) {
	service := NewLinkService(store.NewMemoryStore())
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	aliases := make(map[string]struct{}, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(owner uint) {
			defer wg.Done()
			link, err := service.Create(ctx, owner, "https://example.com")
			assert.NoError(t, err)

			mu.Lock()
			aliases[link.NanoLink] = struct{}{}
			mu.Unlock()
		}(uint(i%3 + 1))
	}
	wg.Wait()

	assert.Len(t, aliases, workers, "every created link must get a distinct alias")
}

// collidingLinkStore rejects every insert as a duplicate, as if the alias
// space were exhausted.
type collidingLinkStore struct {
	*store.MemoryStore
	attempts int
}

func (s *collidingLinkStore) CreateLink(_ context.Context, _ *models.Link) error {
	s.attempts++
	return store.ErrDuplicate
}

func TestLinkService_CreateGivesUpAfterBoundedRetries(t *testing.T) {
	colliding := &collidingLinkStore{MemoryStore: store.NewMemoryStore()}
	service := NewLinkService(colliding)

	_, err := service.Create(context.Background(), 1, "https://example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrDuplicate)
	assert.True(t, strings.Contains(err.Error(), "attempts"))
	assert.Equal(t, maxAliasAttempts, colliding.attempts)
}
