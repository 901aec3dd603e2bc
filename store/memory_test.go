package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nanolink/models"
)

func TestMemoryStore_UserEmailUniqueness(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first := models.User{Email: "a@b.com", Password: "hash"}
	require.NoError(t, s.CreateUser(ctx, &first))
	assert.NotZero(t, first.ID)

	second := models.User{Email: "a@b.com", Password: "hash"}
	assert.ErrorIs(t, s.CreateUser(ctx, &second), ErrDuplicate)

	found, err := s.GetUserByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	_, err = s.GetUserByEmail(ctx, "missing@b.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_LinkAliasUniqueness(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first := models.Link{UserID: 1, LongLink: "https://example.com", NanoLink: "abc123"}
	require.NoError(t, s.CreateLink(ctx, &first))

	second := models.Link{UserID: 2, LongLink: "https://example.org", NanoLink: "abc123"}
	assert.ErrorIs(t, s.CreateLink(ctx, &second), ErrDuplicate)
}

func TestMemoryStore_SaveLink(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	link := models.Link{UserID: 1, LongLink: "https://example.com", NanoLink: "abc123"}
	require.NoError(t, s.CreateLink(ctx, &link))

	link.LongLink = "https://example.org"
	require.NoError(t, s.SaveLink(ctx, &link))

	stored, err := s.GetLinkByID(ctx, link.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://example.org", stored.LongLink)

	missing := models.Link{ID: 999, NanoLink: "zzzzzz"}
	assert.ErrorIs(t, s.SaveLink(ctx, &missing), ErrNotFound)
}

func TestMemoryStore_DeleteLink(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	link := models.Link{UserID: 1, LongLink: "https://example.com", NanoLink: "abc123"}
	require.NoError(t, s.CreateLink(ctx, &link))

	require.NoError(t, s.DeleteLink(ctx, link.ID))
	assert.ErrorIs(t, s.DeleteLink(ctx, link.ID), ErrNotFound)

	_, err := s.GetLinkByNano(ctx, "abc123")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_GetLinksByOwner(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i, nano := range []string{"aaaaaa", "bbbbbb", "cccccc"} {
		owner := uint(1)
		if i == 2 {
			owner = 2
		}
		link := models.Link{UserID: owner, LongLink: "https://example.com", NanoLink: nano}
		require.NoError(t, s.CreateLink(ctx, &link))
	}

	links, err := s.GetLinksByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "aaaaaa", links[0].NanoLink)
	assert.Equal(t, "bbbbbb", links[1].NanoLink)
}
