package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"nanolink/models"
	"nanolink/store"
)

// Lookalike characters (0/O, 1/l/I) are left out of the alias alphabet.
const (
	aliasCharset = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	aliasLength  = 6

	// A 6-character alias stays collision-free well into tens of thousands
	// of links; the retry bound only guards the pathological case.
	maxAliasAttempts = 5
)

type LinkService struct {
	links store.LinkStore
}

func NewLinkService(links store.LinkStore) *LinkService {
	return &LinkService{links: links}
}

// Create generates a fresh alias and persists the link for ownerID. When the
// store rejects the alias as taken, generation is retried a bounded number
// of times before the failure surfaces.
func (s *LinkService) Create(ctx context.Context, ownerID uint, longLink string) (models.Link, error) {
	var lastErr error
	for attempt := 0; attempt < maxAliasAttempts; attempt++ {
		alias, err := generateAlias(aliasLength)
		if err != nil {
			return models.Link{}, fmt.Errorf("generate alias: %w", err)
		}

		link := models.Link{UserID: ownerID, LongLink: longLink, NanoLink: alias}
		err = s.links.CreateLink(ctx, &link)
		if err == nil {
			return link, nil
		}
		if !errors.Is(err, store.ErrDuplicate) {
			return models.Link{}, fmt.Errorf("create link: %w", err)
		}
		lastErr = err
	}
	return models.Link{}, fmt.Errorf("could not find a free alias after %d attempts: %w", maxAliasAttempts, lastErr)
}

func (s *LinkService) ListByOwner(ctx context.Context, ownerID uint) ([]models.Link, error) {
	links, err := s.links.GetLinksByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	return links, nil
}

// Resolve is the public lookup behind both redirect flows; no authentication
// involved.
func (s *LinkService) Resolve(ctx context.Context, nanoLink string) (string, error) {
	link, err := s.links.GetLinkByNano(ctx, nanoLink)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("resolve link: %w", err)
	}
	return link.LongLink, nil
}

func (s *LinkService) Update(ctx context.Context, requesterID, linkID uint, longLink string) (models.Link, error) {
	link, err := s.ownedLink(ctx, requesterID, linkID)
	if err != nil {
		return models.Link{}, err
	}

	link.LongLink = longLink
	if err := s.links.SaveLink(ctx, &link); err != nil {
		return models.Link{}, fmt.Errorf("save link: %w", err)
	}
	return link, nil
}

// Delete removes the link and returns the removed record.
func (s *LinkService) Delete(ctx context.Context, requesterID, linkID uint) (models.Link, error) {
	link, err := s.ownedLink(ctx, requesterID, linkID)
	if err != nil {
		return models.Link{}, err
	}

	if err := s.links.DeleteLink(ctx, link.ID); err != nil {
		return models.Link{}, fmt.Errorf("delete link: %w", err)
	}
	return link, nil
}

// ownedLink loads a link and checks ownership, in that order: a missing link
// is ErrNotFound for everyone, an existing one is ErrNotOwner for strangers.
// Nothing is mutated before the check passes.
func (s *LinkService) ownedLink(ctx context.Context, requesterID, linkID uint) (models.Link, error) {
	link, err := s.links.GetLinkByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Link{}, ErrNotFound
		}
		return models.Link{}, fmt.Errorf("get link: %w", err)
	}
	if link.UserID != requesterID {
		return models.Link{}, ErrNotOwner
	}
	return link, nil
}

func generateAlias(length int) (string, error) {
	alias := make([]byte, length)
	charsetLength := big.NewInt(int64(len(aliasCharset)))

	for i := range alias {
		randomIndex, err := rand.Int(rand.Reader, charsetLength)
		if err != nil {
			return "", err
		}
		alias[i] = aliasCharset[randomIndex.Int64()]
	}
	return string(alias), nil
}
