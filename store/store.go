// Package store persists users and links behind small interfaces, so the
// services can run against Postgres in production and an in-memory map in
// tests. Uniqueness of emails and aliases is enforced here, atomically,
// never by check-then-insert in the callers.
package store

import (
	"context"
	"errors"

	"nanolink/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, id uint) (models.User, error)
}

type LinkStore interface {
	CreateLink(ctx context.Context, link *models.Link) error
	GetLinkByID(ctx context.Context, id uint) (models.Link, error)
	GetLinkByNano(ctx context.Context, nanoLink string) (models.Link, error)
	GetLinksByOwner(ctx context.Context, ownerID uint) ([]models.Link, error)
	SaveLink(ctx context.Context, link *models.Link) error
	DeleteLink(ctx context.Context, id uint) error
}
