package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"nanolink/models"
)

// MemoryStore keeps everything in maps behind a mutex. It mirrors the
// uniqueness guarantees of the database schema and is what the tests run
// against.
type MemoryStore struct {
	mu         sync.Mutex
	users      map[uint]models.User
	links      map[uint]models.Link
	lastUserID uint
	lastLinkID uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[uint]models.User),
		links: make(map[uint]models.Link),
	}
}

func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return ErrDuplicate
		}
	}

	s.lastUserID++
	user.ID = s.lastUserID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *MemoryStore) GetUserByID(_ context.Context, id uint) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

func (s *MemoryStore) CreateLink(_ context.Context, link *models.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.links {
		if existing.NanoLink == link.NanoLink {
			return ErrDuplicate
		}
	}

	s.lastLinkID++
	link.ID = s.lastLinkID
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now()
	}
	s.links[link.ID] = *link
	return nil
}

func (s *MemoryStore) GetLinkByID(_ context.Context, id uint) (models.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	link, ok := s.links[id]
	if !ok {
		return models.Link{}, ErrNotFound
	}
	return link, nil
}

func (s *MemoryStore) GetLinkByNano(_ context.Context, nanoLink string) (models.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, link := range s.links {
		if link.NanoLink == nanoLink {
			return link, nil
		}
	}
	return models.Link{}, ErrNotFound
}

func (s *MemoryStore) GetLinksByOwner(_ context.Context, ownerID uint) ([]models.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var links []models.Link
	for _, link := range s.links {
		if link.UserID == ownerID {
			links = append(links, link)
		}
	}
	sort.Slice(links, func(i, j int) bool { return links[i].ID < links[j].ID })
	return links, nil
}

func (s *MemoryStore) SaveLink(_ context.Context, link *models.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.links[link.ID]; !ok {
		return ErrNotFound
	}
	for id, other := range s.links {
		if id != link.ID && other.NanoLink == link.NanoLink {
			return ErrDuplicate
		}
	}
	s.links[link.ID] = *link
	return nil
}

func (s *MemoryStore) DeleteLink(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.links[id]; !ok {
		return ErrNotFound
	}
	delete(s.links, id)
	return nil
}
