package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"nanolink/models"
)

// GormStore backs the stores with a relational database. The unique indexes
// on users.email and links.nano_link are what makes concurrent duplicate
// inserts fail instead of racing.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, translate(err)
	}
	return user, nil
}

func (s *GormStore) GetUserByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return models.User{}, translate(err)
	}
	return user, nil
}

func (s *GormStore) CreateLink(ctx context.Context, link *models.Link) error {
	return translate(s.db.WithContext(ctx).Create(link).Error)
}

func (s *GormStore) GetLinkByID(ctx context.Context, id uint) (models.Link, error) {
	var link models.Link
	if err := s.db.WithContext(ctx).First(&link, id).Error; err != nil {
		return models.Link{}, translate(err)
	}
	return link, nil
}

func (s *GormStore) GetLinkByNano(ctx context.Context, nanoLink string) (models.Link, error) {
	var link models.Link
	if err := s.db.WithContext(ctx).Where("nano_link = ?", nanoLink).First(&link).Error; err != nil {
		return models.Link{}, translate(err)
	}
	return link, nil
}

func (s *GormStore) GetLinksByOwner(ctx context.Context, ownerID uint) ([]models.Link, error) {
	var links []models.Link
	result := s.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("created_at desc").Find(&links)
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	return links, nil
}

func (s *GormStore) SaveLink(ctx context.Context, link *models.Link) error {
	return translate(s.db.WithContext(ctx).Save(link).Error)
}

func (s *GormStore) DeleteLink(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Link{}, id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// translate maps driver errors onto the package sentinels. The string check
// covers drivers that bypass gorm's error translation.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case strings.Contains(err.Error(), "duplicate key"):
		return ErrDuplicate
	}
	return err
}
