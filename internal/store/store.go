package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/pawel3ala/wavestone/internal/hash"
	"github.com/pawel3ala/wavestone/internal/models"
	"github.com/pawel3ala/wavestone/internal/transport"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

// Store owns the user and product collections. It is backed by an in-memory
// sqlite database, so every record is gone when the process stops.
type Store struct {
	DB *gorm.DB
}

func Open() (*Store, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	// An in-memory sqlite database exists per connection; a second pooled
	// connection would see an empty schema. A single connection also keeps
	// request handling serialized.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("store db handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Product{}); err != nil {
		return nil, fmt.Errorf("migrate store: %w", err)
	}

	return &Store{DB: db}, nil
}

// Seed creates the single initial user. The seed password bypasses
// registration validation, matching the seeded "user"/"pass" account.
func (s *Store) Seed(username, password string) error {
	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}
	_, err = s.CreateUser(context.Background(), username, pwHash)
	if err != nil && !errors.Is(err, ErrDuplicate) {
		return fmt.Errorf("seed user: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Username matching is case-sensitive throughout.

func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	var existing models.User
	err := s.DB.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicate
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := models.User{Username: username, PasswordHash: passwordHash}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) Products(ctx context.Context) ([]models.Product, error) {
	items := []models.Product{}
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ProductByID(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	if err := s.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *Store) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := s.DB.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct is a shallow merge: only non-nil patch fields replace the
// stored ones.
func (s *Store) UpdateProduct(ctx context.Context, id int, patch transport.ProductPatch) (*models.Product, error) {
	product, err := s.ProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.DateAdded != nil {
		product.DateAdded = *patch.DateAdded
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}

	if err := s.DB.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes the record and returns it.
func (s *Store) DeleteProduct(ctx context.Context, id int) (*models.Product, error) {
	product, err := s.ProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Delete(&models.Product{}, id).Error; err != nil {
		return nil, err
	}
	return product, nil
}
