// File: internal/listing/repository.go
package listing

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrRecordNotFound is returned by the repository when a lookup misses.
var ErrRecordNotFound = errors.New("listing: record not found")

// Repository defines read access to the marketplace dataset.
type Repository interface {
	ListCars(ctx context.Context) ([]Car, error)
	ListCarsBySeller(ctx context.Context, sellerID string) ([]Car, error)
	FindCarByID(ctx context.Context, id string) (*Car, error)
	FindSellerByID(ctx context.Context, id string) (*Seller, error)
	ListReviews(ctx context.Context) ([]Review, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM listing repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) ListCars(ctx context.Context) ([]Car, error) {
	var cars []Car
	if err := r.db.WithContext(ctx).Preload("Seller").Order("position ASC").Find(&cars).Error; err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}
	return cars, nil
}

func (r *gormRepository) ListCarsBySeller(ctx context.Context, sellerID string) ([]Car, error) {
	var cars []Car
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("position ASC").
		Find(&cars).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cars for seller %s: %w", sellerID, err)
	}
	return cars, nil
}

func (r *gormRepository) FindCarByID(ctx context.Context, id string) (*Car, error) {
	var car Car
	err := r.db.WithContext(ctx).Preload("Seller").First(&car, "cars.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to find car %s: %w", id, err)
	}
	return &car, nil
}

func (r *gormRepository) FindSellerByID(ctx context.Context, id string) (*Seller, error) {
	var seller Seller
	if err := r.db.WithContext(ctx).First(&seller, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to find seller %s: %w", id, err)
	}
	return &seller, nil
}

func (r *gormRepository) ListReviews(ctx context.Context) ([]Review, error) {
	var reviews []Review
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// Migrate creates or updates the dataset tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Seller{}, &Car{}, &Review{})
}

// SeedIfEmpty loads the fixture dataset when the cars table is empty.
// It reports whether anything was written.
func SeedIfEmpty(ctx context.Context, db *gorm.DB) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&Car{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count cars: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sellers := FixtureSellers()
		if err := tx.Create(&sellers).Error; err != nil {
			return fmt.Errorf("failed to seed sellers: %w", err)
		}
		cars := FixtureCars()
		if err := tx.Omit("Seller").Create(&cars).Error; err != nil {
			return fmt.Errorf("failed to seed cars: %w", err)
		}
		reviews := FixtureReviews()
		if err := tx.Create(&reviews).Error; err != nil {
			return fmt.Errorf("failed to seed reviews: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
