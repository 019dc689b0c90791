// File: internal/verification/repository.go
package verification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mottars_backend/internal/common"
	"mottars_backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for verification submission storage.
type Repository interface {
	Create(ctx context.Context, sub *Submission) error
	FindByID(ctx context.Context, id uuid.UUID) (*Submission, error)
	List(ctx context.Context, status domain.VerificationStatus) ([]Submission, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.VerificationStatus, reviewedAt time.Time) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM verification repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Migrate creates the submissions table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Submission{})
}

func (r *gormRepository) Create(ctx context.Context, sub *Submission) error {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		return fmt.Errorf("failed to create verification submission: %w", err)
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Submission, error) {
	var sub Submission
	err := r.db.WithContext(ctx).First(&sub, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Verification submission not found.")
		}
		return nil, fmt.Errorf("failed to find verification submission %s: %w", id, err)
	}
	return &sub, nil
}

// List returns submissions oldest first. An empty status lists all of them.
func (r *gormRepository) List(ctx context.Context, status domain.VerificationStatus) ([]Submission, error) {
	var subs []Submission
	query := r.db.WithContext(ctx).Order("created_at ASC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to list verification submissions: %w", err)
	}
	return subs, nil
}

func (r *gormRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.VerificationStatus, reviewedAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&Submission{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "reviewed_at": reviewedAt})
	if result.Error != nil {
		return fmt.Errorf("failed to update verification submission %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Verification submission not found.")
	}
	return nil
}
