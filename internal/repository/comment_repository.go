package repository

import (
	"fmt"

	"github.com/dondigital/storefront/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the data access methods for comments.
type CommentRepository interface {
	Latest(limit int) ([]models.Comment, error)
	Create(comment *models.Comment) error
	DeleteByID(id uint) error
}

// GormCommentRepository is the CommentRepository implementation using GORM.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates and returns a new GormCommentRepository.
func NewCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Latest returns up to limit comments, newest first.
func (r *GormCommentRepository) Latest(limit int) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve comments: %w", err)
	}
	return comments, nil
}

// Create inserts a new comment.
func (r *GormCommentRepository) Create(comment *models.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// DeleteByID removes a comment. Unknown ids are a silent no-op.
func (r *GormCommentRepository) DeleteByID(id uint) error {
	if err := r.db.Delete(&models.Comment{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete comment %d: %w", id, err)
	}
	return nil
}
