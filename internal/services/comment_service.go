package services

import (
	"strings"
	"time"
	"unicode/utf8"

	customerrors "github.com/dondigital/storefront/internal/errors"
	"github.com/dondigital/storefront/internal/models"
	"github.com/dondigital/storefront/internal/repository"
)

// CommentService provides business logic for the public comment board.
type CommentService struct {
	commentRepo repository.CommentRepository
}

// NewCommentService creates and returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo}
}

// LatestComments returns the 50 most recent comments, newest first.
func (s *CommentService) LatestComments() ([]models.Comment, error) {
	return s.commentRepo.Latest(50)
}

// PostComment validates and stores a comment. The length limit applies to
// the raw text; the stored text is trimmed.
func (s *CommentService) PostComment(commentText string) (*models.Comment, error) {
	if strings.TrimSpace(commentText) == "" {
		return nil, customerrors.NewValidation("Comment text is required")
	}
	if utf8.RuneCountInString(commentText) > models.MaxCommentLength {
		return nil, customerrors.NewValidation("Comment must be %d characters or less", models.MaxCommentLength)
	}

	comment := &models.Comment{
		CommentText: strings.TrimSpace(commentText),
		CreatedAt:   time.Now(),
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment by id. Deleting an unknown id is a silent
// no-op success.
func (s *CommentService) DeleteComment(id uint) error {
	return s.commentRepo.DeleteByID(id)
}
