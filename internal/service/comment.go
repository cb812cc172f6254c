package service

import (
	"context"
	"fmt"

	"yatube/internal/form"
	"yatube/internal/model"
	"yatube/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// Create adds a comment by authorID to the author's post. An invalid form
// returns form.Errors and persists nothing.
func (s *CommentService) Create(ctx context.Context, authorID int64, username string, postID int64, f model.CommentForm) (*model.Comment, error) {
	post, err := s.postRepo.GetByAuthor(ctx, username, postID)
	if err != nil {
		return nil, err
	}

	if errs := form.Validate(f); len(errs) > 0 {
		return nil, errs
	}

	comment, err := s.commentRepo.Create(ctx, post.ID, authorID, f.Text)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}
