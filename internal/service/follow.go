package service

import (
	"context"
	"log"

	"yatube/internal/model"
	"yatube/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow makes userID follow the author. Following twice leaves one edge.
// Following yourself changes nothing and reports ErrCannotFollowSelf.
// The author is returned in every case where it exists.
func (s *FollowService) Follow(ctx context.Context, userID int64, username string) (*model.User, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if author.ID == userID {
		return author, model.ErrCannotFollowSelf
	}

	inserted, err := s.followRepo.Create(ctx, userID, author.ID)
	if err != nil {
		return author, err
	}

	if inserted {
		log.Printf("[FollowService] Followed: user=%d author=%d", userID, author.ID)
	}
	return author, nil
}

// Unfollow removes the edge if present; unfollowing twice is not an error.
func (s *FollowService) Unfollow(ctx context.Context, userID int64, username string) (*model.User, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	deleted, err := s.followRepo.Delete(ctx, userID, author.ID)
	if err != nil {
		return author, err
	}

	if deleted {
		log.Printf("[FollowService] Unfollowed: user=%d author=%d", userID, author.ID)
	}
	return author, nil
}
