package service

import (
	"context"
	"fmt"

	"yatube/internal/model"
	"yatube/internal/pagination"
	"yatube/internal/repository"
)

// FeedService builds the paginated post collections: the global feed, group
// feeds, author profiles and the requester's following feed.
type FeedService struct {
	postRepo   repository.PostRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	perPage    int
}

func NewFeedService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	perPage int,
) *FeedService {
	if perPage <= 0 {
		perPage = pagination.DefaultPerPage
	}
	return &FeedService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
		perPage:    perPage,
	}
}

// Index returns a page of every post, newest first.
func (s *FeedService) Index(ctx context.Context, rawPage string) (*model.FeedPage, error) {
	posts, page, err := s.paginate(ctx, model.PostFilter{}, rawPage)
	if err != nil {
		return nil, err
	}
	return &model.FeedPage{Posts: posts, Page: page}, nil
}

// Group returns a page of the group's posts. Unknown slugs yield ErrGroupNotFound.
func (s *FeedService) Group(ctx context.Context, slug, rawPage string) (*model.FeedPage, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	posts, page, err := s.paginate(ctx, model.PostFilter{GroupID: &group.ID}, rawPage)
	if err != nil {
		return nil, err
	}
	return &model.FeedPage{Posts: posts, Page: page, Group: group}, nil
}

// Following returns a page of posts by authors the user follows.
func (s *FeedService) Following(ctx context.Context, userID int64, rawPage string) (*model.FeedPage, error) {
	posts, page, err := s.paginate(ctx, model.PostFilter{FollowerID: &userID}, rawPage)
	if err != nil {
		return nil, err
	}
	return &model.FeedPage{Posts: posts, Page: page}, nil
}

// Profile returns the author's posts with their counters. Following is false
// for anonymous viewers and for authors viewing themselves.
func (s *FeedService) Profile(ctx context.Context, username string, viewerID *int64, rawPage string) (*model.ProfilePage, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	posts, page, err := s.paginate(ctx, model.PostFilter{AuthorID: &author.ID}, rawPage)
	if err != nil {
		return nil, err
	}

	stats, err := s.userRepo.Stats(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	following, err := isFollowing(ctx, s.followRepo, viewerID, author.ID)
	if err != nil {
		return nil, err
	}

	return &model.ProfilePage{
		Author:    author,
		Stats:     stats,
		Following: following,
		Posts:     posts,
		Page:      page,
	}, nil
}

func (s *FeedService) paginate(ctx context.Context, filter model.PostFilter, rawPage string) ([]model.Post, pagination.Page, error) {
	count, err := s.postRepo.Count(ctx, filter)
	if err != nil {
		return nil, pagination.Page{}, fmt.Errorf("count feed: %w", err)
	}

	page := pagination.New(count, s.perPage).Page(rawPage)
	if count == 0 {
		return []model.Post{}, page, nil
	}

	posts, err := s.postRepo.List(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		return nil, pagination.Page{}, fmt.Errorf("list feed: %w", err)
	}
	return posts, page, nil
}

// isFollowing is false without a viewer or when the viewer is the author.
func isFollowing(ctx context.Context, followRepo repository.FollowRepository, viewerID *int64, authorID int64) (bool, error) {
	if viewerID == nil || *viewerID == authorID {
		return false, nil
	}
	following, err := followRepo.Exists(ctx, *viewerID, authorID)
	if err != nil {
		return false, fmt.Errorf("check following: %w", err)
	}
	return following, nil
}
