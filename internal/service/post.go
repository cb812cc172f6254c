package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"

	"yatube/internal/form"
	"yatube/internal/model"
	"yatube/internal/repository"
)

// ImageUploader stores a post image and returns where it landed.
type ImageUploader interface {
	UploadPostImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*model.UploadResult, error)
}

// ImageFile is an image attached to a post form.
type ImageFile struct {
	File   multipart.File
	Header *multipart.FileHeader
}

type PostService struct {
	postRepo    repository.PostRepository
	groupRepo   repository.GroupRepository
	userRepo    repository.UserRepository
	followRepo  repository.FollowRepository
	commentRepo repository.CommentRepository
	images      ImageUploader // nil when uploads are not configured
}

func NewPostService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	commentRepo repository.CommentRepository,
	images ImageUploader,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		groupRepo:   groupRepo,
		userRepo:    userRepo,
		followRepo:  followRepo,
		commentRepo: commentRepo,
		images:      images,
	}
}

// Detail loads a post with its comments (oldest first), the author's
// counters and whether the viewer follows the author.
func (s *PostService) Detail(ctx context.Context, username string, postID int64, viewerID *int64) (*model.PostDetail, error) {
	post, err := s.postRepo.GetByAuthor(ctx, username, postID)
	if err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, post.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("get post author: %w", err)
	}

	stats, err := s.userRepo.Stats(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	following, err := isFollowing(ctx, s.followRepo, viewerID, author.ID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	return &model.PostDetail{
		Post:      post,
		Author:    author,
		Stats:     stats,
		Following: following,
		Comments:  comments,
	}, nil
}

// Groups lists the choices for the post form.
func (s *PostService) Groups(ctx context.Context) ([]model.Group, error) {
	return s.groupRepo.List(ctx)
}

// Create validates the form, uploads the optional image and stores a post
// authored by authorID.
func (s *PostService) Create(ctx context.Context, authorID int64, f model.PostForm, image *ImageFile) (*model.Post, error) {
	in, err := s.prepare(ctx, f, image)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.Create(ctx, authorID, in)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	log.Printf("[PostService] Created post: post=%d author=%d", post.ID, authorID)
	return post, nil
}

// GetForEdit returns the post if editorID wrote it. Other users get the post
// back together with ErrNotPostAuthor so the caller can redirect to it.
func (s *PostService) GetForEdit(ctx context.Context, editorID int64, username string, postID int64) (*model.Post, error) {
	post, err := s.postRepo.GetByAuthor(ctx, username, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != editorID {
		return post, model.ErrNotPostAuthor
	}
	return post, nil
}

// Edit applies the form to the post. Non-authors get ErrNotPostAuthor and
// the post is left untouched.
func (s *PostService) Edit(ctx context.Context, editorID int64, username string, postID int64, f model.PostForm, image *ImageFile) (*model.Post, error) {
	post, err := s.GetForEdit(ctx, editorID, username, postID)
	if err != nil {
		return post, err
	}

	in, err := s.prepare(ctx, f, image)
	if err != nil {
		return post, err
	}

	updated, err := s.postRepo.Update(ctx, post.ID, in)
	if err != nil {
		return post, fmt.Errorf("update post: %w", err)
	}
	return updated, nil
}

// prepare validates the form and uploads the image only once the rest of the
// form is valid, so rejected submissions leave nothing in the bucket.
func (s *PostService) prepare(ctx context.Context, f model.PostForm, image *ImageFile) (model.PostInput, error) {
	errs := form.Validate(f)

	if f.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *f.GroupID); err != nil {
			if !errors.Is(err, model.ErrGroupNotFound) {
				return model.PostInput{}, err
			}
			errs.Add("group", form.MsgInvalidChoice)
		}
	}

	if image != nil && s.images == nil {
		errs.Add("image", "Image uploads are not available.")
	}

	if len(errs) > 0 {
		return model.PostInput{}, errs
	}

	in := model.PostInput{Text: f.Text, GroupID: f.GroupID}
	if image == nil {
		return in, nil
	}

	upload, err := s.images.UploadPostImage(ctx, image.File, image.Header)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrFileTooLarge):
			return model.PostInput{}, form.Errors{"image": "Image exceeds the 5MB limit."}
		case errors.Is(err, model.ErrInvalidImageType):
			return model.PostInput{}, form.Errors{"image": "Upload a valid image. Allowed: jpeg, png, gif, webp."}
		}
		return model.PostInput{}, fmt.Errorf("upload image: %w", err)
	}

	in.ImageURL = &upload.URL
	in.ImageKey = &upload.Key
	return in, nil
}
