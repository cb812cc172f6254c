package service

import (
	"context"
	"mime/multipart"

	"yatube/internal/model"
)

// =============================================================================
// MOCK REPOSITORIES
// =============================================================================
//
// Each mock exposes one function field per method so a test only defines the
// behavior it cares about. Unset fields fall back to a harmless default.

type mockUserRepository struct {
	createFn           func(ctx context.Context, user *model.User) error
	getByIDFn          func(ctx context.Context, id int64) (*model.User, error)
	getByUsernameFn    func(ctx context.Context, username string) (*model.User, error)
	existsByUsernameFn func(ctx context.Context, username string) (bool, error)
	statsFn            func(ctx context.Context, userID int64) (model.AuthorStats, error)

	createCalls []*model.User
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls = append(m.createCalls, user)
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsByUsernameFn != nil {
		return m.existsByUsernameFn(ctx, username)
	}
	return false, nil
}

func (m *mockUserRepository) Stats(ctx context.Context, userID int64) (model.AuthorStats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx, userID)
	}
	return model.AuthorStats{}, nil
}

type mockGroupRepository struct {
	groups map[int64]*model.Group
}

func (m *mockGroupRepository) Create(ctx context.Context, group *model.Group) error {
	if m.groups == nil {
		m.groups = make(map[int64]*model.Group)
	}
	group.ID = int64(len(m.groups) + 1)
	m.groups[group.ID] = group
	return nil
}

func (m *mockGroupRepository) GetByID(ctx context.Context, id int64) (*model.Group, error) {
	if g, ok := m.groups[id]; ok {
		return g, nil
	}
	return nil, model.ErrGroupNotFound
}

func (m *mockGroupRepository) GetBySlug(ctx context.Context, slug string) (*model.Group, error) {
	for _, g := range m.groups {
		if g.Slug == slug {
			return g, nil
		}
	}
	return nil, model.ErrGroupNotFound
}

func (m *mockGroupRepository) List(ctx context.Context) ([]model.Group, error) {
	groups := []model.Group{}
	for _, g := range m.groups {
		groups = append(groups, *g)
	}
	return groups, nil
}

type listCall struct {
	Filter model.PostFilter
	Limit  int
	Offset int
}

type mockPostRepository struct {
	createFn      func(ctx context.Context, authorID int64, in model.PostInput) (*model.Post, error)
	updateFn      func(ctx context.Context, postID int64, in model.PostInput) (*model.Post, error)
	getByAuthorFn func(ctx context.Context, username string, postID int64) (*model.Post, error)
	countFn       func(ctx context.Context, filter model.PostFilter) (int, error)
	listFn        func(ctx context.Context, filter model.PostFilter, limit, offset int) ([]model.Post, error)

	createCalls []model.PostInput
	updateCalls []model.PostInput
	listCalls   []listCall
}

func (m *mockPostRepository) Create(ctx context.Context, authorID int64, in model.PostInput) (*model.Post, error) {
	m.createCalls = append(m.createCalls, in)
	if m.createFn != nil {
		return m.createFn(ctx, authorID, in)
	}
	return &model.Post{ID: 1, AuthorID: authorID, Text: in.Text, GroupID: in.GroupID, ImageURL: in.ImageURL}, nil
}

func (m *mockPostRepository) Update(ctx context.Context, postID int64, in model.PostInput) (*model.Post, error) {
	m.updateCalls = append(m.updateCalls, in)
	if m.updateFn != nil {
		return m.updateFn(ctx, postID, in)
	}
	return &model.Post{ID: postID, Text: in.Text, GroupID: in.GroupID}, nil
}

func (m *mockPostRepository) GetByAuthor(ctx context.Context, username string, postID int64) (*model.Post, error) {
	if m.getByAuthorFn != nil {
		return m.getByAuthorFn(ctx, username, postID)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) Count(ctx context.Context, filter model.PostFilter) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, filter)
	}
	return 0, nil
}

func (m *mockPostRepository) List(ctx context.Context, filter model.PostFilter, limit, offset int) ([]model.Post, error) {
	m.listCalls = append(m.listCalls, listCall{Filter: filter, Limit: limit, Offset: offset})
	if m.listFn != nil {
		return m.listFn(ctx, filter, limit, offset)
	}
	return []model.Post{}, nil
}

type mockCommentRepository struct {
	createFn     func(ctx context.Context, postID, authorID int64, text string) (*model.Comment, error)
	listByPostFn func(ctx context.Context, postID int64) ([]model.Comment, error)

	createCalls int
}

func (m *mockCommentRepository) Create(ctx context.Context, postID, authorID int64, text string) (*model.Comment, error) {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, postID, authorID, text)
	}
	return &model.Comment{ID: 1, PostID: postID, AuthorID: authorID, Text: text}, nil
}

func (m *mockCommentRepository) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	if m.listByPostFn != nil {
		return m.listByPostFn(ctx, postID)
	}
	return []model.Comment{}, nil
}

// mockFollowRepository keeps real edges so idempotency can be asserted.
type mockFollowRepository struct {
	edges map[[2]int64]bool
	err   error
}

func newMockFollowRepository() *mockFollowRepository {
	return &mockFollowRepository{edges: make(map[[2]int64]bool)}
}

func (m *mockFollowRepository) Create(ctx context.Context, userID, authorID int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	key := [2]int64{userID, authorID}
	if m.edges[key] {
		return false, nil
	}
	m.edges[key] = true
	return true, nil
}

func (m *mockFollowRepository) Delete(ctx context.Context, userID, authorID int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	key := [2]int64{userID, authorID}
	if !m.edges[key] {
		return false, nil
	}
	delete(m.edges, key)
	return true, nil
}

func (m *mockFollowRepository) Exists(ctx context.Context, userID, authorID int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.edges[[2]int64{userID, authorID}], nil
}

type mockImageUploader struct {
	uploadFn func(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*model.UploadResult, error)
	calls    int
}

func (m *mockImageUploader) UploadPostImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*model.UploadResult, error) {
	m.calls++
	if m.uploadFn != nil {
		return m.uploadFn(ctx, file, header)
	}
	return &model.UploadResult{URL: "https://media.example.com/posts/a.jpg", Key: "posts/a.jpg"}, nil
}

func usersByName(users ...*model.User) *mockUserRepository {
	return &mockUserRepository{
		getByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			for _, u := range users {
				if u.Username == username {
					return u, nil
				}
			}
			return nil, model.ErrUserNotFound
		},
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			for _, u := range users {
				if u.ID == id {
					return u, nil
				}
			}
			return nil, model.ErrUserNotFound
		},
	}
}

func int64Ptr(v int64) *int64 { return &v }
