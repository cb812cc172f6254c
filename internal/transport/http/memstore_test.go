package http

import (
	"context"
	"sort"
	"sync"
	"time"

	"yatube/internal/model"
)

// memStore is an in-memory stand-in for the PostgreSQL repositories with
// the same ordering and uniqueness rules.
type memStore struct {
	mu       sync.Mutex
	clock    time.Time
	users    []*model.User
	groups   []*model.Group
	posts    []*model.Post
	comments []*model.Comment
	follows  map[[2]int64]bool
}

func newMemStore() *memStore {
	return &memStore{
		clock:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		follows: make(map[[2]int64]bool),
	}
}

func (s *memStore) repos() Repositories {
	return Repositories{
		Users:    memUsers{s},
		Groups:   memGroups{s},
		Posts:    memPosts{s},
		Comments: memComments{s},
		Follows:  memFollows{s},
	}
}

// tick returns strictly increasing timestamps.
func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Minute)
	return s.clock
}

func (s *memStore) userByID(id int64) *model.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (s *memStore) groupByID(id int64) *model.Group {
	for _, g := range s.groups {
		if g.ID == id {
			return g
		}
	}
	return nil
}

func (s *memStore) postByID(id int64) *model.Post {
	for _, p := range s.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// joined fills the author and group columns the SQL query joins in.
func (s *memStore) joined(p *model.Post) model.Post {
	out := *p
	if u := s.userByID(p.AuthorID); u != nil {
		out.AuthorUsername, out.AuthorFirst, out.AuthorLast = u.Username, u.FirstName, u.LastName
	}
	if p.GroupID != nil {
		if g := s.groupByID(*p.GroupID); g != nil {
			slug, title := g.Slug, g.Title
			out.GroupSlug, out.GroupTitle = &slug, &title
		}
	}
	return out
}

func (s *memStore) matches(p *model.Post, f model.PostFilter) bool {
	if f.GroupID != nil && (p.GroupID == nil || *p.GroupID != *f.GroupID) {
		return false
	}
	if f.AuthorID != nil && p.AuthorID != *f.AuthorID {
		return false
	}
	if f.FollowerID != nil && !s.follows[[2]int64{*f.FollowerID, p.AuthorID}] {
		return false
	}
	return true
}

// seedUser and seedGroup bypass the services for test fixtures.
func (s *memStore) seedUser(username string) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &model.User{ID: int64(len(s.users) + 1), Username: username, PasswordHashed: "-", CreatedAt: s.tick()}
	s.users = append(s.users, u)
	return u
}

func (s *memStore) seedGroup(slug, title string) *model.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := &model.Group{ID: int64(len(s.groups) + 1), Slug: slug, Title: title}
	s.groups = append(s.groups, g)
	return g
}

func (s *memStore) seedPost(author *model.User, text string, group *model.Group) *model.Post {
	in := model.PostInput{Text: text}
	if group != nil {
		in.GroupID = &group.ID
	}
	p, _ := memPosts{s}.Create(context.Background(), author.ID, in)
	return p
}

func (s *memStore) post(id int64) model.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.postByID(id)
}

func (s *memStore) commentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.comments)
}

func (s *memStore) followCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.follows)
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(ctx context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return model.ErrUsernameExists
		}
	}
	user.ID = int64(len(r.s.users) + 1)
	user.CreatedAt = r.s.tick()
	stored := *user
	r.s.users = append(r.s.users, &stored)
	return nil
}

func (r memUsers) GetByID(ctx context.Context, id int64) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u := r.s.userByID(id); u != nil {
		out := *u
		return &out, nil
	}
	return nil, model.ErrUserNotFound
}

func (r memUsers) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (r memUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	return err == nil, nil
}

func (r memUsers) Stats(ctx context.Context, userID int64) (model.AuthorStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var stats model.AuthorStats
	for _, p := range r.s.posts {
		if p.AuthorID == userID {
			stats.PostsCount++
		}
	}
	for edge := range r.s.follows {
		if edge[1] == userID {
			stats.FollowersCount++
		}
		if edge[0] == userID {
			stats.FollowingCount++
		}
	}
	return stats, nil
}

type memGroups struct{ s *memStore }

func (r memGroups) Create(ctx context.Context, group *model.Group) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	group.ID = int64(len(r.s.groups) + 1)
	stored := *group
	r.s.groups = append(r.s.groups, &stored)
	return nil
}

func (r memGroups) GetByID(ctx context.Context, id int64) (*model.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if g := r.s.groupByID(id); g != nil {
		out := *g
		return &out, nil
	}
	return nil, model.ErrGroupNotFound
}

func (r memGroups) GetBySlug(ctx context.Context, slug string) (*model.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, g := range r.s.groups {
		if g.Slug == slug {
			out := *g
			return &out, nil
		}
	}
	return nil, model.ErrGroupNotFound
}

func (r memGroups) List(ctx context.Context) ([]model.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	groups := make([]model.Group, 0, len(r.s.groups))
	for _, g := range r.s.groups {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Title < groups[j].Title })
	return groups, nil
}

type memPosts struct{ s *memStore }

func (r memPosts) Create(ctx context.Context, authorID int64, in model.PostInput) (*model.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p := &model.Post{
		ID:        int64(len(r.s.posts) + 1),
		AuthorID:  authorID,
		GroupID:   in.GroupID,
		Text:      in.Text,
		ImageURL:  in.ImageURL,
		ImageKey:  in.ImageKey,
		CreatedAt: r.s.tick(),
	}
	r.s.posts = append(r.s.posts, p)
	out := r.s.joined(p)
	return &out, nil
}

func (r memPosts) Update(ctx context.Context, postID int64, in model.PostInput) (*model.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p := r.s.postByID(postID)
	if p == nil {
		return nil, model.ErrPostNotFound
	}
	p.Text, p.GroupID = in.Text, in.GroupID
	if in.ImageURL != nil {
		p.ImageURL, p.ImageKey = in.ImageURL, in.ImageKey
	}
	out := r.s.joined(p)
	return &out, nil
}

func (r memPosts) GetByAuthor(ctx context.Context, username string, postID int64) (*model.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p := r.s.postByID(postID)
	if p == nil {
		return nil, model.ErrPostNotFound
	}
	out := r.s.joined(p)
	if out.AuthorUsername != username {
		return nil, model.ErrPostNotFound
	}
	return &out, nil
}

func (r memPosts) Count(ctx context.Context, filter model.PostFilter) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, p := range r.s.posts {
		if r.s.matches(p, filter) {
			n++
		}
	}
	return n, nil
}

func (r memPosts) List(ctx context.Context, filter model.PostFilter, limit, offset int) ([]model.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var posts []model.Post
	for _, p := range r.s.posts {
		if r.s.matches(p, filter) {
			posts = append(posts, r.s.joined(p))
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
	if offset >= len(posts) {
		return []model.Post{}, nil
	}
	return posts[offset:min(offset+limit, len(posts))], nil
}

type memComments struct{ s *memStore }

func (r memComments) Create(ctx context.Context, postID, authorID int64, text string) (*model.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := &model.Comment{
		ID:        int64(len(r.s.comments) + 1),
		PostID:    postID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: r.s.tick(),
	}
	if u := r.s.userByID(authorID); u != nil {
		c.AuthorUsername = u.Username
	}
	r.s.comments = append(r.s.comments, c)
	out := *c
	return &out, nil
}

func (r memComments) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	comments := []model.Comment{}
	for _, c := range r.s.comments {
		if c.PostID == postID {
			comments = append(comments, *c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}

type memFollows struct{ s *memStore }

func (r memFollows) Create(ctx context.Context, userID, authorID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := [2]int64{userID, authorID}
	if r.s.follows[key] {
		return false, nil
	}
	r.s.follows[key] = true
	return true, nil
}

func (r memFollows) Delete(ctx context.Context, userID, authorID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := [2]int64{userID, authorID}
	if !r.s.follows[key] {
		return false, nil
	}
	delete(r.s.follows, key)
	return true, nil
}

func (r memFollows) Exists(ctx context.Context, userID, authorID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.follows[[2]int64{userID, authorID}], nil
}
