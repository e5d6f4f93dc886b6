// Package memstore is an in-memory store.Store used by tests and by the
// "memory" database driver.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yatube/yatube/internal/models"
	"github.com/yatube/yatube/internal/store"
)

type followKey struct {
	userID   int64
	authorID int64
}

// Store keeps every table in maps guarded by a single mutex
type Store struct {
	mu sync.RWMutex

	users    map[int64]models.User
	groups   map[int64]models.Group
	posts    map[int64]models.Post
	comments map[int64]models.Comment
	follows  map[followKey]models.Follow

	nextID int64
	now    func() time.Time
}

var _ store.Store = (*Store)(nil)

// New creates an empty store
func New() *Store {
	return &Store{
		users:    make(map[int64]models.User),
		groups:   make(map[int64]models.Group),
		posts:    make(map[int64]models.Post),
		comments: make(map[int64]models.Comment),
		follows:  make(map[followKey]models.Follow),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Users() store.UserStore       { return userStore{s} }
func (s *Store) Groups() store.GroupStore     { return groupStore{s} }
func (s *Store) Posts() store.PostStore       { return postStore{s} }
func (s *Store) Comments() store.CommentStore { return commentStore{s} }
func (s *Store) Follows() store.FollowStore   { return followStore{s} }

// id must be called with mu held for writing
func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) userRef(id int64) *models.User {
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	return &u
}

func (s *Store) groupRef(id *int64) *models.Group {
	if id == nil {
		return nil
	}
	g, ok := s.groups[*id]
	if !ok {
		return nil
	}
	return &g
}

// userStore

type userStore struct{ s *Store }

func (r userStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.userRef(id), nil
}

func (r userStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r userStore) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return store.ErrDuplicate
		}
	}
	user.ID = r.s.id()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.s.now()
	}
	r.s.users[user.ID] = *user
	return nil
}

// groupStore

type groupStore struct{ s *Store }

func (r groupStore) GetByID(_ context.Context, id int64) (*models.Group, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.groupRef(&id), nil
}

func (r groupStore) GetBySlug(_ context.Context, slug string) (*models.Group, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, g := range r.s.groups {
		if g.Slug == slug {
			g := g
			return &g, nil
		}
	}
	return nil, nil
}

func (r groupStore) List(_ context.Context) ([]*models.Group, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	groups := make([]*models.Group, 0, len(r.s.groups))
	for _, g := range r.s.groups {
		g := g
		groups = append(groups, &g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Title < groups[j].Title })
	return groups, nil
}

func (r groupStore) Create(_ context.Context, group *models.Group) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, g := range r.s.groups {
		if g.Slug == group.Slug {
			return store.ErrDuplicate
		}
	}
	group.ID = r.s.id()
	r.s.groups[group.ID] = *group
	return nil
}

// postStore

type postStore struct{ s *Store }

func (r postStore) withRelations(p models.Post) *models.Post {
	p.Author = r.s.userRef(p.AuthorID)
	p.Group = r.s.groupRef(p.GroupID)
	return &p
}

func (r postStore) GetByID(_ context.Context, id int64) (*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, nil
	}
	return r.withRelations(p), nil
}

// match must be called with mu held
func (r postStore) match(p models.Post, f store.PostFilter) bool {
	if f.GroupID != 0 && !p.InGroup(f.GroupID) {
		return false
	}
	if f.AuthorID != 0 && p.AuthorID != f.AuthorID {
		return false
	}
	if f.FollowerID != 0 {
		if _, ok := r.s.follows[followKey{f.FollowerID, p.AuthorID}]; !ok {
			return false
		}
	}
	return true
}

func (r postStore) List(_ context.Context, f store.PostFilter, offset, limit int) ([]*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := make([]models.Post, 0)
	for _, p := range r.s.posts {
		if r.match(p, f) {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].PubDate.Equal(matched[j].PubDate) {
			return matched[i].PubDate.After(matched[j].PubDate)
		}
		return matched[i].ID > matched[j].ID
	})

	if offset > len(matched) {
		offset = len(matched)
	}
	end := len(matched)
	if limit >= 0 && offset+limit < end {
		end = offset + limit
	}

	posts := make([]*models.Post, 0, end-offset)
	for _, p := range matched[offset:end] {
		posts = append(posts, r.withRelations(p))
	}
	return posts, nil
}

func (r postStore) Count(_ context.Context, f store.PostFilter) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, p := range r.s.posts {
		if r.match(p, f) {
			n++
		}
	}
	return n, nil
}

func (r postStore) Create(_ context.Context, post *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	post.ID = r.s.id()
	if post.PubDate.IsZero() {
		post.PubDate = r.s.now()
	}
	row := *post
	row.Author, row.Group = nil, nil
	r.s.posts[post.ID] = row
	return nil
}

func (r postStore) Update(_ context.Context, post *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[post.ID]; !ok {
		return nil
	}
	row := *post
	row.Author, row.Group = nil, nil
	r.s.posts[post.ID] = row
	return nil
}

// commentStore

type commentStore struct{ s *Store }

func (r commentStore) ListByPost(_ context.Context, postID int64) ([]*models.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	comments := make([]*models.Comment, 0)
	for _, c := range r.s.comments {
		if c.PostID != postID {
			continue
		}
		c := c
		c.Author = r.s.userRef(c.AuthorID)
		comments = append(comments, &c)
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

func (r commentStore) Create(_ context.Context, comment *models.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	comment.ID = r.s.id()
	if comment.Created.IsZero() {
		comment.Created = r.s.now()
	}
	row := *comment
	row.Author, row.Post = nil, nil
	r.s.comments[comment.ID] = row
	return nil
}

// followStore

type followStore struct{ s *Store }

func (r followStore) Exists(_ context.Context, userID, authorID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.follows[followKey{userID, authorID}]
	return ok, nil
}

func (r followStore) Create(_ context.Context, userID, authorID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := followKey{userID, authorID}
	if _, ok := r.s.follows[key]; ok {
		return false, nil
	}
	r.s.follows[key] = models.Follow{
		ID:        r.s.id(),
		UserID:    userID,
		AuthorID:  authorID,
		CreatedAt: r.s.now(),
	}
	return true, nil
}

func (r followStore) Delete(_ context.Context, userID, authorID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := followKey{userID, authorID}
	if _, ok := r.s.follows[key]; !ok {
		return false, nil
	}
	delete(r.s.follows, key)
	return true, nil
}

func (r followStore) CountFollowers(_ context.Context, authorID int64) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for key := range r.s.follows {
		if key.authorID == authorID {
			n++
		}
	}
	return n, nil
}

func (r followStore) CountFollowing(_ context.Context, userID int64) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for key := range r.s.follows {
		if key.userID == userID {
			n++
		}
	}
	return n, nil
}
