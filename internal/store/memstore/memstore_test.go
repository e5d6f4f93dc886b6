package memstore

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatube/yatube/internal/models"
	"github.com/yatube/yatube/internal/store"
)

func mustUser(t *testing.T, s *Store, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username}
	require.NoError(t, s.Users().Create(context.Background(), user))
	return user
}

func TestUsersAndGroups(t *testing.T) {
	s := New()
	ctx := context.Background()

	alice := mustUser(t, s, "alice")
	assert.NotZero(t, alice.ID)
	assert.False(t, alice.CreatedAt.IsZero())
	assert.ErrorIs(t, s.Users().Create(ctx, &models.User{Username: "alice"}), store.ErrDuplicate)

	got, err := s.Users().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, alice.ID, got.ID)

	got, err = s.Users().GetByID(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Groups().Create(ctx, &models.Group{Title: "Zebras", Slug: "zebras"}))
	require.NoError(t, s.Groups().Create(ctx, &models.Group{Title: "Apples", Slug: "apples"}))
	assert.ErrorIs(t, s.Groups().Create(ctx, &models.Group{Title: "Dup", Slug: "zebras"}), store.ErrDuplicate)

	groups, err := s.Groups().List(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Apples", groups[0].Title)
	assert.Equal(t, "Zebras", groups[1].Title)

	g, err := s.Groups().GetBySlug(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, g)
}

func TestPostListing(t *testing.T) {
	s := New()
	ctx := context.Background()

	alice := mustUser(t, s, "alice")
	bob := mustUser(t, s, "bob")
	group := &models.Group{Title: "G", Slug: "g"}
	require.NoError(t, s.Groups().Create(ctx, group))

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		post := &models.Post{Text: fmt.Sprintf("a%d", i), AuthorID: alice.ID, PubDate: base.Add(time.Duration(i) * time.Hour)}
		if i < 2 {
			post.GroupID = &group.ID
		}
		require.NoError(t, s.Posts().Create(ctx, post))
	}
	// Same timestamp as a3: the higher id sorts first.
	require.NoError(t, s.Posts().Create(ctx, &models.Post{Text: "b0", AuthorID: bob.ID, PubDate: base.Add(3 * time.Hour)}))

	posts, err := s.Posts().List(ctx, store.PostFilter{}, 0, 3)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, []string{"b0", "a3", "a2"}, []string{posts[0].Text, posts[1].Text, posts[2].Text})
	assert.Equal(t, "bob", posts[0].Author.Username)

	posts, err = s.Posts().List(ctx, store.PostFilter{}, 10, 3)
	require.NoError(t, err)
	assert.Empty(t, posts)

	posts, err = s.Posts().List(ctx, store.PostFilter{GroupID: group.ID}, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.NotNil(t, posts[0].Group)
	assert.Equal(t, "g", posts[0].Group.Slug)

	count, err := s.Posts().Count(ctx, store.PostFilter{AuthorID: bob.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = s.Posts().Count(ctx, store.PostFilter{FollowerID: bob.ID})
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = s.Follows().Create(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	count, err = s.Posts().Count(ctx, store.PostFilter{FollowerID: bob.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestPostUpdateKeepsRowsDetached(t *testing.T) {
	s := New()
	ctx := context.Background()

	alice := mustUser(t, s, "alice")
	post := &models.Post{Text: "one", AuthorID: alice.ID}
	require.NoError(t, s.Posts().Create(ctx, post))

	got, err := s.Posts().GetByID(ctx, post.ID)
	require.NoError(t, err)
	got.Text = "changed without saving"

	again, err := s.Posts().GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "one", again.Text)

	again.Text = "two"
	require.NoError(t, s.Posts().Update(ctx, again))
	again, err = s.Posts().GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "two", again.Text)
}

func TestComments(t *testing.T) {
	s := New()
	ctx := context.Background()

	alice := mustUser(t, s, "alice")
	post := &models.Post{Text: "p", AuthorID: alice.ID}
	require.NoError(t, s.Posts().Create(ctx, post))

	for _, text := range []string{"first", "second"} {
		require.NoError(t, s.Comments().Create(ctx, &models.Comment{PostID: post.ID, AuthorID: alice.ID, Text: text}))
	}
	require.NoError(t, s.Comments().Create(ctx, &models.Comment{PostID: post.ID + 100, AuthorID: alice.ID, Text: "elsewhere"}))

	comments, err := s.Comments().ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, "alice", comments[0].Author.Username)
	assert.False(t, comments[1].Created.IsZero())
}

func TestFollowsConcurrentCreate(t *testing.T) {
	s := New()
	ctx := context.Background()

	alice := mustUser(t, s, "alice")
	bob := mustUser(t, s, "bob")

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.Follows().Create(ctx, alice.ID, bob.ID)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, created)

	followers, err := s.Follows().CountFollowers(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), followers)

	following, err := s.Follows().CountFollowing(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), following)

	deleted, err := s.Follows().Delete(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	exists, err := s.Follows().Exists(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
