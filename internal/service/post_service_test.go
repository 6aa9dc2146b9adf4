package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/miniblog/internal/form"
	"github.com/d60-Lab/miniblog/internal/model"
	"github.com/d60-Lab/miniblog/internal/repository"
)

type fixture struct {
	db     *gorm.DB
	posts  repository.PostRepository
	groups repository.GroupRepository
	users  repository.UserRepository
	svc    PostService
}

func setup(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Group{}, &model.Post{}))

	f := &fixture{
		db:     db,
		posts:  repository.NewPostRepository(db),
		groups: repository.NewGroupRepository(db),
		users:  repository.NewUserRepository(db),
	}
	f.svc = NewPostService(f.posts, f.groups, f.users)
	return f
}

func (f *fixture) user(t *testing.T, username string) *model.User {
	t.Helper()
	u := &model.User{ID: uuid.New().String(), Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) group(t *testing.T, slug string) *model.Group {
	t.Helper()
	g := &model.Group{Title: slug, Slug: slug}
	require.NoError(t, f.groups.Create(context.Background(), g))
	return g
}

func (f *fixture) postCount(t *testing.T) int64 {
	t.Helper()
	var cnt int64
	require.NoError(t, f.db.Model(&model.Post{}).Count(&cnt).Error)
	return cnt
}

func TestCreateAppearsFirstInFeed(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice")

	older := &model.Post{Text: "older", AuthorID: alice.ID, PubDate: time.Now().Add(-time.Hour)}
	require.NoError(t, f.posts.Create(ctx, older))

	post, err := f.svc.Create(ctx, alice, &form.PostInput{Text: "just text"}, "")
	require.NoError(t, err)
	require.Equal(t, alice.ID, post.AuthorID)
	require.Nil(t, post.GroupID)
	require.Empty(t, post.Image)
	require.False(t, post.PubDate.IsZero())

	page, err := f.svc.ListAll(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, post.ID, page.Items[0].ID)
	require.EqualValues(t, 2, f.postCount(t))
}

func TestEditMovesBetweenGroupListings(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	g1 := f.group(t, "g1")
	g2 := f.group(t, "g2")

	post, err := f.svc.Create(ctx, alice, &form.PostInput{Text: "movable", GroupID: &g1.ID}, "")
	require.NoError(t, err)
	origDate := post.PubDate

	edited, err := f.svc.Edit(ctx, alice, post.ID, &form.PostInput{Text: "movable", GroupID: &g2.ID}, "")
	require.NoError(t, err)
	require.Equal(t, alice.ID, edited.AuthorID)
	require.WithinDuration(t, origDate, edited.PubDate, time.Second)

	_, pg1, err := f.svc.ListByGroup(ctx, "g1", "1")
	require.NoError(t, err)
	require.Empty(t, pg1.Items)

	_, pg2, err := f.svc.ListByGroup(ctx, "g2", "1")
	require.NoError(t, err)
	require.Len(t, pg2.Items, 1)
	require.Equal(t, post.ID, pg2.Items[0].ID)
}

func TestEditByNonAuthorChangesNothing(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	mallory := f.user(t, "mallory")

	post, err := f.svc.Create(ctx, alice, &form.PostInput{Text: "untouchable"}, "")
	require.NoError(t, err)

	_, err = f.svc.Edit(ctx, mallory, post.ID, &form.PostInput{Text: "hijacked"}, "")
	require.ErrorIs(t, err, ErrNotAuthor)

	_, err = f.svc.Edit(ctx, nil, post.ID, &form.PostInput{Text: "hijacked"}, "")
	require.ErrorIs(t, err, ErrNotAuthor)

	got, _, err := f.svc.Detail(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, "untouchable", got.Text)
}

func TestEditKeepsImageWhenNotReplaced(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice")

	post, err := f.svc.Create(ctx, alice, &form.PostInput{Text: "pic"}, "posts/cat.png")
	require.NoError(t, err)

	edited, err := f.svc.Edit(ctx, alice, post.ID, &form.PostInput{Text: "pic edited"}, "")
	require.NoError(t, err)
	require.Equal(t, "posts/cat.png", edited.Image)

	edited, err = f.svc.Edit(ctx, alice, post.ID, &form.PostInput{Text: "pic edited"}, "posts/dog.png")
	require.NoError(t, err)
	require.Equal(t, "posts/dog.png", edited.Image)
}

func TestProfilePaginationThirteenPosts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 13; i++ {
		p := &model.Post{Text: fmt.Sprintf("p%d", i), AuthorID: alice.ID, PubDate: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, f.posts.Create(ctx, p))
	}

	_, page1, err := f.svc.ListByAuthor(ctx, "alice", "1")
	require.NoError(t, err)
	require.Len(t, page1.Items, 10)
	require.EqualValues(t, 13, page1.TotalItems)
	require.Equal(t, 2, page1.TotalPages)

	_, page2, err := f.svc.ListByAuthor(ctx, "alice", "2")
	require.NoError(t, err)
	require.Len(t, page2.Items, 3)

	_, page3, err := f.svc.ListByAuthor(ctx, "alice", "3")
	require.NoError(t, err)
	require.Equal(t, page2.Number, page3.Number)
	require.Len(t, page3.Items, 3)
	require.Equal(t, page2.Items[0].ID, page3.Items[0].ID)
}

func TestLookupsReturnTypedNotFound(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, _, err := f.svc.ListByGroup(ctx, "nope", "1")
	require.ErrorIs(t, err, ErrGroupNotFound)

	_, _, err = f.svc.ListByAuthor(ctx, "ghost", "1")
	require.ErrorIs(t, err, ErrUserNotFound)

	_, _, err = f.svc.Detail(ctx, 424242)
	require.ErrorIs(t, err, ErrPostNotFound)

	_, err = f.svc.Edit(ctx, &model.User{ID: "u"}, 424242, &form.PostInput{Text: "x"}, "")
	require.ErrorIs(t, err, ErrPostNotFound)
}

func TestDetailIncludesAuthorPostCount(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice")

	var last *model.Post
	for i := 0; i < 3; i++ {
		p, err := f.svc.Create(ctx, alice, &form.PostInput{Text: fmt.Sprintf("n%d", i)}, "")
		require.NoError(t, err)
		last = p
	}

	_, count, err := f.svc.Detail(ctx, last.ID)
	require.NoError(t, err)
	require.EqualValues(t, 3, count)
}
