package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) store.SnapshotStore {
	t.Helper()
	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo, err := NewSnapshotUserRepository(ctx, newStore(t))
	require.NoError(t, err)

	require.NoError(t, repo.CreateUser(ctx, &models.User{ID: "u1", Name: "Ann", Email: "ann@example.com"}))
	err = repo.CreateUser(ctx, &models.User{ID: "u2", Name: "Ann B", Email: "ANN@example.com"})
	assert.ErrorIs(t, err, models.ErrConflict)

	u, err := repo.GetUserByEmail("Ann@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
}

func TestAddFriendsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo, err := NewSnapshotUserRepository(ctx, newStore(t))
	require.NoError(t, err)
	require.NoError(t, repo.CreateUser(ctx, &models.User{ID: "a", Email: "a@x.io"}))
	require.NoError(t, repo.CreateUser(ctx, &models.User{ID: "b", Email: "b@x.io"}))

	require.NoError(t, repo.AddFriends(ctx, "a", "b"))
	require.NoError(t, repo.AddFriends(ctx, "b", "a"))

	a, err := repo.GetUserByID("a")
	require.NoError(t, err)
	b, err := repo.GetUserByID("b")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, a.Friends)
	assert.Equal(t, []string{"a"}, b.Friends)

	assert.ErrorIs(t, repo.AddFriends(ctx, "a", "ghost"), models.ErrNotFound)
}

func TestSearchUsers(t *testing.T) {
	ctx := context.Background()
	repo, err := NewSnapshotUserRepository(ctx, newStore(t))
	require.NoError(t, err)
	require.NoError(t, repo.CreateUser(ctx, &models.User{ID: "1", Name: "Maria Lopez", Email: "maria@example.com"}))
	require.NoError(t, repo.CreateUser(ctx, &models.User{ID: "2", Name: "Tom", Email: "tom@MARINA.org"}))
	require.NoError(t, repo.CreateUser(ctx, &models.User{ID: "3", Name: "Zed", Email: "zed@example.com"}))

	users, err := repo.SearchUsers("MAR", "")
	require.NoError(t, err)
	require.Len(t, users, 2)

	users, err = repo.SearchUsers("mar", "1")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "2", users[0].ID)
}

func TestSendFriendRequestConflictsInEitherDirection(t *testing.T) {
	ctx := context.Background()
	repo, err := NewSnapshotFriendshipRepository(ctx, newStore(t))
	require.NoError(t, err)

	require.NoError(t, repo.SendFriendRequest(ctx, &models.FriendRequest{ID: "e1", SenderID: "a", ReceiverID: "b"}))
	assert.ErrorIs(t, repo.SendFriendRequest(ctx, &models.FriendRequest{ID: "e2", SenderID: "a", ReceiverID: "b"}), models.ErrConflict)
	assert.ErrorIs(t, repo.SendFriendRequest(ctx, &models.FriendRequest{ID: "e3", SenderID: "b", ReceiverID: "a"}), models.ErrConflict)

	_, _, err = repo.RespondFriendRequest(ctx, "e1", "b", models.FriendshipStatusRejected)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.SendFriendRequest(ctx, &models.FriendRequest{ID: "e4", SenderID: "b", ReceiverID: "a"}), models.ErrConflict,
		"a rejected edge still blocks new requests")

	edge, changed, err := repo.RespondFriendRequest(ctx, "e1", "b", models.FriendshipStatusRejected)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, models.FriendshipStatusRejected, edge.Status)

	_, _, err = repo.RespondFriendRequest(ctx, "e2", "b", models.FriendshipStatusAccepted)
	assert.ErrorIs(t, err, models.ErrNotFound, "conflicting requests are never stored")
}

func TestRespondFriendRequest(t *testing.T) {
	ctx := context.Background()
	repo, err := NewSnapshotFriendshipRepository(ctx, newStore(t))
	require.NoError(t, err)
	require.NoError(t, repo.SendFriendRequest(ctx, &models.FriendRequest{ID: "e1", SenderID: "a", ReceiverID: "b"}))

	_, _, err = repo.RespondFriendRequest(ctx, "e1", "a", models.FriendshipStatusAccepted)
	assert.ErrorIs(t, err, models.ErrNotFound, "only the receiver may respond")
	_, _, err = repo.RespondFriendRequest(ctx, "missing", "b", models.FriendshipStatusAccepted)
	assert.ErrorIs(t, err, models.ErrNotFound)

	edge, changed, err := repo.RespondFriendRequest(ctx, "e1", "b", models.FriendshipStatusAccepted)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, models.FriendshipStatusAccepted, edge.Status)

	edge, changed, err = repo.RespondFriendRequest(ctx, "e1", "b", models.FriendshipStatusAccepted)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, models.FriendshipStatusAccepted, edge.Status)

	_, _, err = repo.RespondFriendRequest(ctx, "e1", "b", models.FriendshipStatusRejected)
	assert.ErrorIs(t, err, models.ErrConflict)

	ok, err := repo.AreFriends("b", "a")
	require.NoError(t, err)
	assert.True(t, ok)

	ids, err := repo.GetUserFriendIDs("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids)
}

func TestToggleLikeIsAnInvolution(t *testing.T) {
	ctx := context.Background()
	repo, err := NewSnapshotPostRepository(ctx, newStore(t))
	require.NoError(t, err)
	require.NoError(t, repo.CreatePost(ctx, &models.Post{ID: "p1", UserID: "a", Likes: []string{"x", "y"}}))

	post, liked, err := repo.ToggleLike(ctx, "p1", "b")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, []string{"x", "y", "b"}, post.Likes)

	post, liked, err = repo.ToggleLike(ctx, "p1", "b")
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, []string{"x", "y"}, post.Likes)

	_, _, err = repo.ToggleLike(ctx, "nope", "b")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestPostsAreKeptNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo, err := NewSnapshotPostRepository(ctx, newStore(t))
	require.NoError(t, err)
	for _, id := range []string{"p1", "p2", "p3"} {
		require.NoError(t, repo.CreatePost(ctx, &models.Post{ID: id, UserID: "a"}))
	}
	require.NoError(t, repo.CreatePost(ctx, &models.Post{ID: "other", UserID: "z"}))

	posts, err := repo.GetPostsByUserIDs([]string{"a"})
	require.NoError(t, err)
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"p3", "p2", "p1"}, ids)
}

func TestReadThreadMarksOnlyIncoming(t *testing.T) {
	ctx := context.Background()
	repo, err := NewSnapshotMessageRepository(ctx, newStore(t))
	require.NoError(t, err)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	msgs := []models.Message{
		{ID: "3", SenderID: "a", ReceiverID: "b", CreatedAt: base.Add(3 * time.Second)},
		{ID: "1", SenderID: "a", ReceiverID: "b", CreatedAt: base.Add(1 * time.Second)},
		{ID: "2", SenderID: "b", ReceiverID: "a", CreatedAt: base.Add(2 * time.Second)},
		{ID: "x", SenderID: "a", ReceiverID: "c", CreatedAt: base},
	}
	for i := range msgs {
		require.NoError(t, repo.CreateMessage(ctx, &msgs[i]))
	}

	thread, err := repo.ReadThread(ctx, "b", "a")
	require.NoError(t, err)
	require.Len(t, thread, 3)
	assert.Equal(t, "1", thread[0].ID)
	assert.Equal(t, "2", thread[1].ID)
	assert.Equal(t, "3", thread[2].ID)
	assert.True(t, thread[0].Read)
	assert.False(t, thread[1].Read, "b's own message stays unread until a opens the thread")
	assert.True(t, thread[2].Read)

	all, err := repo.GetMessagesForUser("c")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].Read)
}

func TestNotificationsReadState(t *testing.T) {
	ctx := context.Background()
	repo, err := NewSnapshotNotificationRepository(ctx, newStore(t))
	require.NoError(t, err)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.CreateNotifications(ctx, []models.Notification{
		{ID: "n1", RecipientID: "a", CreatedAt: base},
		{ID: "n2", RecipientID: "a", CreatedAt: base.Add(time.Minute)},
		{ID: "n3", RecipientID: "b", CreatedAt: base},
	}))

	list, err := repo.GetByRecipientID("a")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "n2", list[0].ID)

	require.NoError(t, repo.MarkAsRead(ctx, "n3", "a"), "foreign notification is a no-op")
	require.NoError(t, repo.MarkAsRead(ctx, "missing", "a"))
	count, err := repo.GetUnreadCount("b")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, repo.MarkAsRead(ctx, "n1", "a"))
	count, err = repo.GetUnreadCount("a")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, repo.MarkAllAsRead(ctx, "a"))
	count, err = repo.GetUnreadCount("a")
	require.NoError(t, err)
	assert.Zero(t, count)
}
