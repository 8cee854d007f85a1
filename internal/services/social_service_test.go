package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/repository/repotest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionToggle(t *testing.T) {
	f := newFixture(t)
	channel := f.register(t, "chan", "c@b.com", "pw")
	viewer := f.register(t, "viewer", "v@b.com", "pw")
	svc := NewSubscriptionService(repotest.NewSubscriptions(f.users), f.users)
	ctx := context.Background()

	_, err := svc.Toggle(ctx, viewer.ID, viewer.ID)
	requireAPIError(t, err, 400)

	_, err = svc.Toggle(ctx, viewer.ID, uuid.New())
	requireAPIError(t, err, 404)

	res, err := svc.Toggle(ctx, viewer.ID, channel.ID)
	require.NoError(t, err)
	assert.True(t, res.Subscribed)

	subscribers, err := svc.Subscribers(ctx, channel.ID)
	require.NoError(t, err)
	require.Len(t, subscribers, 1)
	assert.Equal(t, "viewer", subscribers[0].Username)

	channels, err := svc.SubscribedChannels(ctx, viewer.ID)
	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.Equal(t, channel.ID, channels[0].ID)

	res, err = svc.Toggle(ctx, viewer.ID, channel.ID)
	require.NoError(t, err)
	assert.False(t, res.Subscribed)

	subscribers, err = svc.Subscribers(ctx, channel.ID)
	require.NoError(t, err)
	assert.Empty(t, subscribers)
}

func newCommentService(f *fixture) (*CommentService, *repotest.Comments, *repotest.Videos) {
	comments := &repotest.Comments{}
	videos := repotest.NewVideos(f.users)
	return NewCommentService(comments, videos), comments, videos
}

func TestCommentAdd(t *testing.T) {
	f := newFixture(t)
	owner := f.register(t, "owner", "o@b.com", "pw")
	video := models.Video{ID: uuid.New(), OwnerID: owner.ID}
	f.users.AddVideo(video)
	svc, comments, videos := newCommentService(f)
	ctx := context.Background()

	_, err := svc.Add(ctx, video.ID, owner.ID, "   ")
	requireAPIError(t, err, 400)

	_, err = svc.Add(ctx, uuid.New(), owner.ID, "hello")
	requireAPIError(t, err, 404)

	resp, err := svc.Add(ctx, video.ID, owner.ID, " hello ")
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Content)
	require.NotNil(t, resp.VideoID)
	assert.Equal(t, video.ID, *resp.VideoID)
	assert.Len(t, comments.All(), 1)

	videos.Err = errors.New("db down")
	_, err = svc.Add(ctx, video.ID, owner.ID, "again")
	requireAPIError(t, err, 500)
}

func TestCommentList_Paginates(t *testing.T) {
	f := newFixture(t)
	owner := f.register(t, "owner", "o@b.com", "pw")
	video := models.Video{ID: uuid.New(), OwnerID: owner.ID}
	f.users.AddVideo(video)
	svc, _, _ := newCommentService(f)
	ctx := context.Background()

	for _, c := range []string{"first", "second", "third"} {
		_, err := svc.Add(ctx, video.ID, owner.ID, c)
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, video.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalDocs)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Docs, 2)
	assert.Equal(t, "third", page.Docs[0].Content)

	page, err = svc.List(ctx, video.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, page.Docs, 1)
	assert.Equal(t, "first", page.Docs[0].Content)

	page, err = svc.List(ctx, video.ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, defaultCommentPageSize, page.Limit)

	page, err = svc.List(ctx, uuid.New(), 1, 10)
	require.NoError(t, err)
	assert.NotNil(t, page.Docs)
	assert.Empty(t, page.Docs)
}

func TestCommentUpdateAndDelete_RequireOwnership(t *testing.T) {
	f := newFixture(t)
	owner := f.register(t, "owner", "o@b.com", "pw")
	stranger := f.register(t, "stranger", "s@b.com", "pw")
	video := models.Video{ID: uuid.New(), OwnerID: owner.ID}
	f.users.AddVideo(video)
	svc, comments, _ := newCommentService(f)
	ctx := context.Background()

	c, err := svc.Add(ctx, video.ID, owner.ID, "hello")
	require.NoError(t, err)

	_, err = svc.Update(ctx, c.ID, stranger.ID, "hijack")
	requireAPIError(t, err, 404)
	_, err = svc.Update(ctx, c.ID, owner.ID, "")
	requireAPIError(t, err, 400)

	updated, err := svc.Update(ctx, c.ID, owner.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	requireAPIError(t, svc.Delete(ctx, c.ID, stranger.ID), 404)
	require.NoError(t, svc.Delete(ctx, c.ID, owner.ID))
	assert.Empty(t, comments.All())
	requireAPIError(t, svc.Delete(ctx, c.ID, owner.ID), 404)
}
