// Package repotest provides in-memory repositories and a recording media
// store for tests of the layers above the database.
package repotest

import (
	"context"
	"mime/multipart"
	"sort"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/media"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/repository"
	"github.com/google/uuid"
)

var (
	_ repository.UserRepository         = (*Users)(nil)
	_ repository.SubscriptionRepository = (*Subscriptions)(nil)
	_ repository.VideoRepository        = (*Videos)(nil)
	_ repository.CommentRepository      = (*Comments)(nil)
	_ media.Store                       = (*Media)(nil)
)

// Users is an in-memory repository.UserRepository. Subscriptions and Videos
// share its state.
type Users struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*models.User
	subs    []models.Subscription
	videos  map[uuid.UUID]models.Video
	history map[uuid.UUID][]uuid.UUID

	UpdateErr error
}

func NewUsers() *Users {
	return &Users{
		users:   make(map[uuid.UUID]*models.User),
		videos:  make(map[uuid.UUID]models.Video),
		history: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (f *Users) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

func (f *Users) Get(id uuid.UUID) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil
	}
	cp := *u
	return &cp
}

// AddVideo makes a video known to WatchHistory, AddToWatchHistory and Videos.
func (f *Users) AddVideo(v models.Video) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.videos[v.ID] = v
}

func (f *Users) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *Users) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u := f.Get(id); u != nil {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (f *Users) FindByUsernameOrEmail(_ context.Context, username, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *Users) SetRefreshTokenHash(_ context.Context, id uuid.UUID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.RefreshTokenHash = &hash
	return nil
}

func (f *Users) ReplaceRefreshTokenHash(_ context.Context, id uuid.UUID, oldHash, newHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok || u.RefreshTokenHash == nil || *u.RefreshTokenHash != oldHash {
		return repository.ErrNotFound
	}
	u.RefreshTokenHash = &newHash
	return nil
}

func (f *Users) ClearRefreshToken(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.RefreshTokenHash = nil
	}
	return nil
}

func (f *Users) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Password = hash
	return nil
}

func (f *Users) mutate(id uuid.UUID, fn func(*models.User)) (*models.User, error) {
	f.mu.Lock()
	if f.UpdateErr != nil {
		f.mu.Unlock()
		return nil, f.UpdateErr
	}
	u, ok := f.users[id]
	if !ok {
		f.mu.Unlock()
		return nil, repository.ErrNotFound
	}
	fn(u)
	u.UpdatedAt = time.Now()
	f.mu.Unlock()
	return f.Get(id), nil
}

func (f *Users) UpdateAccount(_ context.Context, id uuid.UUID, fullName, email string) (*models.User, error) {
	return f.mutate(id, func(u *models.User) { u.FullName, u.Email = fullName, email })
}

func (f *Users) UpdateAvatar(_ context.Context, id uuid.UUID, asset models.Asset) (*models.User, error) {
	return f.mutate(id, func(u *models.User) { u.Avatar = asset })
}

func (f *Users) UpdateCoverImage(_ context.Context, id uuid.UUID, asset models.Asset) (*models.User, error) {
	return f.mutate(id, func(u *models.User) { u.CoverImage = asset })
}

func (f *Users) ChannelProfile(_ context.Context, username string, viewerID uuid.UUID) (*dto.ChannelProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username != username {
			continue
		}
		p := &dto.ChannelProfile{
			ID: u.ID, FullName: u.FullName, Username: u.Username, Email: u.Email,
			Avatar: u.Avatar, CoverImage: u.CoverImage,
		}
		for _, s := range f.subs {
			if s.ChannelID == u.ID {
				p.SubscribersCount++
				if s.SubscriberID == viewerID {
					p.IsSubscribed = true
				}
			}
			if s.SubscriberID == u.ID {
				p.ChannelsSubscribedTo++
			}
		}
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (f *Users) WatchHistory(_ context.Context, userID uuid.UUID) ([]models.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Video
	for _, id := range f.history[userID] {
		v := f.videos[id]
		if owner, ok := f.users[v.OwnerID]; ok {
			v.Owner = models.User{ID: owner.ID, FullName: owner.FullName, Username: owner.Username, Avatar: owner.Avatar}
		}
		out = append(out, v)
	}
	return out, nil
}

func (f *Users) AddToWatchHistory(_ context.Context, userID, videoID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.videos[videoID]; !ok {
		return repository.ErrNotFound
	}
	list := f.history[userID][:0:0]
	for _, id := range f.history[userID] {
		if id != videoID {
			list = append(list, id)
		}
	}
	f.history[userID] = append(list, videoID)
	return nil
}

// Media is a media.Store that records uploads and deletions.
type Media struct {
	mu        sync.Mutex
	Uploaded  []string
	Deleted   []string
	UploadErr error
	DeleteErr error
}

func (m *Media) Upload(_ context.Context, file *multipart.FileHeader, folder string) (models.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UploadErr != nil {
		return models.Asset{}, m.UploadErr
	}
	key := folder + "/" + uuid.NewString() + "-" + file.Filename
	m.Uploaded = append(m.Uploaded, key)
	return models.Asset{Key: key, URL: "https://cdn.test/" + key}, nil
}

func (m *Media) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deleted = append(m.Deleted, key)
	return m.DeleteErr
}

type Subscriptions struct {
	users *Users
}

func NewSubscriptions(users *Users) *Subscriptions {
	return &Subscriptions{users: users}
}

func (s *Subscriptions) Toggle(_ context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	s.users.mu.Lock()
	defer s.users.mu.Unlock()
	for i, sub := range s.users.subs {
		if sub.SubscriberID == subscriberID && sub.ChannelID == channelID {
			s.users.subs = append(s.users.subs[:i], s.users.subs[i+1:]...)
			return false, nil
		}
	}
	s.users.subs = append(s.users.subs, models.Subscription{ID: uuid.New(), SubscriberID: subscriberID, ChannelID: channelID})
	return true, nil
}

func (s *Subscriptions) list(match func(models.Subscription) (uuid.UUID, bool)) []models.User {
	s.users.mu.Lock()
	defer s.users.mu.Unlock()
	var out []models.User
	for _, sub := range s.users.subs {
		if id, ok := match(sub); ok {
			out = append(out, *s.users.users[id])
		}
	}
	return out
}

func (s *Subscriptions) Subscribers(_ context.Context, channelID uuid.UUID) ([]models.User, error) {
	return s.list(func(sub models.Subscription) (uuid.UUID, bool) {
		return sub.SubscriberID, sub.ChannelID == channelID
	}), nil
}

func (s *Subscriptions) SubscribedChannels(_ context.Context, subscriberID uuid.UUID) ([]models.User, error) {
	return s.list(func(sub models.Subscription) (uuid.UUID, bool) {
		return sub.ChannelID, sub.SubscriberID == subscriberID
	}), nil
}

type Videos struct {
	users *Users
	Err   error
}

func NewVideos(users *Users) *Videos {
	return &Videos{users: users}
}

func (v *Videos) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	if v.Err != nil {
		return false, v.Err
	}
	v.users.mu.Lock()
	defer v.users.mu.Unlock()
	_, ok := v.users.videos[id]
	return ok, nil
}

type Comments struct {
	mu       sync.Mutex
	comments []models.Comment
}

// All returns a copy of every stored comment.
func (c *Comments) All() []models.Comment {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Comment(nil), c.comments...)
}

func (c *Comments) Create(_ context.Context, comment *models.Comment) (*models.Comment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	comment.CreatedAt = time.Now().Add(time.Duration(len(c.comments)) * time.Millisecond)
	comment.UpdatedAt = comment.CreatedAt
	c.comments = append(c.comments, *comment)
	cp := *comment
	return &cp, nil
}

func (c *Comments) ListByVideo(_ context.Context, videoID uuid.UUID, offset, limit int) ([]models.Comment, int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var matched []models.Comment
	for _, cm := range c.comments {
		if cm.VideoID != nil && *cm.VideoID == videoID {
			matched = append(matched, cm)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (c *Comments) UpdateContent(_ context.Context, id, ownerID uuid.UUID, content string) (*models.Comment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.comments {
		cm := &c.comments[i]
		if cm.ID == id && cm.OwnerID != nil && *cm.OwnerID == ownerID {
			cm.Content = content
			cp := *cm
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (c *Comments) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, cm := range c.comments {
		if cm.ID == id && cm.OwnerID != nil && *cm.OwnerID == ownerID {
			c.comments = append(c.comments[:i], c.comments[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}
