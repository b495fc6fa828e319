package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/sproutly/sproutly-backend/internal/gamify"
	"github.com/sproutly/sproutly-backend/internal/model"
	"github.com/sproutly/sproutly-backend/internal/realtime"
	"github.com/sproutly/sproutly-backend/internal/repository"
	"gorm.io/gorm"
)

// FeedPost is a community post with its like count attached.
type FeedPost struct {
	model.CommunityPost
	DisplayName string `json:"displayName"`
	Likes       int64  `json:"likes"`
}

type CommunityService interface {
	CreatePost(ctx context.Context, uid, body string, treeID *uint64) (*model.CommunityPost, error)
	Feed(ctx context.Context, limit int) ([]FeedPost, error)
	// Like is idempotent: a second like from the same user is a no-op.
	Like(ctx context.Context, uid string, postID uint64) error
}

type communityService struct {
	repo   repository.CommunityRepository
	badges BadgeService
	notify NotificationService
	hub    *realtime.Hub
}

func NewCommunityService(repo repository.CommunityRepository, badges BadgeService, notify NotificationService, hub *realtime.Hub) CommunityService {
	return &communityService{repo: repo, badges: badges, notify: notify, hub: hub}
}

func (s *communityService) CreatePost(ctx context.Context, uid, body string, treeID *uint64) (*model.CommunityPost, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, errors.New("body is required")
	}
	post := &model.CommunityPost{UID: uid, Body: body, TreeID: treeID}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	s.hub.Publish(realtime.ChangeEvent{Table: "community_posts", Type: realtime.ChangeInsert, UID: uid, New: post})
	if _, err := s.badges.EvaluateAndGrant(ctx, uid); err != nil {
		log.Printf("[community] uid=%s post=%d stage=badges_fail err=%v", uid, post.ID, err)
	}
	return post, nil
}

func (s *communityService) Feed(ctx context.Context, limit int) ([]FeedPost, error) {
	posts, err := s.repo.ListPosts(ctx, limit)
	if err != nil {
		return nil, err
	}
	feed := make([]FeedPost, 0, len(posts))
	for _, p := range posts {
		likes, err := s.repo.CountLikes(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		feed = append(feed, FeedPost{CommunityPost: p, DisplayName: displayName(p.UID), Likes: likes})
	}
	return feed, nil
}

func (s *communityService) Like(ctx context.Context, uid string, postID uint64) error {
	post, err := s.repo.FindPost(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	err = s.repo.CreateLike(ctx, &model.PostLike{PostID: postID, UID: uid})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil
		}
		return err
	}
	s.hub.Publish(realtime.ChangeEvent{Table: "post_likes", Type: realtime.ChangeInsert, UID: uid})
	if post.UID != uid {
		s.notify.Dispatch(ctx, NotificationEvent{
			UID:       post.UID,
			Category:  gamify.CategoryCommunity,
			Title:     "Someone liked your post",
			Message:   displayName(uid) + " liked your post.",
			DedupeKey: fmt.Sprintf("community:like:%d:%s", postID, uid),
		})
	}
	return nil
}
