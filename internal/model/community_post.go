package model

import "time"

type CommunityPost struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UID       string    `gorm:"column:uid;size:128;index;not null" json:"uid"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	TreeID    *uint64   `gorm:"column:tree_id;index" json:"treeId,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
}

func (CommunityPost) TableName() string {
	return "community_posts"
}

// PostLike is unique per (post, user); a duplicate like is benign.
type PostLike struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    uint64    `gorm:"column:post_id;uniqueIndex:uk_post_likes_post_uid;not null" json:"postId"`
	UID       string    `gorm:"column:uid;size:128;uniqueIndex:uk_post_likes_post_uid;not null" json:"uid"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (PostLike) TableName() string {
	return "post_likes"
}
