package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	userKeyPrefix      = "user:%d"
	postKeyPrefix      = "post:%d"
	categorySidebarKey = "categories:sidebar"
)

const (
	UserTTL            = 5 * time.Minute
	PostTTL            = 30 * time.Minute
	CategorySidebarTTL = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

func CategorySidebarKey() string {
	return categorySidebarKey
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidateCategorySidebar(ctx context.Context) {
	Invalidate(ctx, categorySidebarKey)
}
