package projections

import (
	"context"

	"trust/internal/adapters/storage/news"
	domainNews "trust/internal/domain/news"
)

// QueryGetPublishedNews lists published posts, newest first. Limit 0 means all.
func QueryGetPublishedNews(ctx context.Context, limit int, store NewsStore) ([]domainNews.Post, error) {
	return store.List(ctx, news.ListFilter{PublishedOnly: true, Limit: limit})
}

// QueryGetAllNews lists drafts and published posts for the admin panel.
func QueryGetAllNews(ctx context.Context, store NewsStore) ([]domainNews.Post, error) {
	return store.List(ctx, news.ListFilter{})
}
