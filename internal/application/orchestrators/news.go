package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"trust/internal/domain/news"
)

// NewsStoreForOrchestrator defines the store interface needed by news orchestrators.
type NewsStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (news.Post, error)
	Save(ctx context.Context, p news.Post) error
	Delete(ctx context.Context, id string) error
}

// ErrNewsIDRequired is returned when a news operation has no target.
var ErrNewsIDRequired = errors.New("news ID is required")

// NewsInput carries the editable fields of a news post.
type NewsInput struct {
	Title     string
	Excerpt   string
	Body      string
	Published bool
}

// NewsDeps holds dependencies for news orchestrators.
type NewsDeps struct {
	NewsStore  NewsStoreForOrchestrator
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteCreateNews creates a news post, published or as a draft.
// PRE: Title and Excerpt non-empty
// POST: Post persisted with generated ID
func ExecuteCreateNews(ctx context.Context, input NewsInput, deps NewsDeps) (news.Post, error) {
	p := news.Post{
		ID:        deps.GenerateID(),
		Title:     strings.TrimSpace(input.Title),
		Excerpt:   strings.TrimSpace(input.Excerpt),
		Body:      strings.TrimSpace(input.Body),
		Published: input.Published,
		CreatedAt: deps.Now(),
	}
	if err := p.Validate(); err != nil {
		return news.Post{}, err
	}
	if err := deps.NewsStore.Save(ctx, p); err != nil {
		return news.Post{}, err
	}

	slog.Info("news_event", "event", "news_created", "news_id", p.ID, "published", p.Published)
	return p, nil
}

// ExecuteUpdateNews overwrites a post's fields. Last writer wins.
// PRE: post exists
// POST: fields replaced, UpdatedAt set
func ExecuteUpdateNews(ctx context.Context, id string, input NewsInput, deps NewsDeps) (news.Post, error) {
	if id == "" {
		return news.Post{}, ErrNewsIDRequired
	}
	p, err := deps.NewsStore.GetByID(ctx, id)
	if err != nil {
		return news.Post{}, err
	}
	p.Title = strings.TrimSpace(input.Title)
	p.Excerpt = strings.TrimSpace(input.Excerpt)
	p.Body = strings.TrimSpace(input.Body)
	p.Published = input.Published
	if err := p.Validate(); err != nil {
		return news.Post{}, err
	}
	p.UpdatedAt = deps.Now()
	if err := deps.NewsStore.Save(ctx, p); err != nil {
		return news.Post{}, err
	}

	slog.Info("news_event", "event", "news_updated", "news_id", p.ID)
	return p, nil
}

// ExecuteSetNewsPublished publishes or unpublishes a post.
// Setting the state the post already has is a no-op.
// PRE: post exists
// POST: Published == published
func ExecuteSetNewsPublished(ctx context.Context, id string, published bool, deps NewsDeps) (news.Post, error) {
	if id == "" {
		return news.Post{}, ErrNewsIDRequired
	}
	p, err := deps.NewsStore.GetByID(ctx, id)
	if err != nil {
		return news.Post{}, err
	}
	if published {
		err = p.Publish(deps.Now())
	} else {
		err = p.Unpublish(deps.Now())
	}
	if errors.Is(err, news.ErrAlreadyPublished) || errors.Is(err, news.ErrNotPublished) {
		return p, nil
	}
	if err != nil {
		return news.Post{}, err
	}
	if err := deps.NewsStore.Save(ctx, p); err != nil {
		return news.Post{}, err
	}

	slog.Info("news_event", "event", "news_published_changed", "news_id", p.ID, "published", p.Published)
	return p, nil
}

// ExecuteDeleteNews deletes a post.
func ExecuteDeleteNews(ctx context.Context, id string, deps NewsDeps) error {
	if id == "" {
		return ErrNewsIDRequired
	}
	if err := deps.NewsStore.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("news_event", "event", "news_deleted", "news_id", id)
	return nil
}
