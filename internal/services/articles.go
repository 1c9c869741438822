package services

import (
	"context"
	"errors"
	"time"

	"github.com/relawan/portal/internal/store"
	"github.com/relawan/portal/pkg/sanitizer"
)

// NewArticle is the body of an article submission. Content is markdown.
type NewArticle struct {
	Title   string `json:"title" validate:"required,max=128"`
	Content string `json:"content" validate:"required,max=2000"`
}

// ArticleView is an article as returned to clients. The moderation flags
// are only set for privileged callers.
type ArticleView struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"contentHtml"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	AuthorID    int64     `json:"authorId"`
	ApproverID  *int64    `json:"approverId"`
	IsDeleted   *bool     `json:"isDeleted,omitempty"`
	IsApproved  *bool     `json:"isApproved,omitempty"`
}

type Articles struct {
	repo ArticleRepository
}

// Create stores an unapproved article by authorID and returns its id.
func (s *Articles) Create(ctx context.Context, authorID int64, in NewArticle) (int64, error) {
	a := store.Article{
		Title:    sanitizer.PlainText(in.Title),
		Content:  in.Content,
		AuthorID: authorID,
	}
	if err := s.repo.Create(ctx, &a); err != nil {
		return 0, err
	}
	return a.ID, nil
}

func (s *Articles) Delete(ctx context.Context, id int64) error {
	return notFound(s.repo.SoftDelete(ctx, id), ErrArticleNotFound)
}

func (s *Articles) Approve(ctx context.Context, id, approverID int64) error {
	return notFound(s.repo.Approve(ctx, id, approverID), ErrArticleNotFound)
}

// Get returns the article with id. Callers that are not privileged only
// find approved, undeleted articles.
func (s *Articles) Get(ctx context.Context, id int64, privileged bool) (ArticleView, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ArticleView{}, notFound(err, ErrArticleNotFound)
	}
	if !privileged && !a.Visible() {
		return ArticleView{}, ErrArticleNotFound
	}
	return view(a, privileged)
}

// List applies the same visibility rule as Get.
func (s *Articles) List(ctx context.Context, privileged bool) ([]ArticleView, error) {
	articles, err := s.repo.List(ctx, !privileged)
	if err != nil {
		return nil, err
	}

	out := make([]ArticleView, 0, len(articles))
	for _, a := range articles {
		v, err := view(a, privileged)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func view(a store.Article, privileged bool) (ArticleView, error) {
	html, err := sanitizer.Markdown(a.Content)
	if err != nil {
		return ArticleView{}, err
	}

	v := ArticleView{
		ID:          a.ID,
		Title:       a.Title,
		Content:     a.Content,
		ContentHTML: html,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
		AuthorID:    a.AuthorID,
		ApproverID:  a.ApproverID,
	}
	if privileged {
		v.IsDeleted = &a.IsDeleted
		v.IsApproved = &a.IsApproved
	}
	return v, nil
}

// notFound replaces store.ErrNotFound with target and keeps other errors.
func notFound(err, target error) error {
	if errors.Is(err, store.ErrNotFound) {
		return errors.Join(target, err)
	}
	return err
}
