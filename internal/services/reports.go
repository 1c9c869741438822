package services

import (
	"context"
	"time"

	"github.com/relawan/portal/internal/store"
	"github.com/relawan/portal/pkg/sanitizer"
)

type NewReport struct {
	Content string `json:"content" validate:"required,max=64"`
}

type Reports struct {
	repo ReportRepository
	now  func() time.Time
}

func (s *Reports) List(ctx context.Context) ([]store.Report, error) {
	return s.repo.List(ctx)
}

// Add files a pending report.
func (s *Reports) Add(ctx context.Context, in NewReport) (store.Report, error) {
	r := store.Report{Content: sanitizer.PlainText(in.Content), Status: store.ReportPending}
	if err := s.repo.Create(ctx, &r); err != nil {
		return store.Report{}, err
	}
	return r, nil
}

// Resolve closes a pending report on behalf of resolverID.
func (s *Reports) Resolve(ctx context.Context, id, resolverID int64) error {
	return notFound(s.repo.Resolve(ctx, id, resolverID, s.now()), ErrReportNotFound)
}
