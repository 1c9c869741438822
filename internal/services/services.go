package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/relawan/portal/internal/store"
	"github.com/relawan/portal/pkg/cache"
	"github.com/relawan/portal/pkg/jwt"
	"github.com/relawan/portal/pkg/logger"
	"github.com/relawan/portal/pkg/password"
)

type UserRepository interface {
	Create(ctx context.Context, u *store.User) error
	FindByID(ctx context.Context, id int64) (store.User, error)
	FindByEmail(ctx context.Context, email string) (store.User, error)
	ListByRole(ctx context.Context, roles ...store.Role) ([]store.User, error)
	SetRole(ctx context.Context, id int64, role store.Role) error
}

type ArticleRepository interface {
	Create(ctx context.Context, a *store.Article) error
	FindByID(ctx context.Context, id int64) (store.Article, error)
	List(ctx context.Context, visibleOnly bool) ([]store.Article, error)
	SoftDelete(ctx context.Context, id int64) error
	Approve(ctx context.Context, id, approverID int64) error
}

type ReportRepository interface {
	Create(ctx context.Context, r *store.Report) error
	List(ctx context.Context) ([]store.Report, error)
	Resolve(ctx context.Context, id, resolverID int64, at time.Time) error
}

type DonationRepository interface {
	Create(ctx context.Context, d *store.Donation) error
	List(ctx context.Context) ([]store.Donation, error)
}

type LocationRepository interface {
	Create(ctx context.Context, l *store.Location) error
	List(ctx context.Context) ([]store.Location, error)
}

// Deps wires the services. Logger and Now are optional.
type Deps struct {
	Users     UserRepository
	Articles  ArticleRepository
	Reports   ReportRepository
	Donations DonationRepository
	Locations LocationRepository

	Hasher  *password.Hasher
	Access  *jwt.Service
	Refresh *jwt.Service

	// Sessions maps live refresh token ids to user ids.
	Sessions cache.Store[int64]
	// Profiles caches users by id. Cached users carry no password hash.
	Profiles cache.Store[store.User]

	Logger *slog.Logger
	Now    func() time.Time
}

// Services is the set of use cases handlers call into.
type Services struct {
	Auth      *Auth
	Users     *Users
	Articles  *Articles
	Reports   *Reports
	Donations *Donations
	Locations *Locations
}

// New builds every service from d.
func New(d Deps) *Services {
	if d.Logger == nil {
		d.Logger = logger.NewNope()
	}
	if d.Now == nil {
		d.Now = time.Now
	}

	users := &Users{repo: d.Users, profiles: d.Profiles}
	return &Services{
		Auth: &Auth{
			users:    d.Users,
			hasher:   d.Hasher,
			access:   d.Access,
			refresh:  d.Refresh,
			sessions: d.Sessions,
			log:      d.Logger.With(slog.String("service", "auth")),
		},
		Users:     users,
		Articles:  &Articles{repo: d.Articles},
		Reports:   &Reports{repo: d.Reports, now: d.Now},
		Donations: &Donations{repo: d.Donations},
		Locations: &Locations{repo: d.Locations},
	}
}
