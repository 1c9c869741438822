// Package storetest provides in-memory repositories with the same
// behavior as the store package, for service and handler tests.
package storetest

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/relawan/portal/internal/store"
)

// DB is the shared state of the in-memory repositories.
type DB struct {
	mu     sync.Mutex
	nextID int64
	fail   error
	now    func() time.Time

	users     []store.User
	articles  []store.Article
	reports   []store.Report
	donations []store.Donation
	locations []store.Location
}

// New creates an empty DB.
func New() *DB {
	return &DB{now: time.Now}
}

// Fail makes every repository call return err until called with nil.
func (d *DB) Fail(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fail = err
}

// begin locks d and reports the injected failure, if any.
func (d *DB) begin() (unlock func(), err error) {
	d.mu.Lock()
	return d.mu.Unlock, d.fail
}

func (d *DB) id() int64 {
	d.nextID++
	return d.nextID
}

func (d *DB) Users() *Users { return &Users{d} }
func (d *DB) Articles() *Articles { return &Articles{d} }
func (d *DB) Reports() *Reports { return &Reports{d} }
func (d *DB) Donations() *Donations { return &Donations{d} }
func (d *DB) Locations() *Locations { return &Locations{d} }

func find[T any](items []T, match func(T) bool) (int, error) {
	i := slices.IndexFunc(items, match)
	if i < 0 {
		return -1, store.ErrNotFound
	}
	return i, nil
}

type Users struct{ d *DB }

func (r *Users) Create(_ context.Context, u *store.User) error {
	unlock, err := r.d.begin()
	defer unlock()
	if err != nil {
		return err
	}

	if _, err := find(r.d.users, func(x store.User) bool { return strings.EqualFold(x.Email, u.Email) }); err == nil {
		return store.ErrDuplicate
	}
	u.ID = r.d.id()
	u.CreatedAt = r.d.now()
	r.d.users = append(r.d.users, *u)
	return nil
}

func (r *Users) FindByID(_ context.Context, id int64) (store.User, error) {
	unlock, err := r.d.begin()
	defer unlock()
	if err != nil {
		return store.User{}, err
	}

	i, err := find(r.d.users, func(x store.User) bool { return x.ID == id })
	if err != nil {
		return store.User{}, err
	}
	return r.d.users[i], nil
}

func (r *Users) FindByEmail(_ context.Context, email string) (store.User, error) {
	unlock, err := r.d.begin()
	defer unlock()
	if err != nil {
		return store.User{}, err
	}

	i, err := find(r.d.users, func(x store.User) bool { return strings.EqualFold(x.Email, email) })
	if err != nil {
		return store.User{}, err
	}
	return r.d.users[i], nil
}

func (r *Users) ListByRole(_ context.Context, roles ...store.Role) ([]store.User, error) {
	unlock, err := r.d.begin()
	defer unlock()
	if err != nil {
		return nil, err
	}

	var out []store.User
	for _, u := range r.d.users {
		if slices.Contains(roles, u.AccessLevel) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *Users) SetRole(_ context.Context, id int64, role store.Role) error {
	unlock, err := r.d.begin()
	defer unlock()
	if err != nil {
		return err
	}

	i, err := find(r.d.users, func(x store.User) bool { return x.ID == id })
	if err != nil {
		return err
	}
	r.d.users[i].AccessLevel = role
	return nil
}

type Articles struct{ d *DB }

func (r *Articles) Create(_ context.Context, a *store.Article) error {
	unlock, err := r.d.begin()
	defer unlock()
	if err != nil {
		return err
	}

	a.ID = r.d.id()
	a.CreatedAt = r.d.now()
	a.UpdatedAt = a.CreatedAt
	r.d.articles = append(r.d.articles, *a)
	return nil
}

func (r *Articles) FindByID(_ context.Context, id int64) (store.Article, error) {
	unlock, err := r.d.begin()
	defer unlock()
	if err != nil {
		return store.Article{}, err
	}

	i, err := find(r.d.articles, func(x store.Article) bool { return x.ID == id })
	if err != nil {
		return store.Article{}, err
	}
	return r.d.articles[i], nil
}

func (r *Articles) List(_ context.Context, visibleOnly bool) ([]store.Article, error) {
	unlock, err := r.d.begin()
	defer unlock()
	if err != nil {
		return nil, err
	}

	var out []store.Article
	for _, a := range slices.Backward(r.d.articles) {
		if !visibleOnly || a.Visible() {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *Articles) SoftDelete(_ context.Context, id int64) error {
	unlock, err := r.d.begin()
	defer unlock()
	if err != nil {
		return err
	}

	i, err := find(r.d.articles, func(x store.Article) bool { return x.ID == id })
	if err != nil {
		return err
	}
	r.d.articles[i].IsDeleted = true
	r.d.articles[i].UpdatedAt = r.d.now()
	return nil
}

func (r *Articles) Approve(_ context.Context, id, approverID int64) error {
	unlock, err := r.d.begin()
	defer unlock()
	if err != nil {
		return err
	}

	i, err := find(r.d.articles, func(x store.Article) bool { return x.ID == id && !x.IsDeleted })
	if err != nil {
		return err
	}
	r.d.articles[i].IsApproved = true
	r.d.articles[i].ApproverID = &approverID
	r.d.articles[i].UpdatedAt = r.d.now()
	return nil
}

type Reports struct{ d *DB }

func (r *Reports) Create(_ context.Context, rep *store.Report) error {
	unlock, err := r.d.begin()
	defer unlock()
	if err != nil {
		return err
	}

	rep.ID = r.d.id()
	rep.CreatedAt = r.d.now()
	r.d.reports = append(r.d.reports, *rep)
	return nil
}

func (r *Reports) List(_ context.Context) ([]store.Report, error) {
	unlock, err := r.d.begin()
	defer unlock()
	if err != nil {
		return nil, err
	}

	out := slices.Clone(r.d.reports)
	slices.SortStableFunc(out, func(a, b store.Report) int { return cmp.Compare(b.ID, a.ID) })
	return out, nil
}

func (r *Reports) Resolve(_ context.Context, id, resolverID int64, at time.Time) error {
	unlock, err := r.d.begin()
	defer unlock()
	if err != nil {
		return err
	}

	i, err := find(r.d.reports, func(x store.Report) bool { return x.ID == id && x.Status == store.ReportPending })
	if err != nil {
		return err
	}
	r.d.reports[i].Status = store.ReportResolved
	r.d.reports[i].ResolverID = &resolverID
	r.d.reports[i].UpdatedAt = &at
	return nil
}

type Donations struct{ d *DB }

func (r *Donations) Create(_ context.Context, don *store.Donation) error {
	unlock, err := r.d.begin()
	defer unlock()
	if err != nil {
		return err
	}

	don.ID = r.d.id()
	don.DonatedAt = r.d.now()
	r.d.donations = append(r.d.donations, *don)
	return nil
}

func (r *Donations) List(_ context.Context) ([]store.Donation, error) {
	unlock, err := r.d.begin()
	defer unlock()
	if err != nil {
		return nil, err
	}

	var out []store.Donation
	for _, d := range slices.Backward(r.d.donations) {
		out = append(out, d)
	}
	return out, nil
}

type Locations struct{ d *DB }

func (r *Locations) Create(_ context.Context, l *store.Location) error {
	unlock, err := r.d.begin()
	defer unlock()
	if err != nil {
		return err
	}

	l.ID = r.d.id()
	l.CreatedAt = r.d.now()
	r.d.locations = append(r.d.locations, *l)
	return nil
}

func (r *Locations) List(_ context.Context) ([]store.Location, error) {
	unlock, err := r.d.begin()
	defer unlock()
	if err != nil {
		return nil, err
	}

	return slices.Clone(r.d.locations), nil
}
