package store

import "time"

// Role is a user's access level. Lower values carry more privilege.
type Role int16

const (
	RoleAdmin Role = iota
	RoleEditor
	RoleContributor
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "ADMIN"
	case RoleEditor:
		return "EDITOR"
	case RoleContributor:
		return "CONTRIBUTOR"
	default:
		return "UNKNOWN"
	}
}

// Privileged reports whether r may moderate content.
func (r Role) Privileged() bool {
	return r == RoleAdmin || r == RoleEditor
}

// ReportStatus is the lifecycle state of a report.
type ReportStatus int16

const (
	ReportPending ReportStatus = iota
	ReportResolved
)

type User struct {
	ID          int64     `db:"id" json:"id"`
	FullName    string    `db:"full_name" json:"fullName"`
	Email       string    `db:"email" json:"email"`
	Phone       string    `db:"phone" json:"phone"`
	Password    string    `db:"password" json:"-"`
	AccessLevel Role      `db:"access_level" json:"accessLevel"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

type Article struct {
	ID         int64     `db:"id" json:"id"`
	Title      string    `db:"title" json:"title"`
	Content    string    `db:"content" json:"content"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
	IsDeleted  bool      `db:"is_deleted" json:"isDeleted"`
	IsApproved bool      `db:"is_approved" json:"isApproved"`
	AuthorID   int64     `db:"author_id" json:"authorId"`
	ApproverID *int64    `db:"approver_id" json:"approverId"`
}

// Visible reports whether the article is shown to the public.
func (a Article) Visible() bool {
	return a.IsApproved && !a.IsDeleted
}

type Report struct {
	ID         int64        `db:"id" json:"id"`
	Content    string       `db:"content" json:"content"`
	Status     ReportStatus `db:"status" json:"status"`
	CreatedAt  time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt  *time.Time   `db:"updated_at" json:"updatedAt"`
	ResolverID *int64       `db:"resolver_id" json:"resolverId"`
}

type Donation struct {
	ID        int64     `db:"id" json:"id"`
	Donator   string    `db:"donator" json:"donator"`
	Money     int64     `db:"money" json:"money"`
	DonatedAt time.Time `db:"donated_at" json:"donatedAt"`
}

type Location struct {
	ID        int64      `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Type      string     `db:"type" json:"type"`
	Address   string     `db:"address" json:"address"`
	Latitude  float64    `db:"latitude" json:"latitude"`
	Longitude float64    `db:"longitude" json:"longitude"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt *time.Time `db:"updated_at" json:"updatedAt"`
}
