package main

import (
	"context"
	"fmt"
	"time"

	"github.com/relawan/portal/internal/services"
	"github.com/relawan/portal/internal/store"
	"github.com/relawan/portal/pkg/password"
)

const demoPhone = "628174991828"

type repos struct {
	users    services.UserRepository
	articles services.ArticleRepository
	reports  services.ReportRepository
}

type demoUser struct {
	name, email, password string
	role                  store.Role
}

var demoUsers = []demoUser{
	{"Mr. Admin", "admin@admin.com", "Admin123?", store.RoleAdmin},
	{"Mrs. Editor", "editor@editor.com", "Editor123?", store.RoleEditor},
	{"John Doe", "john_doe@example.com", "Johndoe123?", store.RoleContributor},
	{"Steve Minecraft", "steve@minecraft.com", "Steve123?", store.RoleContributor},
	{"Alex Minecraft", "alex@minecraft.com", "Alexmc123?", store.RoleContributor},
}

type demoArticle struct {
	title, content string
	approved       bool
}

var demoArticles = []demoArticle{
	{
		"Is C programming language the best for beginners?",
		"Most people think that the C programming language is useless because of how limited it is, but... is it really?\n\n" +
			"I don't think so, C is practically the father of all programming languages\n" +
			"and thanks to its simplicity, it has helped many people learn to program",
		true,
	},
	{
		"10 useful VS code extensions to make life easier -Part- 3",
		"A soldier loves his weapon more than anything. Developers are soldiers, and an\n" +
			"IDE is a weapon. A soldier's greatest responsibility is always to power up his\n" +
			"weapon and make good use of it.\n\n" +
			"VSCode is one of the best weapons out there for a soldier. Here is 10 useful\n" +
			"extension which will make your weapon powerful.",
		true,
	},
	{
		"Upgrading Next.js for instant performance improvements",
		"Since the release of Next.js, we've worked to introduce new features and tools that drastically\n" +
			"improve application performance, as well as overall developer experience. Let's take a look at what a\n" +
			"difference upgrading to the latest version of Next.js can make.",
		false,
	},
	{
		"Rust's Unsafe Pointer Types Need An Overhaul",
		"I think about unsafe pointers in Rust a lot.\n\n" +
			"I literally wrote the book on unsafe Rust. And the book on pointers in Rust. And redesigned the Rust's\n" +
			"pointer APIs.",
		false,
	},
}

var demoReports = []store.Report{
	{Content: "My account logs out every 5 minutes"},
	{Content: "Is the homepage is broken when I open it with my iphone 10?"},
	{Content: "A user called Utopia Stranger posted a hoax on the articles", Status: store.ReportResolved},
}

// seed inserts the demo data. Articles are spread over the users in order
// and approved ones alternate between the admin and the editor. Resolved
// reports are resolved by the admin at now.
func seed(ctx context.Context, r repos, hasher *password.Hasher, now time.Time) error {
	users := make([]store.User, 0, len(demoUsers))
	for _, d := range demoUsers {
		hash, err := hasher.Hash(d.password)
		if err != nil {
			return err
		}
		u := store.User{FullName: d.name, Email: d.email, Phone: demoPhone, Password: hash, AccessLevel: d.role}
		if err := r.users.Create(ctx, &u); err != nil {
			return fmt.Errorf("seed user %s: %w", d.email, err)
		}
		users = append(users, u)
	}

	approvers := []int64{users[0].ID, users[1].ID}
	for i, d := range demoArticles {
		a := store.Article{Title: d.title, Content: d.content, AuthorID: users[i%len(users)].ID, IsApproved: d.approved}
		if d.approved {
			a.ApproverID = &approvers[i%len(approvers)]
		}
		if err := r.articles.Create(ctx, &a); err != nil {
			return fmt.Errorf("seed article %q: %w", a.Title, err)
		}
	}

	admin := users[0].ID
	for _, rep := range demoReports {
		if rep.Status == store.ReportResolved {
			rep.ResolverID = &admin
			rep.UpdatedAt = &now
		}
		if err := r.reports.Create(ctx, &rep); err != nil {
			return fmt.Errorf("seed report: %w", err)
		}
	}
	return nil
}
