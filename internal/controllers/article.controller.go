package controllers

import (
	"net/http"

	"github.com/relawan/portal"
	"github.com/relawan/portal/internal/auth"
	"github.com/relawan/portal/internal/services"
	"github.com/relawan/portal/internal/store"
	"github.com/relawan/portal/middlewares"
)

// ArticleRoute serves /v1/articles.
type ArticleRoute struct {
	svc   *services.Articles
	roles auth.RoleSource
}

type articleParams struct {
	ArticleID int64 `param:"articleId" validate:"gte=1"`
}

func RegisterArticles(reg *portal.Registry, deps *Deps) error {
	moderator := deps.requireRole(store.RoleAdmin, store.RoleEditor)
	byID := middlewares.ValidateParams[articleParams]()

	return reg.Declare(&ArticleRoute{svc: deps.Services.Articles, roles: deps.Services.Users}, portal.RouteGroup{Path: "articles"},
		portal.POST("/", "Create", deps.authenticate(), deps.member(), middlewares.Validate[services.NewArticle]()),
		portal.DELETE("/:articleId", "Delete", deps.authenticate(), moderator, byID),
		portal.PATCH("/:articleId/approve", "Approve", deps.authenticate(), moderator, byID),
		portal.GET("/:articleId", "Get", deps.optionalAuth(), byID),
		portal.GET("/", "List", deps.optionalAuth()),
	)
}

func (r *ArticleRoute) Create(c portal.Context) error {
	id, err := r.svc.Create(c, auth.ClaimsFrom(c).UserID, *middlewares.Valid[services.NewArticle](c))
	if err != nil {
		return err
	}
	return portal.Success(c, http.StatusOK, "Successfully created new article", map[string]any{"articleId": id})
}

func (r *ArticleRoute) Delete(c portal.Context) error {
	if err := r.svc.Delete(c, middlewares.ValidParams[articleParams](c).ArticleID); err != nil {
		return translate(err)
	}
	return portal.Success(c, http.StatusOK, "Successfully deleted article", nil)
}

func (r *ArticleRoute) Approve(c portal.Context) error {
	id := middlewares.ValidParams[articleParams](c).ArticleID
	if err := r.svc.Approve(c, id, auth.ClaimsFrom(c).UserID); err != nil {
		return translate(err)
	}
	return portal.Success(c, http.StatusOK, "Successfully approved article", nil)
}

func (r *ArticleRoute) Get(c portal.Context) error {
	privileged, err := auth.Privileged(c, r.roles)
	if err != nil {
		return err
	}

	article, err := r.svc.Get(c, middlewares.ValidParams[articleParams](c).ArticleID, privileged)
	if err != nil {
		return translate(err)
	}
	return portal.Success(c, http.StatusOK, "Article is found", map[string]any{"article": article})
}

func (r *ArticleRoute) List(c portal.Context) error {
	privileged, err := auth.Privileged(c, r.roles)
	if err != nil {
		return err
	}

	articles, err := r.svc.List(c, privileged)
	if err != nil {
		return err
	}
	return portal.Success(c, http.StatusOK, "Found article(s)", map[string]any{"articles": articles})
}
