package controllers

import (
	"net/http"

	"spacetraveling/app/cms"
	"spacetraveling/app/feeds"
	"spacetraveling/app/models"
	"spacetraveling/app/services"
	"spacetraveling/config"
)

// feedPageSize caps the RSS feed at the most recent posts.
const feedPageSize = 50

// FeedController serves the RSS feed and the sitemap.
type FeedController struct {
	cnf     *config.Config
	fetcher cms.Fetcher
}

// NewFeedController creates a FeedController.
func NewFeedController(cnf *config.Config, fetcher cms.Fetcher) *FeedController {
	return &FeedController{cnf: cnf, fetcher: fetcher}
}

// RSS serves the most recent posts as RSS 2.0.
func (fc *FeedController) RSS(w http.ResponseWriter, r *http.Request) {
	page, err := fc.fetcher.Query(r.Context(), fc.cnf.DocType, cms.QueryOptions{
		Order:    cms.OrderDesc,
		PageSize: feedPageSize,
		Fields:   []string{"title", "subtitle", "author"},
	})
	if err != nil {
		http.Error(w, "Failed to fetch posts: "+err.Error(), http.StatusBadGateway)
		return
	}

	out, err := feeds.RSS(fc.cnf, page.Results)
	if err != nil {
		http.Error(w, "Failed to render feed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Write(out)
}

// Sitemap serves a sitemap of every post, draining the listing page by
// page.
func (fc *FeedController) Sitemap(w http.ResponseWriter, r *http.Request) {
	posts, err := fc.allPosts(r)
	if err != nil {
		http.Error(w, "Failed to fetch posts: "+err.Error(), http.StatusBadGateway)
		return
	}

	out, err := feeds.Sitemap(fc.cnf, posts)
	if err != nil {
		http.Error(w, "Failed to render sitemap: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write(out)
}

func (fc *FeedController) allPosts(r *http.Request) ([]models.PostSummary, error) {
	listing := services.NewListingService(fc.fetcher, fc.cnf.DocType, fc.cnf.PageSize)
	for listing.HasMore() {
		if _, err := listing.LoadMore(r.Context()); err != nil {
			return nil, err
		}
	}
	return listing.Posts(), nil
}
