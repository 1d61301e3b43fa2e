package controllers

import (
	"encoding/json"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"spacetraveling/app/cms"
	"spacetraveling/app/models"
	"spacetraveling/app/services"
	"spacetraveling/config"

	"github.com/gorilla/mux"
)

// PostController handles the listing page, the load-more JSON endpoint
// and individual post pages.
type PostController struct {
	cnf       *config.Config
	fetcher   cms.Fetcher
	posts     *services.PostService
	previews  *PreviewSession
	templates map[string]*template.Template
}

// NewPostController creates a PostController. previews may be nil when
// preview mode is not configured.
func NewPostController(cnf *config.Config, fetcher cms.Fetcher, previews *PreviewSession) *PostController {
	return NewPostControllerWithPath(cnf, fetcher, previews, "")
}

// NewPostControllerWithPath creates a PostController loading templates
// from a custom base path, used by tests.
func NewPostControllerWithPath(cnf *config.Config, fetcher cms.Fetcher, previews *PreviewSession, basePath string) *PostController {
	return &PostController{
		cnf:       cnf,
		fetcher:   fetcher,
		posts:     services.NewPostService(fetcher, cnf.DocType),
		previews:  previews,
		templates: loadTemplates(basePath),
	}
}

// loadTemplates loads and parses all templates
func loadTemplates(basePath string) map[string]*template.Template {
	templates := make(map[string]*template.Template)
	templates["index"] = template.Must(template.ParseFiles(
		filepath.Join(basePath, "app/views/layout.html"),
		filepath.Join(basePath, "app/views/posts/index.html"),
	))
	templates["show"] = template.Must(template.ParseFiles(
		filepath.Join(basePath, "app/views/layout.html"),
		filepath.Join(basePath, "app/views/posts/show.html"),
		filepath.Join(basePath, "app/views/shared/comments.html"),
	))
	return templates
}

// indexData is what the listing template renders.
type indexData struct {
	Site       *config.Config
	Posts      []models.PostSummary
	NextCursor string
}

// Index handles the listing page and its JSON load-more endpoint. The
// opaque cursor travels from the response into the next request's
// "after" parameter untouched.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	cursor := r.URL.Query().Get("after")

	page, err := pc.fetcher.Query(r.Context(), pc.cnf.DocType, cms.QueryOptions{
		Order:    cms.OrderDesc,
		PageSize: pc.cnf.PageSize,
		Cursor:   cursor,
		Fields:   []string{"title", "subtitle", "author"},
	})
	if err != nil {
		pc.sendError(w, r, "Failed to fetch posts: "+err.Error(), http.StatusBadGateway)
		return
	}

	// Check if this is an API request
	accept := r.Header.Get("Accept")
	if accept == "application/json" || strings.HasPrefix(r.URL.Path, "/api") {
		pc.sendJSON(w, map[string]interface{}{
			"results":     page.Results,
			"next_cursor": page.NextCursor,
		})
		return
	}

	data := indexData{
		Site:       pc.cnf,
		Posts:      page.Results,
		NextCursor: page.NextCursor,
	}
	if err := pc.templates["index"].ExecuteTemplate(w, "layout", data); err != nil {
		pc.sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// showData is what the post page template renders.
type showData struct {
	Site        *config.Config
	Post        *models.PostDetail
	ReadingTime int
	Pagination  models.Pagination
	Preview     bool
}

// Show handles displaying a single post with its reading time, sibling
// navigation and the comment widget.
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["uid"]

	previewRef := ""
	if pc.previews != nil {
		previewRef = pc.previews.Ref(r)
	}

	view, err := pc.posts.GetPost(r.Context(), uid, previewRef)
	if err != nil {
		if cms.IsNotFound(err) {
			pc.sendError(w, r, "Post not found", http.StatusNotFound)
			return
		}
		pc.sendError(w, r, "Failed to fetch post: "+err.Error(), http.StatusBadGateway)
		return
	}

	accept := r.Header.Get("Accept")
	if accept == "application/json" || strings.HasPrefix(r.URL.Path, "/api") {
		pc.sendJSON(w, map[string]interface{}{
			"post":                 view.Post,
			"reading_time_minutes": view.ReadingTime,
			"pagination":           view.Pagination,
		})
		return
	}

	data := showData{
		Site:        pc.cnf,
		Post:        view.Post,
		ReadingTime: view.ReadingTime,
		Pagination:  view.Pagination,
		Preview:     previewRef != "",
	}
	if err := pc.templates["show"].ExecuteTemplate(w, "layout", data); err != nil {
		pc.sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// Helper methods for consistent response handling

func (pc *PostController) sendJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (pc *PostController) sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	accept := r.Header.Get("Accept")
	if accept == "application/json" || strings.HasPrefix(r.URL.Path, "/api") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": message})
	} else {
		http.Error(w, message, status)
	}
}
