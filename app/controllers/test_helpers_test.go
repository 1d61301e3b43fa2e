package controllers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"spacetraveling/app/cms"
	"spacetraveling/app/models"
	"spacetraveling/config"

	"github.com/stretchr/testify/require"
)

func setupTestTemplates(t *testing.T) string {
	tmpDir := t.TempDir()
	viewsDir := filepath.Join(tmpDir, "app", "views")

	dirs := []string{
		filepath.Join(viewsDir, "posts"),
		filepath.Join(viewsDir, "shared"),
	}
	for _, dir := range dirs {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}

	templates := map[string]string{
		filepath.Join(viewsDir, "layout.html"):          `{{define "layout"}}<!DOCTYPE html><html><body>{{template "content" .}}</body></html>{{end}}`,
		filepath.Join(viewsDir, "posts/index.html"):     `{{define "content"}}<div class="posts">{{range .Posts}}<h2>{{.Title}}</h2>{{end}}</div>{{if .NextCursor}}<button class="load-more" data-cursor="{{.NextCursor}}">more</button>{{end}}{{end}}`,
		filepath.Join(viewsDir, "posts/show.html"):      `{{define "content"}}{{if .Preview}}<aside>preview</aside>{{end}}<h1>{{.Post.Title}}</h1><span class="reading-time">{{.ReadingTime}} min</span>{{if .Pagination.Next}}<a class="next" href="{{.Pagination.Next.Href}}">{{.Pagination.Next.Title}}</a>{{end}}{{if .Pagination.Previous}}<a class="previous" href="{{.Pagination.Previous.Href}}">{{.Pagination.Previous.Title}}</a>{{end}}{{template "comments" .}}{{end}}`,
		filepath.Join(viewsDir, "shared/comments.html"): `{{define "comments"}}{{if .Site.CommentsRepo}}<section class="comments" data-repo="{{.Site.CommentsRepo}}"></section>{{end}}{{end}}`,
	}
	for path, content := range templates {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	return tmpDir
}

func testConfig() *config.Config {
	return &config.Config{
		DocType:      "posts",
		PageSize:     20,
		SiteName:     "spacetraveling",
		SiteURL:      "https://blog.example.com",
		CommentsRepo: "someone/blog-comments",
		SessionKey:   "test-session-key",
	}
}

// mockFetcher is a scriptable cms.Fetcher for controller tests.
type mockFetcher struct {
	queryFn func(ctx context.Context, docType string, opts cms.QueryOptions) (*cms.Page, error)
	getFn   func(ctx context.Context, docType, uid string, opts cms.GetOptions) (*models.PostDetail, error)
}

func (m *mockFetcher) Query(ctx context.Context, docType string, opts cms.QueryOptions) (*cms.Page, error) {
	if m.queryFn != nil {
		return m.queryFn(ctx, docType, opts)
	}
	return &cms.Page{}, nil
}

func (m *mockFetcher) GetByUID(ctx context.Context, docType, uid string, opts cms.GetOptions) (*models.PostDetail, error) {
	if m.getFn != nil {
		return m.getFn(ctx, docType, uid, opts)
	}
	return nil, &cms.NotFoundError{Type: docType, UID: uid}
}
