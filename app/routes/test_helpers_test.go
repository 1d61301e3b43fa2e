package routes

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

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
		filepath.Join(viewsDir, "posts/index.html"):     `{{define "content"}}{{range .Posts}}<h2>{{.Title}}</h2>{{end}}{{end}}`,
		filepath.Join(viewsDir, "posts/show.html"):      `{{define "content"}}<h1>{{.Post.Title}}</h1>{{if .Preview}}<aside>preview</aside>{{end}}{{template "comments" .}}{{end}}`,
		filepath.Join(viewsDir, "shared/comments.html"): `{{define "comments"}}{{end}}`,
	}
	for path, content := range templates {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	return tmpDir
}

func testConfig() *config.Config {
	return &config.Config{
		DocType:    "posts",
		PageSize:   20,
		SiteName:   "spacetraveling",
		SiteURL:    "https://blog.example.com",
		SessionKey: "test-session-key",
	}
}

// testFetcher serves a single known post and one listing page, and
// records the preview ref of the last GetByUID call.
type testFetcher struct {
	lastPreviewRef string
}

func (m *testFetcher) Query(ctx context.Context, docType string, opts cms.QueryOptions) (*cms.Page, error) {
	published := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	if opts.After != "" {
		// Sibling lookups find nothing.
		return &cms.Page{}, nil
	}
	return &cms.Page{
		Results: []models.PostSummary{
			{UID: "how-to-use-hooks", Title: "How to use hooks", PublicationDate: &published},
		},
	}, nil
}

func (m *testFetcher) GetByUID(ctx context.Context, docType, uid string, opts cms.GetOptions) (*models.PostDetail, error) {
	m.lastPreviewRef = opts.PreviewRef
	if uid != "how-to-use-hooks" && opts.PreviewRef == "" {
		return nil, &cms.NotFoundError{Type: docType, UID: uid}
	}
	return &models.PostDetail{UID: uid, Title: "How to use hooks"}, nil
}
