package sitegen

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"spacetraveling/app/cms"
	"spacetraveling/app/feeds"
	"spacetraveling/app/models"
	"spacetraveling/app/services"
	"spacetraveling/config"

	"golang.org/x/crypto/blake2b"
)

// Manifest records what a build emitted: one blake2b-256 hex digest per
// file, keyed by site-relative path. Deploy tooling diffs two manifests
// to upload only what changed.
type Manifest struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Files       map[string]string `json:"files"`
}

// Builder renders the whole site to a directory of static files.
type Builder struct {
	cnf       *config.Config
	fetcher   cms.Fetcher
	basePath  string
	templates map[string]*template.Template
}

// NewBuilder creates a Builder.
func NewBuilder(cnf *config.Config, fetcher cms.Fetcher) *Builder {
	return NewBuilderWithPath(cnf, fetcher, "")
}

// NewBuilderWithPath creates a Builder loading templates and static
// assets from a custom base path, used by tests.
func NewBuilderWithPath(cnf *config.Config, fetcher cms.Fetcher, basePath string) *Builder {
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
	return &Builder{cnf: cnf, fetcher: fetcher, basePath: basePath, templates: templates}
}

// Build fetches every post, renders the listing page, each post page,
// the feeds and the static assets into out, and writes the manifest.
// A fetch failure aborts the build; a partial site is never a valid
// deliverable.
func (b *Builder) Build(ctx context.Context, out string) (*Manifest, error) {
	listing := services.NewListingService(b.fetcher, b.cnf.DocType, b.cnf.PageSize)
	for listing.HasMore() {
		if _, err := listing.LoadMore(ctx); err != nil {
			return nil, fmt.Errorf("sitegen: fetch listing: %w", err)
		}
	}
	posts := listing.Posts()

	manifest := &Manifest{
		GeneratedAt: time.Now().UTC(),
		Files:       make(map[string]string),
	}

	if err := b.renderIndex(manifest, out, posts); err != nil {
		return nil, err
	}

	postService := services.NewPostService(b.fetcher, b.cnf.DocType)
	for _, summary := range posts {
		if err := b.renderPost(ctx, manifest, out, postService, summary.UID); err != nil {
			return nil, err
		}
	}

	if err := b.renderFeeds(manifest, out, posts); err != nil {
		return nil, err
	}
	if err := b.copyStatic(manifest, out); err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("sitegen: marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(out, "manifest.json"), data, 0644); err != nil {
		return nil, fmt.Errorf("sitegen: write manifest: %w", err)
	}

	return manifest, nil
}

func (b *Builder) renderIndex(manifest *Manifest, out string, posts []models.PostSummary) error {
	data := struct {
		Site       *config.Config
		Posts      []models.PostSummary
		NextCursor string
	}{
		Site:  b.cnf,
		Posts: posts,
	}

	var buf bytes.Buffer
	if err := b.templates["index"].ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("sitegen: render index: %w", err)
	}
	return b.writeFile(manifest, out, "index.html", buf.Bytes())
}

func (b *Builder) renderPost(ctx context.Context, manifest *Manifest, out string, postService *services.PostService, uid string) error {
	view, err := postService.GetPost(ctx, uid, "")
	if err != nil {
		return fmt.Errorf("sitegen: fetch post %s: %w", uid, err)
	}

	data := struct {
		Site        *config.Config
		Post        *models.PostDetail
		ReadingTime int
		Pagination  models.Pagination
		Preview     bool
	}{
		Site:        b.cnf,
		Post:        view.Post,
		ReadingTime: view.ReadingTime,
		Pagination:  view.Pagination,
	}

	var buf bytes.Buffer
	if err := b.templates["show"].ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("sitegen: render post %s: %w", uid, err)
	}
	return b.writeFile(manifest, out, filepath.Join("posts", uid, "index.html"), buf.Bytes())
}

func (b *Builder) renderFeeds(manifest *Manifest, out string, posts []models.PostSummary) error {
	rss, err := feeds.RSS(b.cnf, posts)
	if err != nil {
		return fmt.Errorf("sitegen: render rss: %w", err)
	}
	if err := b.writeFile(manifest, out, "rss.xml", rss); err != nil {
		return err
	}

	sitemap, err := feeds.Sitemap(b.cnf, posts)
	if err != nil {
		return fmt.Errorf("sitegen: render sitemap: %w", err)
	}
	return b.writeFile(manifest, out, "sitemap.xml", sitemap)
}

// copyStatic mirrors the static assets directory into the build. A
// missing directory is fine; not every deployment has one.
func (b *Builder) copyStatic(manifest *Manifest, out string) error {
	staticDir := filepath.Join(b.basePath, "static")
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		return nil
	}

	return filepath.WalkDir(staticDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(staticDir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return b.writeFile(manifest, out, filepath.Join("static", rel), data)
	})
}

func (b *Builder) writeFile(manifest *Manifest, out, rel string, data []byte) error {
	path := filepath.Join(out, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("sitegen: mkdir for %s: %w", rel, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("sitegen: write %s: %w", rel, err)
	}

	sum := blake2b.Sum256(data)
	manifest.Files[filepath.ToSlash(rel)] = hex.EncodeToString(sum[:])
	return nil
}
