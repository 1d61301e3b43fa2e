package controllers

import (
	"net/http"

	"spacetraveling/app/cms"
	"spacetraveling/config"

	"github.com/gorilla/sessions"
)

const (
	previewSessionName = "spacetraveling-preview"
	previewRefKey      = "preview_ref"
)

// PreviewSession stores the CMS preview ref in a signed cookie so every
// subsequent post fetch can request the draft variant.
type PreviewSession struct {
	store *sessions.CookieStore
}

// NewPreviewSession creates a PreviewSession signing cookies with the
// given key.
func NewPreviewSession(sessionKey string) *PreviewSession {
	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0, // session cookie, gone when the browser closes
		HttpOnly: true,
	}
	return &PreviewSession{store: store}
}

// Ref returns the active preview ref, or "" when not in preview mode.
func (ps *PreviewSession) Ref(r *http.Request) string {
	session, err := ps.store.Get(r, previewSessionName)
	if err != nil {
		// A cookie signed with an old key is the same as no cookie.
		return ""
	}
	ref, _ := session.Values[previewRefKey].(string)
	return ref
}

// Set stores the preview ref on the response.
func (ps *PreviewSession) Set(w http.ResponseWriter, r *http.Request, ref string) error {
	session, _ := ps.store.Get(r, previewSessionName)
	session.Values[previewRefKey] = ref
	return session.Save(r, w)
}

// Clear removes the preview ref.
func (ps *PreviewSession) Clear(w http.ResponseWriter, r *http.Request) error {
	session, _ := ps.store.Get(r, previewSessionName)
	delete(session.Values, previewRefKey)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// PreviewController enters and exits CMS preview mode.
type PreviewController struct {
	cnf      *config.Config
	fetcher  cms.Fetcher
	previews *PreviewSession
}

// NewPreviewController creates a PreviewController.
func NewPreviewController(cnf *config.Config, fetcher cms.Fetcher, previews *PreviewSession) *PreviewController {
	return &PreviewController{cnf: cnf, fetcher: fetcher, previews: previews}
}

// Enter handles the CMS preview redirect: it verifies the previewed
// document exists under the given ref, stores the ref in the session,
// and redirects to the post page.
func (pc *PreviewController) Enter(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	uid := r.URL.Query().Get("document")
	if token == "" {
		http.Error(w, "Missing preview token", http.StatusBadRequest)
		return
	}

	target := "/"
	if uid != "" {
		post, err := pc.fetcher.GetByUID(r.Context(), pc.cnf.DocType, uid, cms.GetOptions{PreviewRef: token})
		if err != nil {
			if cms.IsNotFound(err) {
				http.Error(w, "Previewed document not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Failed to resolve preview: "+err.Error(), http.StatusBadGateway)
			return
		}
		target = post.Href()
	}

	if err := pc.previews.Set(w, r, token); err != nil {
		http.Error(w, "Failed to start preview session: "+err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Exit leaves preview mode and returns to the listing.
func (pc *PreviewController) Exit(w http.ResponseWriter, r *http.Request) {
	if err := pc.previews.Clear(w, r); err != nil {
		http.Error(w, "Failed to end preview session: "+err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
