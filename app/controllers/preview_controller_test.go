package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"spacetraveling/app/cms"
	"spacetraveling/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func previewFetcher() *mockFetcher {
	return &mockFetcher{
		getFn: func(ctx context.Context, docType, uid string, opts cms.GetOptions) (*models.PostDetail, error) {
			if opts.PreviewRef == "" || uid != "draft-post" {
				return nil, &cms.NotFoundError{Type: docType, UID: uid}
			}
			return &models.PostDetail{UID: uid, Title: "Draft Post"}, nil
		},
	}
}

func TestPreviewEnter(t *testing.T) {
	previews := NewPreviewSession("test-session-key")
	pc := NewPreviewController(testConfig(), previewFetcher(), previews)

	req := httptest.NewRequest("GET", "/preview?token=ref-123&document=draft-post", nil)
	rec := httptest.NewRecorder()
	pc.Enter(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/posts/draft-post", rec.Header().Get("Location"))
	require.NotEmpty(t, rec.Result().Cookies())

	// The stored ref comes back on a follow-up request carrying the cookie.
	follow := httptest.NewRequest("GET", "/posts/draft-post", nil)
	for _, c := range rec.Result().Cookies() {
		follow.AddCookie(c)
	}
	assert.Equal(t, "ref-123", previews.Ref(follow))
}

func TestPreviewEnterWithoutDocument(t *testing.T) {
	previews := NewPreviewSession("test-session-key")
	pc := NewPreviewController(testConfig(), previewFetcher(), previews)

	req := httptest.NewRequest("GET", "/preview?token=ref-123", nil)
	rec := httptest.NewRecorder()
	pc.Enter(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestPreviewEnterMissingToken(t *testing.T) {
	previews := NewPreviewSession("test-session-key")
	pc := NewPreviewController(testConfig(), previewFetcher(), previews)

	req := httptest.NewRequest("GET", "/preview?document=draft-post", nil)
	rec := httptest.NewRecorder()
	pc.Enter(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreviewEnterUnknownDocument(t *testing.T) {
	previews := NewPreviewSession("test-session-key")
	pc := NewPreviewController(testConfig(), previewFetcher(), previews)

	req := httptest.NewRequest("GET", "/preview?token=ref-123&document=missing", nil)
	rec := httptest.NewRecorder()
	pc.Enter(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPreviewExit(t *testing.T) {
	previews := NewPreviewSession("test-session-key")
	pc := NewPreviewController(testConfig(), previewFetcher(), previews)

	// Enter first to obtain a session cookie.
	enterReq := httptest.NewRequest("GET", "/preview?token=ref-123&document=draft-post", nil)
	enterRec := httptest.NewRecorder()
	pc.Enter(enterRec, enterReq)

	exitReq := httptest.NewRequest("GET", "/preview/exit", nil)
	for _, c := range enterRec.Result().Cookies() {
		exitReq.AddCookie(c)
	}
	exitRec := httptest.NewRecorder()
	pc.Exit(exitRec, exitReq)

	require.Equal(t, http.StatusSeeOther, exitRec.Code)
	assert.Equal(t, "/", exitRec.Header().Get("Location"))

	// After exit the session no longer carries a ref.
	follow := httptest.NewRequest("GET", "/", nil)
	for _, c := range exitRec.Result().Cookies() {
		follow.AddCookie(c)
	}
	assert.Empty(t, previews.Ref(follow))
}

func TestPreviewRefWithTamperedCookie(t *testing.T) {
	previews := NewPreviewSession("test-session-key")

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: previewSessionName, Value: "forged"})
	assert.Empty(t, previews.Ref(req))
}
