package routes

import (
	"net/http"

	"spacetraveling/app/cms"
	"spacetraveling/app/controllers"
	"spacetraveling/app/middleware"
	"spacetraveling/config"

	"github.com/gorilla/mux"
)

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(cnf *config.Config, fetcher cms.Fetcher) *mux.Router {
	return SetupRoutesWithPath(cnf, fetcher, "")
}

// SetupRoutesWithPath is SetupRoutes with a custom template base path,
// used by tests.
func SetupRoutesWithPath(cnf *config.Config, fetcher cms.Fetcher, basePath string) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// Preview mode needs a session key to sign its cookie; without one
	// the preview routes are simply not registered.
	var previews *controllers.PreviewSession
	if cnf.SessionKey != "" {
		previews = controllers.NewPreviewSession(cnf.SessionKey)
	}

	postController := controllers.NewPostControllerWithPath(cnf, fetcher, previews, basePath)
	feedController := controllers.NewFeedController(cnf, fetcher)

	// API routes with JSON content type.
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)
	api.HandleFunc("/posts", postController.Index).Methods("GET")
	api.HandleFunc("/posts/{uid}", postController.Show).Methods("GET")

	// Feeds.
	router.HandleFunc("/rss.xml", feedController.RSS).Methods("GET")
	router.HandleFunc("/sitemap.xml", feedController.Sitemap).Methods("GET")

	// Preview mode.
	if previews != nil {
		previewController := controllers.NewPreviewController(cnf, fetcher, previews)
		router.HandleFunc("/preview", previewController.Enter).Methods("GET")
		router.HandleFunc("/preview/exit", previewController.Exit).Methods("GET")
	}

	// Serve static files.
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// Web routes.
	router.HandleFunc("/", postController.Index).Methods("GET")
	router.HandleFunc("/posts", postController.Index).Methods("GET")
	router.HandleFunc("/posts/{uid}", postController.Show).Methods("GET")

	return router
}
