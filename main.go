package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"spacetraveling/app/cache"
	"spacetraveling/app/cms"
	"spacetraveling/app/routes"
	"spacetraveling/cachecmd"
	"spacetraveling/config"
	"spacetraveling/sitegen"
)

const CliVersion = "1.0.0"

var exit = os.Exit

func main() {
	RealMain()
}

func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("spacetraveling version %s\n", CliVersion)
	case "serve":
		serve()
	case "build":
		build()
	case "cache":
		cachecmd.HandleCommand(mustLoadConfig(), os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		exit(1)
	}
}

func printHelp() {
	helpText := `Usage: spacetraveling <command> [options]
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve                          Run the blog server.
  build <output_directory>       Render the whole site to static files.
  cache <subcommand>             Manage the document cache (clean, init, backup, restore).
`
	fmt.Println(helpText)
}

func mustLoadConfig() *config.Config {
	cnf, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	return cnf
}

// serve runs the HTTP server until SIGINT or SIGTERM, then drains
// in-flight requests before exiting.
func serve() {
	cnf := mustLoadConfig()

	docCache, err := cache.Open(cnf.CachePath, cnf.CacheTTL)
	if err != nil {
		log.Fatalf("Failed to open document cache: %v", err)
	}
	defer docCache.Close()

	client := cms.NewClient(cnf.APIBaseURL, cnf.AccessToken)
	fetcher := cache.NewCachedFetcher(client, docCache)

	router := routes.SetupRoutes(cnf, fetcher)
	srv := &http.Server{
		Addr:    cnf.Addr,
		Handler: router,
	}

	go func() {
		log.Printf("Starting blog server on %s", cnf.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown error: %v", err)
	}
}

// build renders every page to the output directory.
func build() {
	if len(os.Args) < 3 {
		fmt.Println("Error: output directory required for build command")
		exit(1)
		return
	}
	out := os.Args[2]

	cnf := mustLoadConfig()

	docCache, err := cache.Open(cnf.CachePath, cnf.CacheTTL)
	if err != nil {
		log.Fatalf("Failed to open document cache: %v", err)
	}
	defer docCache.Close()

	client := cms.NewClient(cnf.APIBaseURL, cnf.AccessToken)
	fetcher := cache.NewCachedFetcher(client, docCache)

	builder := sitegen.NewBuilder(cnf, fetcher)
	manifest, err := builder.Build(context.Background(), out)
	if err != nil {
		log.Fatalf("Build failed: %v", err)
	}

	log.Printf("Built %d files into %s", len(manifest.Files), out)
}
