package cachecmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"spacetraveling/config"

	"github.com/dgraph-io/badger/v4"
)

const backupDir = "data/backups"

// HandleCommand handles cache subcommands.
func HandleCommand(cnf *config.Config, args []string) {
	if len(args) < 1 {
		printCacheHelp()
		os.Exit(1)
	}

	cmd := args[0]
	switch cmd {
	case "clean":
		clean(cnf.CachePath)
	case "init":
		initDb(cnf.CachePath)
	case "backup":
		backup(cnf.CachePath)
	case "restore":
		if len(args) < 2 {
			fmt.Println("Error: backup file path required for restore")
			os.Exit(1)
		}
		restore(cnf.CachePath, args[1])
	case "help":
		printCacheHelp()
	default:
		fmt.Printf("Unknown cache command: %s\n\n", cmd)
		printCacheHelp()
		os.Exit(1)
	}
}

// printCacheHelp prints help for cache subcommands.
func printCacheHelp() {
	helpText := `Usage: spacetraveling cache <command> [options]

Commands:
  clean                          Remove the document cache
  init                           Initialize a new empty cache
  backup                         Create a backup of the cache
  restore [file]                 Restore the cache from a backup
  help                           Display this help message
`
	fmt.Println(helpText)
}

// clean removes the cache directory after confirmation. The cache is
// rebuilt lazily from the CMS, so the worst case is a cold start.
func clean(cachePath string) {
	if _, err := os.Stat(cachePath); os.IsNotExist(err) {
		fmt.Println("Cache is already clean (does not exist)")
		return
	}

	fmt.Print("Are you sure you want to remove the cache? It will be rebuilt from the CMS. [y/N] ")
	var response string
	fmt.Scanln(&response)
	if response != "y" && response != "Y" {
		fmt.Println("Operation cancelled")
		return
	}

	if err := os.RemoveAll(cachePath); err != nil {
		log.Fatalf("Failed to clean cache: %v", err)
	}
	fmt.Println("Cache cleaned successfully")
}

// initDb initializes a new empty cache.
func initDb(cachePath string) {
	if _, err := os.Stat(cachePath); err == nil {
		fmt.Println("Cache already exists. Use 'clean' first if you want to reinitialize.")
		return
	}

	if err := os.MkdirAll(cachePath, 0755); err != nil {
		log.Fatalf("Failed to create cache directory: %v", err)
	}

	opts := badger.DefaultOptions(cachePath)
	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}
	defer db.Close()

	fmt.Println("Cache initialized successfully")
}

// backup creates a backup of the cache.
func backup(cachePath string) {
	if _, err := os.Stat(cachePath); os.IsNotExist(err) {
		fmt.Println("No cache exists to backup")
		return
	}

	if err := os.MkdirAll(backupDir, 0755); err != nil {
		log.Fatalf("Failed to create backup directory: %v", err)
	}

	opts := badger.DefaultOptions(cachePath)
	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open cache: %v", err)
	}
	defer db.Close()

	backupFile := filepath.Join(backupDir, fmt.Sprintf("backup_%d.db", time.Now().Unix()))
	f, err := os.Create(backupFile)
	if err != nil {
		log.Fatalf("Failed to create backup file: %v", err)
	}
	defer f.Close()

	if _, err := db.Backup(f, 0); err != nil {
		log.Fatalf("Failed to backup cache: %v", err)
	}

	fmt.Printf("Cache backed up successfully to %s\n", backupFile)
}

// restore restores the cache from a backup.
func restore(cachePath, backupFile string) {
	if _, err := os.Stat(backupFile); os.IsNotExist(err) {
		fmt.Printf("Backup file does not exist: %s\n", backupFile)
		return
	}

	if _, err := os.Stat(cachePath); err == nil {
		fmt.Print("Existing cache found. Do you want to replace it? [y/N] ")
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Operation cancelled")
			return
		}
		if err := os.RemoveAll(cachePath); err != nil {
			log.Fatalf("Failed to remove existing cache: %v", err)
		}
	}

	if err := os.MkdirAll(cachePath, 0755); err != nil {
		log.Fatalf("Failed to create cache directory: %v", err)
	}

	opts := badger.DefaultOptions(cachePath)
	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open cache: %v", err)
	}
	defer db.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		log.Fatalf("Failed to open backup file: %v", err)
	}
	defer f.Close()

	if err := db.Load(f, 4); err != nil {
		log.Fatalf("Failed to restore cache: %v", err)
	}

	fmt.Println("Cache restored successfully")
}
