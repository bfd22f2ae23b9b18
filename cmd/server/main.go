package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/marcos010894/innobyte-labels/internal/api"
	"github.com/marcos010894/innobyte-labels/internal/batch"
	"github.com/marcos010894/innobyte-labels/internal/store"
)

// Version is set during build via ldflags
var Version = "dev"

func main() {
	port := getPort()
	storePath := getStorePath()

	// Initialize template store
	templates, err := store.New(storePath)
	if err != nil {
		log.Fatalf("Failed to open template store: %v", err)
	}

	// Create document driver and job queue
	driver := batch.NewDriver()
	queue := batch.NewQueue(driver)
	defer queue.Stop()

	// Create API server
	server := api.NewServer(templates, driver, queue)

	// Start server in goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", port)
		log.Printf("Starting label engine API on %s (templates: %s)", addr, storePath)
		if err := server.Run(addr); err != nil {
			serverErrChan <- err
		}
	}()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrChan:
		log.Fatalf("Server error: %v", err)
	case <-sigChan:
		log.Println("Shutting down...")
		queue.Stop()
		os.Exit(0)
	}
}

func getPort() string {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		return port
	}

	// Check command line args
	for i, arg := range os.Args {
		if arg == "--port" && i+1 < len(os.Args) {
			return os.Args[i+1]
		}
	}

	return "12212"
}

// getStorePath returns the path to the template store file.
// It tries to place it next to the executable, or falls back to current directory.
func getStorePath() string {
	if path := os.Getenv("TEMPLATE_STORE"); path != "" {
		return path
	}

	// First, try to get the executable path and place the store next to it
	if exePath, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exePath)
		storePath := filepath.Join(exeDir, "label_templates.json")

		if info, err := os.Stat(exeDir); err == nil && info.IsDir() {
			// Try to create a test file to check write permissions
			testFile := filepath.Join(exeDir, ".label-engine-write-test")
			if f, err := os.Create(testFile); err == nil {
				f.Close()
				os.Remove(testFile)
				return storePath
			}
		}
	}

	// Fallback: use current directory
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, "label_templates.json")
	}

	// Last resort: use home directory config (Unix) or AppData (Windows)
	var configDir string
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			configDir = filepath.Join(appData, "label-engine")
		} else {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "label-engine")
		}
	} else {
		if home := os.Getenv("HOME"); home != "" {
			configDir = filepath.Join(home, ".config", "label-engine")
		}
	}

	if configDir != "" {
		os.MkdirAll(configDir, 0755)
		return filepath.Join(configDir, "label_templates.json")
	}

	return "label_templates.json"
}
