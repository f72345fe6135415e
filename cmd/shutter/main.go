package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/shutter/internal/adapter"
	"github.com/mmcdole/shutter/internal/domain"
	"github.com/mmcdole/shutter/internal/flickr"
	"github.com/mmcdole/shutter/internal/search"
	"github.com/mmcdole/shutter/internal/store"
	"github.com/mmcdole/shutter/internal/tui"
	"github.com/mmcdole/shutter/internal/tui/styles"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

// observerBuffer is the number of snapshots queued for the UI
const observerBuffer = 16

func main() {
	var showVersion, forget bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&forget, "forget", false, "clear the saved search and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("shutter %s\n", Version)
		return
	}

	if err := run(forget); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(forget bool) error {
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, closeLog, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("starting shutter", "version", Version)

	history, err := store.NewHistoryStore(cfg.Storage.Dir, logger)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer history.Close()

	if forget {
		if err := history.Clear(); err != nil {
			return fmt.Errorf("failed to clear saved search: %w", err)
		}
		fmt.Println("✓ Saved search cleared.")
		return nil
	}

	if !cfg.IsConfigured() {
		if err := runSetupFlow(cfg, logger); err != nil {
			return err
		}
	}

	client := flickr.NewClient(flickr.ClientConfig{
		BaseURL: cfg.Flickr.BaseURL,
		APIKey:  cfg.Flickr.APIKey,
		Timeout: cfg.Flickr.Timeout,
	}, nil, logger)

	controller := search.NewController(client, history, search.Config{
		PageSize:     cfg.Search.PageSize,
		DefaultQuery: cfg.Search.DefaultQuery,
	}, logger)
	details := search.NewDetailController(client, logger)

	updates := make(chan domain.SearchState, observerBuffer)
	unsubscribe := controller.Subscribe(tui.NewChannelObserver(updates))
	defer unsubscribe()

	model := tui.NewModel(controller, details, updates, tui.Options{
		ImageBaseURL:  cfg.Flickr.ImageBaseURL,
		ShowInspector: cfg.UI.ShowInspector,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	controller.Cancel()
	logger.Info("shutting down")
	return nil
}

// runSetupFlow asks for an API key until one is accepted, then saves it
func runSetupFlow(cfg *adapter.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to Shutter!")
	fmt.Println("A Flickr API key is required: https://www.flickr.com/services/apps/create/")
	fmt.Println()

	for {
		fmt.Print("API key: ")
		keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println() // Add newline after hidden input
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}

		apiKey := strings.TrimSpace(string(keyBytes))
		if apiKey == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}

		client := flickr.NewClient(flickr.ClientConfig{
			BaseURL: cfg.Flickr.BaseURL,
			APIKey:  apiKey,
			Timeout: cfg.Flickr.Timeout,
		}, nil, logger)

		if err := checkKeyWithSpinner(client); err != nil {
			fmt.Printf("✗ Key check failed: %v\n", err)
			var fail *flickr.FailResponse
			if !errors.As(err, &fail) {
				// Not a rejection; the key may still be good
				return fmt.Errorf("could not reach Flickr: %w", err)
			}
			fmt.Println("Please check the key and try again.")
			fmt.Println()
			continue
		}

		cfg.Flickr.APIKey = apiKey
		break
	}

	if err := adapter.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	return nil
}

// checkKeyWithSpinner runs a one-item search with a visual spinner
func checkKeyWithSpinner(client *flickr.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resultCh := make(chan error, 1)
	go func() {
		_, err := client.Search(ctx, search.DefaultQuery, 1, 1)
		resultCh <- err
	}()

	frame := 0
	fmt.Printf("\r%s Checking key...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if err == nil {
				fmt.Println("✓ Key accepted")
			}
			return err

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Checking key...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
		}
	}
}
