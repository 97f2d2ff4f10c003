package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/oauth2"

	tea "github.com/charmbracelet/bubbletea"

	"ridecoach/internal/auth"
	"ridecoach/internal/coach"
	"ridecoach/internal/config"
	"ridecoach/internal/fitimport"
	"ridecoach/internal/plan"
	"ridecoach/internal/service"
	"ridecoach/internal/store"
	"ridecoach/internal/strava"
	"ridecoach/internal/tui"
)

func main() {
	summary := flag.Bool("summary", false, "print the coaching context and exit")
	importPath := flag.String("import", "", "import a FIT file or directory of FIT files and exit")
	flag.Parse()

	if err := run(*summary, *importPath); err != nil {
		log.Fatal(err)
	}
}

func run(summary bool, importPath string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		fmt.Println("No config file found. Creating example config...")
		if err := config.CreateExample(); err != nil {
			return fmt.Errorf("creating example config: %w", err)
		}
		configDir, _ := config.GetConfigDir()
		fmt.Printf("\nPlease edit the config file at:\n  %s/config.json\n\n", configDir)
		fmt.Println("You need to add your Strava API credentials.")
		fmt.Println("Get them from: https://www.strava.com/settings/api")
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Open database
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	// FIT import doesn't need Strava credentials
	if importPath != "" {
		return runImport(db, importPath)
	}

	builder := coach.NewBuilder(db, plan.NewProfileSource(cfg.Athlete))

	if summary {
		cc, err := builder.Build(ctx, time.Now(), coach.Options{})
		if err != nil {
			return err
		}
		fmt.Print(coach.FormatContext(cc))
		return nil
	}

	// Validate config (Strava credentials only matter past this point)
	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		fmt.Printf("Config validation failed: %v\n\n", err)
		fmt.Printf("Please edit the config file at:\n  %s/config.json\n", configDir)
		return nil
	}

	// Check for existing auth
	storedAuth, err := db.GetAuth()
	if errors.Is(err, store.ErrNoAuth) {
		// No auth stored, need to authenticate
		fmt.Println("No authentication found. Starting OAuth flow...")
		if err := authenticate(ctx, db, cfg); err != nil {
			return fmt.Errorf("authentication: %w", err)
		}
		// Re-fetch auth after successful authentication
		storedAuth, err = db.GetAuth()
		if err != nil {
			return fmt.Errorf("fetching auth after login: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("checking auth: %w", err)
	}

	// Create token source for API calls (with auto-refresh)
	oauthCfg := auth.NewOAuthConfig(auth.Config{
		ClientID:     cfg.Strava.ClientID,
		ClientSecret: cfg.Strava.ClientSecret,
	})

	tokenSource := newTokenSource(db, oauthCfg, storedAuth)

	// Test token is valid by getting a fresh one
	if _, err := tokenSource.Token(); err != nil {
		fmt.Println("Stored token is invalid or expired. Re-authenticating...")
		if err := authenticate(ctx, db, cfg); err != nil {
			return fmt.Errorf("re-authentication: %w", err)
		}
		// The old source still wraps the dead refresh token; rebuild it
		// around the tokens the new auth just stored.
		storedAuth, err = db.GetAuth()
		if err != nil {
			return fmt.Errorf("fetching auth after re-login: %w", err)
		}
		tokenSource = newTokenSource(db, oauthCfg, storedAuth)
	}

	// Create services
	stravaClient := strava.NewClient(tokenSource)
	syncSvc := service.NewSyncService(stravaClient, db)

	// Launch TUI
	app := tui.NewApp(db, builder, syncSvc)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

// newTokenSource wraps the stored tokens in a refreshing source that
// persists every refreshed token back to the store.
func newTokenSource(db *store.Store, oauthCfg *oauth2.Config, storedAuth *store.Auth) *auth.TokenSource {
	token := &oauth2.Token{
		AccessToken:  storedAuth.AccessToken,
		RefreshToken: storedAuth.RefreshToken,
		Expiry:       storedAuth.ExpiresAt,
	}
	return auth.NewTokenSource(oauthCfg, token, func(newToken *oauth2.Token) error {
		return db.UpdateTokens(newToken.AccessToken, newToken.RefreshToken, newToken.Expiry)
	})
}

func runImport(db *store.Store, path string) error {
	im := fitimport.NewImporter(db)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("checking import path: %w", err)
	}

	if !info.IsDir() {
		ride, err := im.ImportFile(path)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %q (%s)\n", ride.Name, ride.StartDate.Format("2006-01-02"))
		return nil
	}

	result, err := im.ImportDir(path)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d rides, skipped %d non-cycling files\n", result.Imported, result.Skipped)
	for _, e := range result.Errors {
		fmt.Printf("  error: %v\n", e)
	}
	return nil
}

func authenticate(ctx context.Context, db *store.Store, cfg *config.Config) error {
	oauthCfg := auth.NewOAuthConfig(auth.Config{
		ClientID:     cfg.Strava.ClientID,
		ClientSecret: cfg.Strava.ClientSecret,
	})

	result, err := auth.Authenticate(ctx, oauthCfg)
	if err != nil {
		return err
	}

	// Store the tokens
	storedAuth := &store.Auth{
		AthleteID:    result.AthleteID,
		AccessToken:  result.Token.AccessToken,
		RefreshToken: result.Token.RefreshToken,
		ExpiresAt:    result.Token.Expiry,
	}

	if err := db.SaveAuth(storedAuth); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}

	fmt.Println()
	fmt.Printf("Successfully authenticated as athlete %d!\n", result.AthleteID)
	return nil
}
