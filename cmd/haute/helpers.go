package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/digitalhaute/internal/common"
	"github.com/Veraticus/digitalhaute/internal/config"
	"github.com/Veraticus/digitalhaute/internal/engine"
	"github.com/Veraticus/digitalhaute/internal/images"
	"github.com/Veraticus/digitalhaute/internal/labelscan"
	"github.com/Veraticus/digitalhaute/internal/sheets"
	"github.com/Veraticus/digitalhaute/internal/shopify"
	"github.com/Veraticus/digitalhaute/internal/storage"
	"github.com/Veraticus/digitalhaute/internal/store"
)

// scan.api_key is read from HAUTE_SCAN_API_KEY.
var envKeyReplacer = strings.NewReplacer(".", "_")

// app is everything a command needs: the engine plus the resources to
// release when the command returns.
type app struct {
	engine  *engine.Engine
	kv      storage.KV
	cfg     config.Config
	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// openKV opens the SQLite catalog, creating and migrating it as needed.
// An ephemeral store lives only in memory.
func openKV(ctx context.Context, cfg config.Config, ephemeral bool) (storage.KV, func(), error) {
	if ephemeral {
		slog.Info("Using in-memory catalog; nothing will be saved")
		return storage.NewMemoryKV(), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o750); err != nil {
		return nil, nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	kv, err := storage.NewSQLiteKV(cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := kv.Migrate(ctx); err != nil {
		_ = kv.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return kv, func() {
		if err := kv.Close(); err != nil {
			slog.Warn("Failed to close database", "error", err)
		}
	}, nil
}

// newApp wires the engine to whichever integrations are configured. Missing
// integrations leave the matching features disabled rather than failing.
func newApp(cmd *cobra.Command) (*app, error) {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	ephemeral, _ := cmd.Flags().GetBool("ephemeral")
	kv, closeKV, err := openKV(ctx, cfg, ephemeral)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, kv: kv, closers: []func(){closeKV}}
	logger := slog.Default()
	opts := []engine.Option{engine.WithLogger(logger)}

	if cfg.Scan.APIKey != "" {
		scanner, err := labelscan.New(cfg.Scan, logger)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to configure label scanning: %w", err)
		}
		a.closers = append(a.closers, scanner.Close)
		opts = append(opts, engine.WithScanner(scanner))
	} else {
		slog.Debug("Label scanning disabled; scan.api_key is not set")
	}

	if cfg.ShopifyBaseURL != "" {
		client, err := shopify.NewClient(cfg.ShopifyBaseURL)
		if err != nil {
			a.Close()
			return nil, err
		}
		opts = append(opts, engine.WithShopify(client))
	}

	if cfg.CloudinaryURL != "" {
		host, err := images.NewCloudinary(cfg.CloudinaryURL, viper.GetString("cloudinary.folder"), logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		opts = append(opts, engine.WithImages(host))
	}

	if writer, err := newSheetsWriter(ctx, logger); err == nil {
		opts = append(opts, engine.WithSheets(writer))
	} else if !errors.Is(err, common.ErrMissingConfig) {
		slog.Warn("Google Sheets export disabled", "error", err)
	}

	a.engine = engine.New(store.New(kv), opts...)
	return a, nil
}

func newSheetsWriter(ctx context.Context, logger *slog.Logger) (*sheets.Writer, error) {
	sheetsCfg, err := config.LoadSheetsConfig()
	if err != nil {
		return nil, err
	}
	return sheets.NewWriter(ctx, *sheetsCfg, logger)
}

// withApp runs fn against a freshly wired app and releases it afterwards.
func withApp(fn func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd, a, args)
	}
}

func saveConfig() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(home, ".config", "haute")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := viper.ConfigFileUsed()
	if configPath == "" {
		configPath = filepath.Join(configDir, "config.yaml")
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		return fmt.Errorf("unsupported platform")
	}

	return cmd.Start()
}

func money(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}

func percent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(0) + "%"
}
