// Command geodev serves the projects and tasks API.
//
// Usage:
//
//	geodev [-config path]                   serve the API
//	geodev dburl set [-config path] <url>   store the database URL in the keyring
//	geodev dburl delete [-config path]      remove it again
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nhle/geodev/internal/app"
	"github.com/nhle/geodev/internal/config"
	"github.com/nhle/geodev/internal/credential"
	"github.com/nhle/geodev/internal/logging"
)

const defaultKeyringKey = "database-url"

func main() {
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "dburl" {
		if err := runDBURL(args[1:]); err != nil {
			exitf("dburl: %v", err)
		}
		return
	}

	if err := serve(args); err != nil {
		exitf("geodev: %v", err)
	}
}

func serve(args []string) error {
	fs := flag.NewFlagSet("geodev", flag.ExitOnError)
	configPath := fs.String("config", os.Getenv("GEODEV_CONFIG"), "path to a YAML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger, keyringOpener(cfg.Credential))
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.ListenAndServe(ctx); err != nil {
		return err
	}
	logger.Info("bye")
	return nil
}

func runDBURL(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("expected set or delete")
	}
	action, rest := args[0], args[1:]

	fs := flag.NewFlagSet("geodev dburl "+action, flag.ExitOnError)
	configPath := fs.String("config", os.Getenv("GEODEV_CONFIG"), "path to a YAML config file")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	key := cfg.Database.KeyringKey
	if key == "" {
		key = defaultKeyringKey
	}

	ring, err := credential.Open(keyringOptions(cfg.Credential))
	if err != nil {
		return err
	}

	switch action {
	case "set":
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: geodev dburl set <url>")
		}
		if err := ring.Set(key, fs.Arg(0)); err != nil {
			return err
		}
		fmt.Printf("stored database url under %q; set database.keyring_key to use it\n", key)
	case "delete":
		if err := ring.Delete(key); err != nil {
			return err
		}
		fmt.Printf("removed %q\n", key)
	default:
		return fmt.Errorf("unknown action %q", action)
	}
	return nil
}

func keyringOptions(cfg config.CredentialConfig) credential.Options {
	return credential.Options{FileDir: cfg.FileDir, FilePassword: cfg.FilePassword}
}

func keyringOpener(cfg config.CredentialConfig) app.KeyringOpener {
	return func() (config.SecretGetter, error) {
		return credential.Open(keyringOptions(cfg))
	}
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
