package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/locallink/locallink-go/pkg/cart"
	"github.com/locallink/locallink-go/pkg/gateway"
	"github.com/locallink/locallink-go/pkg/keystore"
	"github.com/locallink/locallink-go/pkg/logger"
	"github.com/locallink/locallink-go/pkg/redisconn"
	"github.com/locallink/locallink-go/pkg/session"
)

// app bundles the wired SDK components shared by all commands. The
// session and cart are the single process-wide instances; commands
// only ever mutate them through their transitions.
type app struct {
	cfg      Config
	log      *slog.Logger
	store    keystore.Store
	sessions *session.Manager
	cart     *cart.Cart
	api      *gateway.Client
	printer  *message.Printer
}

var (
	configPath string
	verbose    bool

	cli app
)

var rootCmd = &cobra.Command{
	Use:           "locallink",
	Short:         "LocalLink marketplace client",
	Long:          "Command-line client for the LocalLink local-marketplace backend: discover nearby producers, manage a cart, place orders and watch for live order updates.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return cli.init(cmd.Context())
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		if cli.store != nil {
			_ = cli.store.Close()
		}
	},
}

func (a *app) init(ctx context.Context) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	a.log = logger.New(
		logger.WithLevel(level),
		logger.WithSentry(cfg.SentryDSN, cfg.Environment),
	)
	a.printer = message.NewPrinter(language.English)

	if cfg.RedisURL != "" {
		client, err := redisconn.Open(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect redis store: %w", err)
		}
		a.store = keystore.NewRedis(client)
	} else {
		dir := cfg.StorageDir
		if dir == "" {
			if dir, err = keystore.DefaultDir(); err != nil {
				return fmt.Errorf("resolve storage dir: %w", err)
			}
		}
		if a.store, err = keystore.NewFile(dir); err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
	}

	if a.sessions, err = session.New(ctx, a.store); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if a.cart, err = cart.New(ctx, a.store); err != nil {
		return fmt.Errorf("restore cart: %w", err)
	}

	a.api, err = gateway.New(cfg.APIURL,
		gateway.WithTokenSource(a.sessions.Token),
		gateway.WithTimeout(time.Duration(cfg.RequestTimeout)),
		gateway.WithLogger(a.log),
		gateway.WithOnUnauthorized(func(ctx context.Context) {
			a.log.Warn("session rejected by backend, logging out")
			_ = a.sessions.Logout(ctx)
		}),
	)
	if err != nil {
		return fmt.Errorf("configure gateway: %w", err)
	}
	return nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.config/locallink/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)
	rootCmd.AddCommand(productsCmd, cartCmd, orderCmd, ordersCmd, reviewsCmd, watchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
