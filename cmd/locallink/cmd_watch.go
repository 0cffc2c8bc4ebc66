package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/locallink/locallink-go/pkg/notify"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch for live order updates",
	Long:  "Keeps a notification connection open and prints order status updates as they arrive. Stop with Ctrl-C.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !cli.sessions.IsAuthenticated() {
			return errors.New("please log in first")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		alerts := make(chan notify.Alert, 16)
		channel, err := notify.New(cli.cfg.WSURL, cli.sessions, func(a notify.Alert) {
			select {
			case alerts <- a:
			case <-ctx.Done():
			}
		}, notify.WithLogger(cli.log))
		if err != nil {
			return err
		}

		fmt.Println("Watching for order updates... (Ctrl-C to stop)")
		return watch(ctx, channel, alerts, os.Stdout)
	},
}

// alertRunner is the slice of notify.Channel the watch loop drives.
type alertRunner interface {
	Run(ctx context.Context) error
}

// watch runs the notification channel alongside a printer goroutine, so
// a stalled writer cannot delay frame handling.
func watch(ctx context.Context, runner alertRunner, alerts <-chan notify.Alert, out io.Writer) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return runner.Run(ctx)
	})
	g.Go(func() error {
		for {
			select {
			case a := <-alerts:
				fmt.Fprintln(out, a.Message)
			case <-ctx.Done():
				return nil
			}
		}
	})
	return g.Wait()
}
