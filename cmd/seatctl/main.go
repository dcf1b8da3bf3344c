package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"

	"go-seating-client/config"
	"go-seating-client/internal/client"
	"go-seating-client/internal/session"
	"go-seating-client/pkg/logger"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const usage = `Usage: seatctl [flags] <command>

Commands:
  show                 list managed tickets and seats
  tooltip <seat-id>    print the tooltip markup of a seat
  assign <seat-id>     occupy the seat with the selected ticket
  release              release the seat held by the selected ticket

Flags:
`

func main() {
	cfg := config.LoadConfig()

	flags := pflag.NewFlagSet("seatctl", pflag.ExitOnError)
	baseURL := flags.String("base-url", cfg.Seating.BaseURL, "base URL of the site")
	area := flags.String("area", cfg.Seating.AreaSlug, "seating area slug")
	ticket := flags.String("ticket", "", "ticket ID to preselect")
	yes := flags.BoolP("yes", "y", false, "confirm without prompting")
	logLevel := flags.String("log-level", cfg.Log.Level, "log level (debug, info, warn, error)")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flags.PrintDefaults()
	}
	_ = flags.Parse(os.Args[1:])

	if err := logger.SetLevel(*logLevel); err != nil {
		logger.L.Warn("Invalid log level, keeping default", zap.String("level", *logLevel))
	}
	defer logger.L.Sync()

	cfg.Seating.BaseURL = *baseURL
	cfg.Seating.AreaSlug = *area

	args := flags.Args()
	if len(args) == 0 || cfg.Seating.AreaSlug == "" {
		flags.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var confirmer client.Confirmer = &client.PromptConfirmer{In: os.Stdin, Out: os.Stdout}
	if *yes {
		confirmer = client.AlwaysConfirm
	}

	if err := run(ctx, cfg.Seating, confirmer, *ticket, args, os.Stdout); err != nil {
		logger.L.Error("Command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.SeatingConfig, confirmer client.Confirmer, ticketID string, args []string, out io.Writer) error {
	c, err := client.NewClient(cfg)
	if err != nil {
		return err
	}

	ref := cfg.ManagePath()
	if ticketID != "" {
		ref = client.ReloadTarget(&url.URL{Path: ref}, ticketID).String()
	}

	s := session.New(c, confirmer)
	if err := s.Open(ctx, ref); err != nil {
		return err
	}

	return execute(ctx, s, args, out)
}
