// Command tripdb manages the trip database: create it, wipe it, seed sample data or
// print statistics.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/mmynk/tripsplit/internal/auth"
	"github.com/mmynk/tripsplit/internal/config"
	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/service"
	"github.com/mmynk/tripsplit/internal/storage/sqlite"
	"github.com/mmynk/tripsplit/pkg/logging"
)

const usage = `Usage: tripdb [flags] [command]

Commands:
  init    Initialize the database (default)
  reset   Reset the database (delete all data), requires -yes
  sample  Initialize and add sample data
  stats   Show database statistics

Flags:
`

func main() {
	cfg := config.Load()

	fs := flag.NewFlagSet("tripdb", flag.ExitOnError)
	dbPath := fs.String("db", cfg.DBPath, "Path to the SQLite database")
	yes := fs.Bool("yes", false, "Confirm destructive commands")
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])

	logging.Setup(cfg.LogLevel)

	command := "init"
	if fs.NArg() > 0 {
		command = strings.ToLower(fs.Arg(0))
	}

	if err := run(context.Background(), os.Stdout, command, *dbPath, *yes, cfg); err != nil {
		slog.Error("Command failed", "command", command, "error", err)
		if errors.Is(err, errUnknownCommand) {
			fs.Usage()
		}
		os.Exit(1)
	}
}

var errUnknownCommand = errors.New("unknown command")

func run(ctx context.Context, out io.Writer, command, dbPath string, yes bool, cfg *config.Config) error {
	switch command {
	case "init", "reset", "sample", "stats":
	default:
		return errUnknownCommand
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch command {
	case "init":
		fmt.Fprintln(out, "Database tables created")
		printFileSize(out, dbPath)

	case "reset":
		if !yes {
			fmt.Fprintln(out, "This will delete all data in the database. Re-run with -yes to confirm.")
			break
		}
		if err := store.Reset(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "Database reset")

	case "sample":
		svc := service.NewTripService(store, auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL), nil, metrics.New())
		seeded, err := svc.SeedSampleData(ctx)
		if err != nil {
			return err
		}
		if !seeded {
			fmt.Fprintln(out, "Database already contains data, skipping sample data")
		} else {
			fmt.Fprintf(out, "Sample data added (trip %s)\n", service.SampleTripID)
		}
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Database statistics:")
	fmt.Fprintf(out, "  Trips:    %s\n", humanize.Comma(int64(stats.TripCount)))
	fmt.Fprintf(out, "  Expenses: %s\n", humanize.Comma(int64(stats.ExpenseCount)))
	if stats.TotalAmount > 0 {
		fmt.Fprintf(out, "  Total amount tracked: %s\n", humanize.FormatFloat("#,###.##", stats.TotalAmount))
	}
	return nil
}

func printFileSize(out io.Writer, dbPath string) {
	info, err := os.Stat(dbPath)
	if err != nil {
		return
	}
	fmt.Fprintf(out, "Database file: %s (%s)\n", dbPath, humanize.Bytes(uint64(info.Size())))
}
