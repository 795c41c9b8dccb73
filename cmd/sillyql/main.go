package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/leengari/sillyql/internal/config"
	"github.com/leengari/sillyql/internal/domain/schema"
	"github.com/leengari/sillyql/internal/engine"
	"github.com/leengari/sillyql/internal/logging"
	"github.com/leengari/sillyql/internal/network"
	"github.com/leengari/sillyql/internal/repl"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(os.Args[1:], os.Getenv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if cfg.Help {
		printUsage()
		return 0
	}

	level, _ := cfg.Level()
	logger, closeFn := logging.SetupLogger(logging.Options{
		Level:  level,
		Output: os.Stderr,
		SeqURL: cfg.SeqURL,
	})
	defer closeFn()
	slog.SetDefault(logger)

	eng := engine.New(schema.NewDatabase("main"), cfg.Execution())
	// Register logging observer for lifecycle tracing
	eng.AddObserver(engine.NewLoggingObserver(logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Server {
		slog.Info("Starting server mode", slog.String("addr", cfg.Addr))
		if err := network.NewServer(eng, cfg.Quiet).Serve(ctx, cfg.Addr); err != nil {
			slog.Error("server failed", slog.Any("error", err))
			return 1
		}
		return 0
	}

	slog.Debug("Starting REPL mode", slog.Bool("quiet", cfg.Quiet))
	if err := repl.Start(ctx, eng, os.Stdin, os.Stdout, repl.Options{Quiet: cfg.Quiet}); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("session failed", slog.Any("error", err))
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Println("Usage: sillyql [options] < commands")
	fmt.Println()
	fmt.Println("Supported options:")
	fmt.Println("  -q, --quiet          print only counts and messages, no rows")
	fmt.Println("  -h, --help           show this message")
	fmt.Println("      --log-level L    debug, info, warn or error (default warn)")
	fmt.Println("      --seq-url URL    ship logs to a Seq server")
	fmt.Println("      --server         serve HTTP instead of reading stdin")
	fmt.Println("      --addr ADDR      listen address in server mode (default :4444)")
	fmt.Println("      --no-index       ignore indexes; every scan is a full scan")
	fmt.Println("      --join ALGO      join without an index: hash or nested_loop")
}
