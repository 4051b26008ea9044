package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/haven/internal/api"
	"github.com/alexanderramin/haven/internal/auth"
	"github.com/alexanderramin/haven/internal/cli"
	"github.com/alexanderramin/haven/internal/config"
	"github.com/alexanderramin/haven/internal/db"
	"github.com/alexanderramin/haven/internal/repository"
	"github.com/alexanderramin/haven/internal/service"
	"github.com/alexanderramin/haven/internal/timer"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", api.UserMessage(err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Observability is opt-in: HAVEN_LOG_CALLS or api.log_calls.
	var (
		callObserver    api.Observer            = api.NoopObserver{}
		useCaseObserver service.UseCaseObserver = service.NoopUseCaseObserver{}
	)
	if cfg.API.LogCalls {
		callObserver = api.NewLogObserver(os.Stderr)
		useCaseObserver = service.NewLogUseCaseObserver(os.Stderr)
	}

	store := auth.NewSQLiteStore(database)
	client := api.NewClient(cfg.API, store, callObserver)
	logs := repository.NewSQLitePracticeLogRepo(database)

	app := &cli.App{
		Auth:     service.NewAuthService(client, store, useCaseObserver),
		Mood:     service.NewMoodService(client, useCaseObserver),
		Chat:     service.NewChatService(client, store),
		Progress: service.NewProgressService(client, logs, useCaseObserver),
		Practice: service.NewPracticeService(service.NewProgressRecorder(client), store, logs, useCaseObserver),
		Content:  client,

		Practices: cfg.Practices,
		Notifier:  timer.BellNotifier{W: os.Stderr},
	}

	// Forms, spinners and the timer view need a terminal on both ends.
	app.IsInteractive = func() bool {
		return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
