package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/ticketkit/ticket-store/internal/broker"
	"github.com/ticketkit/ticket-store/internal/cli"
	"github.com/ticketkit/ticket-store/internal/clock"
	"github.com/ticketkit/ticket-store/internal/config"
	"github.com/ticketkit/ticket-store/internal/events"
	"github.com/ticketkit/ticket-store/internal/observability"
	"github.com/ticketkit/ticket-store/internal/service"
	"github.com/ticketkit/ticket-store/internal/store"
	"github.com/ticketkit/ticket-store/internal/worker"
	apperrors "github.com/ticketkit/ticket-store/pkg/util"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return apperrors.ExitInternal
	}

	flags := pflag.NewFlagSet("ticketctl", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	format := flags.StringP("format", "f", cfg.Output.Format, "output format: text, json or yaml")
	script := flags.String("script", "", "read commands from this file instead of stdin")
	logLevel := flags.String("log-level", cfg.Logger.Level, "log level")
	publish := flags.Bool("publish", cfg.Redis.Enabled, "publish ticket events to redis")
	showVersion := flags.Bool("version", false, "print version and exit")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return apperrors.ExitOK
		}
		return apperrors.ExitValidation
	}
	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", cfg.App.Name, cfg.App.Version)
		return apperrors.ExitOK
	}
	cfg.Output.Format = *format
	cfg.Logger.Level = *logLevel
	cfg.Redis.Enabled = *publish
	if err := cfg.Validate(); err != nil {
		log.Printf("invalid configuration: %v", err)
		return apperrors.ExitValidation
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Printf("failed to init logger: %v", err)
		return apperrors.ExitInternal
	}
	defer logger.Sync() //nolint:errcheck
	logger = logger.With(zap.String("app", cfg.App.Name), zap.String("env", cfg.App.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	input, interactive, closeInput, err := openInput(*script, stdin)
	if err != nil {
		logger.Error("failed to open script", zap.String("path", *script), zap.Error(err))
		return apperrors.ExitInternal
	}
	defer closeInput()

	renderer, err := cli.NewRenderer(cfg.Output.Format)
	if err != nil {
		logger.Error("failed to build renderer", zap.Error(err))
		return apperrors.ExitValidation
	}

	systemClock := clock.NewSystem()
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	group, groupCtx := errgroup.WithContext(ctx)
	sessionCtx, endSession := context.WithCancel(groupCtx)
	defer endSession()

	if cfg.Redis.Enabled {
		codec, err := events.NewCodec(cfg.Events.Encoding)
		if err != nil {
			logger.Error("failed to build event codec", zap.Error(err))
			return apperrors.ExitValidation
		}
		redis := broker.NewRedis(ctx, cfg.Redis, logger)
		defer redis.Close()

		publisher := broker.NewPublisher(redis.Client, cfg.Redis.Channel, codec)
		publishWorker := worker.NewPublishWorker(publisher, cfg.Events.QueueSize, logger, metrics)
		publishWorker.RegisterHandlers(dispatcher)
		group.Go(func() error {
			return publishWorker.Run(sessionCtx)
		})
		logger.Info("publishing events", zap.String("channel", publisher.Channel()), zap.String("encoding", codec.ContentType()))
	}

	ticketService := service.NewTicketService(service.TicketDependencies{
		Store:      store.New(store.WithClock(systemClock)),
		Clock:      systemClock,
		Dispatcher: dispatcher,
		Logger:     logger,
		Metrics:    metrics,
	})

	session := cli.NewSession(cli.SessionOptions{
		Service:  ticketService,
		Renderer: renderer,
		Out:      stdout,
		ErrOut:   stderr,
		Logger:   logger,
		Prompt:   interactive,
	})

	group.Go(func() error {
		defer endSession()
		return session.Run(sessionCtx, input)
	})

	if err := group.Wait(); err != nil {
		logger.Error("session failed", zap.Error(err))
		return apperrors.ExitInternal
	}
	if ctx.Err() != nil {
		logger.Info("shutting down", zap.String("reason", "signal"))
	}

	if !interactive {
		if lastErr := session.LastError(); lastErr != nil {
			return lastErr.ExitCode
		}
	}
	return apperrors.ExitOK
}

// openInput returns the command source and whether it is an interactive terminal.
func openInput(path string, stdin io.Reader) (io.Reader, bool, func(), error) {
	if path == "" {
		f, ok := stdin.(*os.File)
		return stdin, ok && term.IsTerminal(int(f.Fd())), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, false, nil, err
	}
	return f, false, func() { _ = f.Close() }, nil
}
