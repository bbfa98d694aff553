package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/lesspass/lesspass-go/cmd/lesspass/root"
	"github.com/lesspass/lesspass-go/internal/config"
	"github.com/lesspass/lesspass-go/internal/crypto"
	"github.com/lesspass/lesspass-go/internal/prompt"
	"github.com/lesspass/lesspass-go/internal/repository"
	"github.com/lesspass/lesspass-go/internal/service"
)

// version is set at build time: -ldflags "-X main.version=1.2.3"
var version = "dev"

type exitCoder interface {
	ExitCode() int
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	svc := service.NewGeneratorService(
		repository.NewProfileRepository(cfg.ProfilesDir),
		prompt.NewTerminal(),
		crypto.LessPass{},
	)

	err := root.Execute(ctx, root.Options{
		Service: svc,
		Version: version,
		Prog:    filepath.Base(os.Args[0]),
		Stdout:  os.Stdout,
	}, os.Args[1:])
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		code := 1
		if ec, ok := err.(exitCoder); ok {
			code = ec.ExitCode()
		}
		stop()
		os.Exit(code)
	}
}
