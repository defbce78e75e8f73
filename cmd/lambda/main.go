package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/kelseyhightower/envconfig"
	"github.com/raywall/fast-action-client/pkg/config"
	"github.com/raywall/fast-action-client/pkg/engine"
	"github.com/raywall/fast-action-client/pkg/handler"
	"github.com/rs/zerolog/log"
)

// Settings vem do ambiente (prefixo FAC_).
type Settings struct {
	ConfigPath string `envconfig:"CONFIG_FILE_PATH" required:"true"`
	Runtime    string `envconfig:"RUNTIME" default:"lambda"`
	Port       int    `envconfig:"PORT" default:"8080"`
}

var (
	// Variáveis injetáveis para mocking
	lambdaStarter = func(h interface{}) { lambda.Start(h) }
	serverStarter = func(addr string, h http.Handler) error { return http.ListenAndServe(addr, h) }
)

func main() {
	var s Settings
	if err := envconfig.Process("fac", &s); err != nil {
		log.Fatal().Err(err).Msg("configuração de ambiente inválida")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, s); err != nil {
		log.Fatal().Err(err).Msg("falha na inicialização")
	}
}

// run contém a lógica principal testável
func run(ctx context.Context, s Settings) error {
	cfg, err := config.NewLoader().Load(ctx, s.ConfigPath)
	if err != nil {
		return err
	}

	ce, err := engine.NewClientEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer ce.Close()

	if err := ce.StartReloader(ctx); err != nil {
		return fmt.Errorf("falha ao iniciar reloader: %w", err)
	}

	switch s.Runtime {
	case "lambda":
		h := handler.NewLambdaHandler(ce.Client, cfg.Client.GetTimeout(), ce.Logger)
		lambdaStarter(h.Handle)
		return nil
	case "local", "ecs", "eks":
		addr := fmt.Sprintf(":%d", s.Port)
		ce.Logger.Info().Str("addr", addr).Msg("gateway HTTP ouvindo")
		return serverStarter(addr, handler.NewHTTPHandler(ce.Client, ce.Logger))
	default:
		return fmt.Errorf("runtime desconhecido: %s", s.Runtime)
	}
}
