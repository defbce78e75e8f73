package main

import (
	"flag"
	"os"
	"sync"

	"github.com/raywall/fast-action-client/tools/emulator/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Injetável para testes
var serverStarter = func(s *config.ServerConfig) {
	s.Start()
}

func main() {
	path := flag.String("config", envOr("EMULATOR_CONFIG_PATH", "cmd/emulator/config.json"), "arquivo JSON do emulador")
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := run(*path); err != nil {
		log.Fatal().Err(err).Msg("emulador não iniciou")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// run contém a lógica de orquestração
func run(configPath string) error {
	var cfg config.Config
	if err := cfg.LoadFromFile(configPath); err != nil {
		return err
	}

	var wg sync.WaitGroup
	for _, server := range []config.ServerConfig(cfg) {
		wg.Add(1)
		go func(s config.ServerConfig) {
			defer wg.Done()
			serverStarter(&s)
		}(server)
	}
	wg.Wait()
	return nil
}
