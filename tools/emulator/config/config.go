package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// Config representa a estrutura do JSON de configuração (Lista de Servers)
type Config []ServerConfig

// Load carrega a configuração do arquivo padrão (emulator.json) ou via variável de ambiente.
// Retorna uma configuração vazia se o arquivo não existir, para não quebrar a inicialização.
func Load() Config {
	cfg := make(Config, 0)

	path := os.Getenv("EMULATOR_CONFIG_PATH")
	if path == "" {
		path = "emulator.json"
	}

	if err := cfg.LoadFromFile(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("iniciando emulador sem serviços")
		return cfg
	}

	return cfg
}

func (cfg *Config) LoadFromFile(filepath string) error {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("erro ao ler arquivo: %v", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("erro ao parsear json: %v", err)
	}
	for i := range *cfg {
		if err := (*cfg)[i].validate(); err != nil {
			return fmt.Errorf("server %d: %w", i, err)
		}
	}
	return nil
}
