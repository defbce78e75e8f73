package config

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// ServerConfig descreve um serviço emulado em uma porta.
type ServerConfig struct {
	Port            int            `json:"port"`
	AccessKeyID     string         `json:"access_key_id"`
	AccessKeySecret string         `json:"access_key_secret"`
	Version         string         `json:"version,omitempty"` // vazio aceita qualquer versão
	Actions         []ActionConfig `json:"actions"`
}

func (s *ServerConfig) validate() error {
	if s.AccessKeySecret == "" {
		return fmt.Errorf("access_key_secret é obrigatório")
	}
	seen := make(map[string]bool, len(s.Actions))
	for _, a := range s.Actions {
		if a.Action == "" {
			return fmt.Errorf("ação sem nome")
		}
		if seen[a.Action] {
			return fmt.Errorf("ação %s duplicada", a.Action)
		}
		seen[a.Action] = true
	}
	return nil
}

// Router monta o roteador da API de consulta: todas as ações em GET /.
func (s *ServerConfig) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/", s.NewHandler()).Methods(http.MethodGet)
	return router
}

func (s *ServerConfig) Start() {
	addr := fmt.Sprintf(":%d", s.Port)
	log.Info().Int("port", s.Port).Int("actions", len(s.Actions)).Msg("iniciando emulador")
	if err := http.ListenAndServe(addr, s.Router()); err != nil {
		log.Error().Err(err).Int("port", s.Port).Msg("erro no servidor")
	}
}
