package descriptor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var extensions = []string{".yml", ".yaml"}

// FileSource lê as definições de um diretório local.
type FileSource struct {
	Dir string
}

// NewFileSource cria uma fonte sobre dir. Aceita o prefixo "file://".
func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: strings.TrimPrefix(dir, "file://")}
}

func (s *FileSource) LoadService(ctx context.Context, name string) (*ServiceDefinition, error) {
	for _, ext := range extensions {
		data, err := os.ReadFile(filepath.Join(s.Dir, name+ext))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return parseService(data)
	}
	return nil, fmt.Errorf("%w: %s em %s", ErrNotFound, name, s.Dir)
}

func (s *FileSource) LoadActions(ctx context.Context, name string) (map[string]*ActionDefinition, error) {
	dir := filepath.Join(s.Dir, name)
	files, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		// Serviço sem diretório de ações é válido, apenas não expõe nada.
		return map[string]*ActionDefinition{}, nil
	}
	if err != nil {
		return nil, err
	}

	actions := make(map[string]*ActionDefinition)
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		actionName, ok := trimExtension(f.Name())
		if !ok {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, f.Name()))
		if err != nil {
			return nil, err
		}
		act, err := parseAction(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name(), err)
		}
		actions[actionName] = act
	}
	return actions, nil
}

// trimExtension remove a extensão YAML do nome do arquivo.
func trimExtension(file string) (string, bool) {
	for _, ext := range extensions {
		if strings.HasSuffix(file, ext) {
			base := strings.TrimSuffix(file, ext)
			return base, base != ""
		}
	}
	return "", false
}

// Lister é implementado pelas fontes que conseguem enumerar seus serviços.
type Lister interface {
	ListServices(ctx context.Context) ([]string, error)
}

// ListServices devolve os serviços com arquivo de definição no diretório.
func (s *FileSource) ListServices(ctx context.Context) ([]string, error) {
	files, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var names []string
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		name, ok := trimExtension(f.Name())
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
