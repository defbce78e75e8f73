package descriptor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // Driver Postgres
)

const (
	selectServiceSQL = `SELECT definition FROM service_definitions WHERE name = $1`
	selectActionsSQL = `SELECT action, definition FROM action_definitions WHERE service = $1`
)

// SQLSource lê as definições das tabelas service_definitions(name, definition)
// e action_definitions(service, action, definition).
type SQLSource struct {
	db *sql.DB
}

// NewSQLSource cria a fonte sobre uma conexão já aberta.
func NewSQLSource(db *sql.DB) *SQLSource {
	return &SQLSource{db: db}
}

func (s *SQLSource) LoadService(ctx context.Context, name string) (*ServiceDefinition, error) {
	var definition string
	err := s.db.QueryRowContext(ctx, selectServiceSQL, name).Scan(&definition)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("erro na query SQL: %w", err)
	}
	return parseService([]byte(definition))
}

func (s *SQLSource) LoadActions(ctx context.Context, name string) (map[string]*ActionDefinition, error) {
	rows, err := s.db.QueryContext(ctx, selectActionsSQL, name)
	if err != nil {
		return nil, fmt.Errorf("erro na query SQL: %w", err)
	}
	defer rows.Close()

	actions := make(map[string]*ActionDefinition)
	for rows.Next() {
		var actionName, definition string
		if err := rows.Scan(&actionName, &definition); err != nil {
			return nil, err
		}
		act, err := parseAction([]byte(definition))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", actionName, err)
		}
		actions[actionName] = act
	}
	return actions, rows.Err()
}

// Close encerra a conexão subjacente.
func (s *SQLSource) Close() error {
	return s.db.Close()
}
