package descriptor

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sem banco disponível, as falhas de conexão não podem virar ErrNotFound.
func TestSQLSource_Unreachable(t *testing.T) {
	db, err := sql.Open("postgres", "postgres://user:pw@127.0.0.1:1/descriptors?sslmode=disable&connect_timeout=1")
	require.NoError(t, err)

	src := NewSQLSource(db)
	defer src.Close()

	_, err = src.LoadService(context.Background(), "ecs")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "erro na query SQL")

	_, err = src.LoadActions(context.Background(), "ecs")
	assert.Error(t, err)
}
