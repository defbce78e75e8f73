package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTags(t *testing.T) {
	tags := Tags("ecs", "describe_regions", OutcomeSuccess)
	assert.Equal(t, []string{"service:ecs", "action:describe_regions", "outcome:success"}, tags)
}
