package shared_test

import (
	"context"
	"testing"

	"github.com/sikum-app/sikum-api/internal/api/shared"
	"github.com/stretchr/testify/assert"
)

func TestTraceID(t *testing.T) {
	t.Parallel()

	assert.Empty(t, shared.GetTraceID(context.Background()))

	first := shared.GetTraceID(shared.SetTraceID(context.Background()))
	second := shared.GetTraceID(shared.SetTraceID(context.Background()))

	assert.Len(t, first, shared.TraceIDLength*2)
	assert.NotEqual(t, first, second)
}
