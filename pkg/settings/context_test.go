package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		run  *Run
	}{
		{name: "empty", run: &Run{}},
		{name: "with values", run: &Run{NoColor: true, Interactive: true, Source: InputFile, Path: "jobs.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := IntoContext(context.Background(), tt.run)
			got, ok := FromContext(ctx)
			require.True(t, ok)
			assert.Same(t, tt.run, got)
		})
	}
}

func TestFromContextMissing(t *testing.T) {
	got, ok := FromContext(context.Background())
	assert.False(t, ok)
	assert.Nil(t, got)

	ctx := context.WithValue(context.Background(), settingsContextKey, "wrong type")
	got, ok = FromContext(ctx)
	assert.False(t, ok)
	assert.Nil(t, got)
}
