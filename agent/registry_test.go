package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_Validation(t *testing.T) {
	tests := []struct {
		name    string
		entry   string
		agents  []Agent
		wantErr string
	}{
		{
			name:    "empty registry",
			entry:   "Triage Agent",
			wantErr: "at least one agent",
		},
		{
			name:  "unnamed agent",
			entry: "Triage Agent",
			agents: []Agent{
				{Name: "Triage Agent"},
				{Name: ""},
			},
			wantErr: "has no name",
		},
		{
			name:  "duplicate agent",
			entry: "Triage Agent",
			agents: []Agent{
				{Name: "Triage Agent"},
				{Name: "Triage Agent"},
			},
			wantErr: "duplicate agent",
		},
		{
			name:  "unknown handoff target",
			entry: "Triage Agent",
			agents: []Agent{
				{Name: "Triage Agent", Handoffs: []string{"Missing Agent"}},
			},
			wantErr: "unknown agent",
		},
		{
			name:  "unknown entry",
			entry: "Missing Agent",
			agents: []Agent{
				{Name: "Triage Agent"},
			},
			wantErr: "not registered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.entry, tt.agents...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRegistry_CyclicGraphAllowed(t *testing.T) {
	r, err := NewRegistry("Triage Agent",
		Agent{Name: "Triage Agent", Handoffs: []string{"Schedule Agent"}},
		Agent{Name: "Schedule Agent", Handoffs: []string{"Triage Agent"}},
	)
	require.NoError(t, err)

	assert.Equal(t, "Triage Agent", r.Entry().Name)
	assert.Equal(t, "Triage Agent", r.First().Name)

	a, ok := r.Resolve("Schedule Agent")
	require.True(t, ok)
	assert.Equal(t, []string{"Triage Agent"}, a.Handoffs)

	_, ok = r.Resolve("Missing Agent")
	assert.False(t, ok)
}

func TestRegistry_AllStableOrder(t *testing.T) {
	r, err := NewRegistry("a",
		Agent{Name: "a"},
		Agent{Name: "b"},
		Agent{Name: "c"},
	)
	require.NoError(t, err)

	first := r.All()
	second := r.All()
	require.Equal(t, first, second)
	assert.Equal(t, "a", first[0].Name)
	assert.Equal(t, "c", first[2].Name)

	// Mutating the returned slice must not affect the registry.
	first[0].Name = "mutated"
	assert.Equal(t, "a", r.All()[0].Name)
}
