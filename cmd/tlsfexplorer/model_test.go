package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/tlsfkit/tlsf/verify"
)

func TestBuildAllocatorWorkloads(t *testing.T) {
	for _, name := range []string{"mixed", "churn", "pristine"} {
		a, err := buildAllocator(name, 1)
		require.NoError(t, err, "workload %q", name)
		require.NotEmpty(t, a.Chunks(), "workload %q", name)
		require.NoError(t, verify.AllInvariants(a), "workload %q", name)
	}

	_, err := buildAllocator("bogus", 1)
	require.Error(t, err)
}

func TestBuildAllocatorIsDeterministic(t *testing.T) {
	a, err := buildAllocator("mixed", 7)
	require.NoError(t, err)
	b, err := buildAllocator("mixed", 7)
	require.NoError(t, err)
	require.Equal(t, a.Chunks(), b.Chunks())
	require.Equal(t, a.Blocks(), b.Blocks())
}

func TestModelChunkNavigation(t *testing.T) {
	m, err := newModel("mixed", 1)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(m.chunks), 2, "mixed workload should span chunks")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	require.Equal(t, 1, m.selected)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	require.Equal(t, 0, m.selected)
}

func TestModelPaneSwitchAndQuit(t *testing.T) {
	m, err := newModel("pristine", 1)
	require.NoError(t, err)
	require.Equal(t, paneChunks, m.active)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	require.Equal(t, paneBlocks, m.active)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
}

func TestModelViewRenders(t *testing.T) {
	m, err := newModel("churn", 1)
	require.NoError(t, err)
	out := m.View()
	require.Contains(t, out, "tlsfexplorer")
	require.Contains(t, out, "workload=churn")
}
