package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joshuapare/tlsfkit/tlsf"
	"github.com/joshuapare/tlsfkit/tlsf/binmap"
)

type pane int

const (
	paneChunks pane = iota
	paneBlocks
)

// Model is the bubbletea model: a workload's allocator state with a chunk
// list on the left and the selected chunk's block chain on the right.
type Model struct {
	workload string
	seed     int64
	keys     KeyMap

	alloc    *tlsf.Allocator
	chunks   []tlsf.ChunkSummary
	blocks   []tlsf.BlockInfo
	selected int
	active   pane

	blockTable table.Model
	width      int
	height     int
}

func newModel(workload string, seed int64) (Model, error) {
	m := Model{
		workload: workload,
		seed:     seed,
		keys:     DefaultKeyMap(),
	}

	tbl := table.New(
		table.WithColumns([]table.Column{
			{Title: "Block", Width: 7},
			{Title: "Offset", Width: 10},
			{Title: "Size", Width: 10},
			{Title: "Status", Width: 7},
			{Title: "Bin", Width: 8},
		}),
		table.WithFocused(false),
		table.WithHeight(20),
	)
	m.blockTable = tbl

	if err := m.refresh(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// refresh re-runs the workload and rebuilds the browsing state.
func (m *Model) refresh() error {
	a, err := buildAllocator(m.workload, m.seed)
	if err != nil {
		return err
	}
	m.alloc = a
	m.chunks = a.Chunks()
	m.blocks = a.Blocks()
	if m.selected >= len(m.chunks) {
		m.selected = 0
	}
	m.rebuildBlockRows()
	return nil
}

// rebuildBlockRows fills the block table with the selected chunk's physical
// chain, lowest address first.
func (m *Model) rebuildBlockRows() {
	var rows []table.Row
	if m.selected < len(m.chunks) {
		for idx := m.chunks[m.selected].FirstBlock; idx >= 0; idx = m.blocks[idx].PhysNext {
			b := m.blocks[idx]
			rows = append(rows, table.Row{
				fmt.Sprintf("%d", b.Index),
				fmt.Sprintf("%d", b.Offset),
				fmt.Sprintf("%d", b.Size),
				b.Status.String(),
				binLabel(b),
			})
		}
	}
	m.blockTable.SetRows(rows)
	m.blockTable.SetCursor(0)
}

// binLabel names a free block's bin; used blocks have none.
func binLabel(b tlsf.BlockInfo) string {
	if b.Status != tlsf.StatusFree {
		return "-"
	}
	l1, l2 := binmap.MapSize(b.Size)
	return fmt.Sprintf("(%d,%d)", l1, l2)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.blockTable.SetHeight(max(4, m.height-8))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			if m.active == paneChunks {
				m.active = paneBlocks
				m.blockTable.Focus()
			} else {
				m.active = paneChunks
				m.blockTable.Blur()
			}
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			if err := m.refresh(); err != nil {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.active == paneChunks {
				if m.selected > 0 {
					m.selected--
					m.rebuildBlockRows()
				}
				return m, nil
			}

		case key.Matches(msg, m.keys.Down):
			if m.active == paneChunks {
				if m.selected < len(m.chunks)-1 {
					m.selected++
					m.rebuildBlockRows()
				}
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.blockTable, cmd = m.blockTable.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	stats := m.alloc.Stats()
	header := headerStyle.Render("tlsfexplorer") +
		statusStyle.Render(fmt.Sprintf("workload=%s  chunks=%d  blocks=%d  allocs=%d  frees=%d",
			m.workload, len(m.chunks), len(m.blocks), stats.AllocCalls, stats.FreeCalls))

	chunkPane := m.renderChunkPane()
	blockPane := m.renderBlockPane()

	body := lipgloss.JoinHorizontal(lipgloss.Top, chunkPane, blockPane)
	help := statusStyle.Render("↑/↓ move · tab switch pane · r re-run · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, body, help)
}

func (m Model) renderChunkPane() string {
	var lines string
	for i, c := range m.chunks {
		line := fmt.Sprintf("[%d] id=0x%x used=%d free=%d %d/%d B",
			i, c.ID, c.UsedCount, c.FreeCount, c.Allocated, c.Size)
		if i == m.selected {
			lines += chunkSelectedStyle.Render("> "+line) + "\n"
		} else {
			lines += chunkStyle.Render("  "+line) + "\n"
		}
	}
	if len(m.chunks) == 0 {
		lines = statusStyle.Render("no chunks")
	}
	style := paneStyle
	if m.active == paneChunks {
		style = activePaneStyle
	}
	return style.Render(lines)
}

func (m Model) renderBlockPane() string {
	style := paneStyle
	if m.active == paneBlocks {
		style = activePaneStyle
	}
	legend := freeStyle.Render("Free") + statusStyle.Render(" / ") + usedStyle.Render("Used")
	return style.Render(m.blockTable.View() + "\n" + legend)
}
