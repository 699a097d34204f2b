package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/dashgrid/pkg/dashboard"
	errs "github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
)

var (
	editHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	editStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	editErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// EditorModel is the bubbletea model of the interactive layout editor.
//
// Tab selects a widget. Arrows start or continue a drag, shift+arrows a
// resize from the bottom-right corner. Enter commits the gesture, esc
// cancels it, s saves and q quits.
type EditorModel struct {
	ctx   context.Context
	board *dashboard.Board
	ids   []string

	// Selected is the index of the selected widget in ids.
	Selected int
	// target is the rectangle the pointer would be at.
	target grid.Rect
	status string
	err    error

	// Save is called by the "s" key.
	Save  func() error
	Saved bool
}

// NewEditorModel creates an editor over b.
func NewEditorModel(ctx context.Context, b *dashboard.Board) EditorModel {
	m := EditorModel{ctx: ctx, board: b}
	m.refreshIDs()
	return m
}

func (m *EditorModel) refreshIDs() {
	ws := m.board.Widgets()
	m.ids = make([]string, len(ws))
	for i, w := range ws {
		m.ids[i] = w.ID
	}
	if m.Selected >= len(m.ids) {
		m.Selected = 0
	}
}

func (m EditorModel) selected() string {
	if len(m.ids) == 0 {
		return ""
	}
	return m.ids[m.Selected]
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.err = nil

	switch key.String() {
	case "q", "ctrl+c":
		m.board.Cancel(m.ctx)
		return m, tea.Quit
	case "tab":
		if _, active := m.board.Gesture(); !active && len(m.ids) > 0 {
			m.Selected = (m.Selected + 1) % len(m.ids)
			m.status = ""
		}
	case "up", "down", "left", "right":
		m.step(dashboard.KindDrag, key.String())
	case "shift+up", "shift+down", "shift+left", "shift+right":
		m.step(dashboard.KindResize, strings.TrimPrefix(key.String(), "shift+"))
	case "enter":
		m.finish(true)
	case "esc":
		m.finish(false)
	case "s":
		if _, active := m.board.Gesture(); active {
			m.err = errs.New(errs.ErrCodeGestureActive, "finish the gesture before saving")
			break
		}
		if m.Save != nil {
			if err := m.Save(); err != nil {
				m.err = err
				break
			}
			m.Saved = true
			m.status = "saved"
		}
	}
	return m, nil
}

// step moves the pointer one cell in dir, starting a gesture of the given
// kind when none is active.
func (m *EditorModel) step(kind, dir string) {
	id := m.selected()
	if id == "" {
		return
	}
	info, active := m.board.Gesture()
	if active && info.Kind != kind {
		m.err = errs.New(errs.ErrCodeGestureActive, "a %s is in progress", info.Kind)
		return
	}
	if !active {
		var err error
		if kind == dashboard.KindResize {
			err = m.board.BeginResize(m.ctx, id, grid.EdgeRight|grid.EdgeBottom)
		} else {
			err = m.board.BeginDrag(m.ctx, id)
		}
		if err != nil {
			m.err = err
			return
		}
		info, _ = m.board.Gesture()
		m.target = info.Rect
	}

	dx, dy := 0, 0
	switch dir {
	case "up":
		dy = -1
	case "down":
		dy = 1
	case "left":
		dx = -1
	case "right":
		dx = 1
	}
	if kind == dashboard.KindResize {
		m.target.Width = max(1, m.target.Width+dx)
		m.target.Height = max(1, m.target.Height+dy)
	} else {
		m.target.X += dx
		m.target.Y += dy
	}

	var (
		u       grid.Update
		changed bool
		err     error
	)
	if kind == dashboard.KindResize {
		u, changed, err = m.board.UpdateResize(m.ctx, m.target)
	} else {
		u, changed, err = m.board.UpdateDrag(m.ctx, m.target)
	}
	switch {
	case err != nil:
		m.err = err
	case changed:
		m.status = fmt.Sprintf("%s %s → %s (%d moved)", kind, id, u.Rect, max(0, len(u.Changes)-1))
	default:
		m.status = fmt.Sprintf("%s %s blocked", kind, id)
	}
}

func (m *EditorModel) finish(commit bool) {
	info, active := m.board.Gesture()
	if !active {
		return
	}
	var err error
	if commit {
		if info.Kind == dashboard.KindResize {
			_, err = m.board.EndResize(m.ctx)
		} else {
			_, err = m.board.EndDrag(m.ctx)
		}
		m.status = fmt.Sprintf("%s committed", info.Kind)
		m.Saved = false
	} else {
		m.board.Cancel(m.ctx)
		m.status = fmt.Sprintf("%s cancelled", info.Kind)
	}
	if err != nil {
		m.err = err
	}
	m.board.ResetRows()
	m.refreshIDs()
}

func (m EditorModel) View() string {
	var b strings.Builder
	cfg := m.board.Config()

	b.WriteString(StyleTitle.Render("Edit " + m.board.ID()))
	b.WriteString("\n")
	b.WriteString(editHelpStyle.Render("tab select  ←↑↓→ drag  shift+←↑↓→ resize  ⏎ commit  esc cancel  s save  q quit"))
	b.WriteString("\n\n")

	rows := min(cfg.MaxRows, max(m.board.Rows()+1, 4))
	b.WriteString(drawGrid(m.ids, m.board.Working(), cfg.MaxColumns, rows, m.selected()))
	b.WriteString("\n")

	if id := m.selected(); id != "" {
		b.WriteString(widgetStyle(id).Render(id))
		if info, ok := m.board.Gesture(); ok {
			b.WriteString(editStatusStyle.Render(fmt.Sprintf("  %s %s", info.Kind, info.Rect)))
		}
		b.WriteString("\n")
	}
	switch {
	case m.err != nil:
		b.WriteString(editErrorStyle.Render(errs.UserMessage(m.err)))
	case m.status != "":
		b.WriteString(editStatusStyle.Render(m.status))
	}
	b.WriteString("\n")
	return b.String()
}
