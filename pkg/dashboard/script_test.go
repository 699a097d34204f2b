package dashboard

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
)

const resizeScript = `
[[gesture]]
kind = "resize"
widget = "cpu"
edges = "right"

[[gesture.step]]
x = 0
y = 0
width = 5
height = 2

[[gesture.step]]
x = 0
y = 0
width = 6
height = 2

[[gesture]]
kind = "drag"
widget = "mem"
cancel = true

[[gesture.step]]
x = 6
y = 4
width = 4
height = 2
`

func TestParseScript(t *testing.T) {
	s, err := ParseScript(strings.NewReader(resizeScript))
	require.NoError(t, err)
	require.Len(t, s.Gestures, 2)

	g := s.Gestures[0]
	assert.Equal(t, KindResize, g.Kind)
	assert.Equal(t, grid.EdgeRight, g.Edges)
	assert.Equal(t, []grid.Rect{rect(0, 0, 5, 2), rect(0, 0, 6, 2)}, g.Steps)
	assert.True(t, s.Gestures[1].Cancel)
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"bad toml", "[[gesture]\n"},
		{"unknown kind", "[[gesture]]\nkind = \"spin\"\nwidget = \"a\"\n"},
		{"missing widget", "[[gesture]]\nkind = \"drag\"\n"},
		{"resize without edges", "[[gesture]]\nkind = \"resize\"\nwidget = \"a\"\n"},
		{"bad edges", "[[gesture]]\nkind = \"resize\"\nwidget = \"a\"\nedges = \"middle\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript(strings.NewReader(tt.script))
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.ErrCodeInvalidInput), "got %v", err)
		})
	}
}

func TestReplay(t *testing.T) {
	s, err := ParseScript(strings.NewReader(resizeScript))
	require.NoError(t, err)

	b := newBoard(t,
		grid.Widget{ID: "cpu", Rect: rect(0, 0, 4, 2)},
		grid.Widget{ID: "mem", Rect: rect(4, 0, 4, 2)},
	)
	res, err := Replay(context.Background(), b, s)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Gestures)
	assert.Equal(t, 1, res.Committed)
	assert.Equal(t, 3, res.Updates)
	assert.Contains(t, res.Trace.Widgets(), "mem")
	assert.Equal(t, map[string]grid.Rect{
		"cpu": rect(0, 0, 6, 2),
		"mem": rect(6, 0, 4, 2),
	}, committed(b))

	_, ok := b.Gesture()
	assert.False(t, ok)
}

func TestReplayUnknownWidget(t *testing.T) {
	s := &Script{Gestures: []ScriptGesture{{Kind: KindDrag, Widget: "ghost"}}}
	res, err := Replay(context.Background(), newBoard(t), s)
	assert.True(t, errs.Is(err, errs.ErrCodeWidgetNotFound), "got %v", err)
	assert.Zero(t, res.Gestures)
}
