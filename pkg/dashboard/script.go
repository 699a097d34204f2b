package dashboard

import (
	"context"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
)

// Script is a recorded sequence of gestures, decoded from TOML:
//
//	[[gesture]]
//	kind = "resize"
//	widget = "cpu"
//	edges = "bottom-right"
//
//	[[gesture.step]]
//	x = 0
//	y = 0
//	width = 8
//	height = 4
type Script struct {
	Gestures []ScriptGesture `toml:"gesture"`
}

// ScriptGesture is one drag or resize with its pointer steps.
type ScriptGesture struct {
	Kind   string      `toml:"kind"`
	Widget string      `toml:"widget"`
	Edges  grid.Edges  `toml:"edges"`
	Steps  []grid.Rect `toml:"step"`
	// Cancel abandons the gesture after the last step instead of ending it.
	Cancel bool `toml:"cancel"`
}

// ParseScript decodes a TOML gesture script.
func ParseScript(r io.Reader) (*Script, error) {
	var s Script
	if _, err := toml.NewDecoder(r).Decode(&s); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "parse gesture script")
	}
	for i, g := range s.Gestures {
		switch g.Kind {
		case KindDrag:
		case KindResize:
			if err := g.Edges.Validate(); err != nil {
				return nil, fmt.Errorf("gesture %d: %w", i+1, err)
			}
		default:
			return nil, errs.New(errs.ErrCodeInvalidInput, "gesture %d: unknown kind %q", i+1, g.Kind)
		}
		if g.Widget == "" {
			return nil, errs.New(errs.ErrCodeInvalidInput, "gesture %d: widget is required", i+1)
		}
	}
	return &s, nil
}

// ReplayResult summarizes a replayed script.
type ReplayResult struct {
	Gestures  int
	Updates   int
	Committed int
	// Trace concatenates the pushes of every accepted update.
	Trace grid.Trace
}

// Replay runs every gesture of s against b in order. It stops at the first
// error; gestures already ended stay committed.
func Replay(ctx context.Context, b *Board, s *Script) (ReplayResult, error) {
	var res ReplayResult
	for i, g := range s.Gestures {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := replayOne(ctx, b, g, &res); err != nil {
			return res, fmt.Errorf("gesture %d (%s %s): %w", i+1, g.Kind, g.Widget, err)
		}
		res.Gestures++
	}
	return res, nil
}

func replayOne(ctx context.Context, b *Board, g ScriptGesture, res *ReplayResult) error {
	var err error
	if g.Kind == KindResize {
		err = b.BeginResize(ctx, g.Widget, g.Edges)
	} else {
		err = b.BeginDrag(ctx, g.Widget)
	}
	if err != nil {
		return err
	}

	for _, step := range g.Steps {
		u, ok, err := b.update(ctx, g.Kind, step)
		if err != nil {
			b.Cancel(ctx)
			return err
		}
		if ok {
			res.Updates++
			res.Trace = append(res.Trace, u.Trace...)
		}
	}

	if g.Cancel {
		_, err = b.cancel(ctx, g.Kind)
		return err
	}
	if _, err = b.end(ctx, g.Kind); err != nil {
		return err
	}
	res.Committed++
	return nil
}
