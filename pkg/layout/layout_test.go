package layout

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/tilegrid/pkg/errors"
)

func splitLayout() Layout {
	return Layout{Panes: []Pane{
		{ID: "left", Top: 0, Right: 50, Bottom: 100, Left: 0},
		{ID: "right", Top: 0, Right: 100, Bottom: 100, Left: 50, Props: map[string]any{"title": "Editor"}},
	}}
}

func TestRoundTrip(t *testing.T) {
	in := splitLayout()
	in.Panes[0].MinWidth = 10

	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	out, err := Read(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if len(out.Panes) != 2 {
		t.Fatalf("got %d panes, want 2", len(out.Panes))
	}
	if out.Panes[0].ID != "left" || out.Panes[0].Right != 50 || out.Panes[0].MinWidth != 10 {
		t.Errorf("pane 0 = %+v", out.Panes[0])
	}
	if out.Panes[1].Props["title"] != "Editor" {
		t.Errorf("props lost in round trip: %+v", out.Panes[1])
	}
}

func TestReadWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")

	if err := WriteFile(splitLayout(), path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	out, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(out.Panes) != 2 || out.Panes[1].Left != 50 {
		t.Errorf("ReadFile() = %+v", out)
	}
}

func TestReadRejectsInvalidLayout(t *testing.T) {
	bad := `{"panes":[{"id":"a","top":0,"right":30,"bottom":100,"left":60}]}`
	_, err := Read(strings.NewReader(bad))
	if !errors.Is(err, errors.ErrCodeInvalidRect) {
		t.Errorf("Read() error = %v, want INVALID_RECT", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Layout)
		code   errors.Code
	}{
		{
			name:   "valid",
			mutate: func(l *Layout) {},
			code:   "",
		},
		{
			name:   "empty ID",
			mutate: func(l *Layout) { l.Panes[0].ID = "" },
			code:   errors.ErrCodeInvalidInput,
		},
		{
			name:   "duplicate ID",
			mutate: func(l *Layout) { l.Panes[1].ID = "left" },
			code:   errors.ErrCodeInvalidLayout,
		},
		{
			name:   "inverted horizontally",
			mutate: func(l *Layout) { l.Panes[0].Left = 80 },
			code:   errors.ErrCodeInvalidRect,
		},
		{
			name:   "exceeds container",
			mutate: func(l *Layout) { l.Panes[1].Right = 120 },
			code:   errors.ErrCodeInvalidRect,
		},
		{
			name:   "negative origin",
			mutate: func(l *Layout) { l.Panes[0].Top = -5 },
			code:   errors.ErrCodeInvalidRect,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := splitLayout()
			tt.mutate(&l)

			err := l.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestConversionRoundTrip(t *testing.T) {
	in := splitLayout()
	out := FromDefs(in.ToDefs())

	if len(out.Panes) != len(in.Panes) {
		t.Fatalf("got %d panes, want %d", len(out.Panes), len(in.Panes))
	}
	for i := range in.Panes {
		if out.Panes[i].ID != in.Panes[i].ID ||
			out.Panes[i].Left != in.Panes[i].Left ||
			out.Panes[i].Right != in.Panes[i].Right {
			t.Errorf("pane %d = %+v, want %+v", i, out.Panes[i], in.Panes[i])
		}
	}
}
