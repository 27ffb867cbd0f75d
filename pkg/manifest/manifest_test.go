package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/tilegrid/pkg/errors"
)

const sampleManifest = `
name = "dashboard"

[[pane]]
id = "sidebar"
top = 0
left = 0
right = 25
bottom = 100
min_width = 10

[[pane]]
top = 0
left = 25
right = 100
bottom = 100

[pane.props]
title = "Editor"
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if m.Name != "dashboard" {
		t.Errorf("Name = %q, want dashboard", m.Name)
	}
	if len(m.Panes) != 2 {
		t.Fatalf("got %d panes, want 2", len(m.Panes))
	}
	if m.Panes[0].ID != "sidebar" || m.Panes[0].Right != 25 || m.Panes[0].MinWidth != 10 {
		t.Errorf("pane 0 = %+v", m.Panes[0])
	}
	if m.Panes[1].Props["title"] != "Editor" {
		t.Errorf("pane 1 props = %v", m.Panes[1].Props)
	}
}

func TestParseRejectsBadTOML(t *testing.T) {
	if _, err := Parse([]byte("[[pane]\nid=")); err == nil {
		t.Error("Parse should reject malformed TOML")
	}
}

func TestToLayoutFillsMissingIDs(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	l, err := m.ToLayout()
	if err != nil {
		t.Fatalf("ToLayout error: %v", err)
	}

	if l.Panes[0].ID != "sidebar" {
		t.Errorf("explicit ID overwritten: %q", l.Panes[0].ID)
	}
	if l.Panes[1].ID == "" {
		t.Error("missing ID should be filled with a generated one")
	}
	if l.Panes[1].ID == l.Panes[0].ID {
		t.Error("generated ID collides with an explicit one")
	}
}

func TestToLayoutValidates(t *testing.T) {
	m := &Manifest{Panes: []Pane{
		{ID: "a", Top: 0, Left: 60, Right: 30, Bottom: 100}, // inverted
	}}

	_, err := m.ToLayout()
	if !errors.Is(err, errors.ErrCodeInvalidRect) {
		t.Errorf("ToLayout error = %v, want INVALID_RECT", err)
	}
}

func TestLoadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.toml")
	if err := os.WriteFile(path, []byte(sampleManifest), 0644); err != nil {
		t.Fatal(err)
	}

	l, err := LoadLayout(path)
	if err != nil {
		t.Fatalf("LoadLayout error: %v", err)
	}
	if len(l.Panes) != 2 {
		t.Errorf("got %d panes, want 2", len(l.Panes))
	}

	if _, err := LoadLayout(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("LoadLayout should fail for a missing file")
	}
}
