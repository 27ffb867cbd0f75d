// Package manifest parses TOML layout manifests.
//
// Manifests are the hand-authored input format: a named layout with one
// [[pane]] table per pane. They are deliberately more forgiving than the
// JSON wire format, pane IDs may be omitted and are filled in with
// generated UUIDs during conversion.
//
// Example manifest:
//
//	name = "dashboard"
//
//	[[pane]]
//	id = "sidebar"
//	top = 0
//	left = 0
//	right = 25
//	bottom = 100
//	min_width = 10
//
//	[[pane]]
//	top = 0
//	left = 25
//	right = 100
//	bottom = 100
//
//	[pane.props]
//	title = "Editor"
package manifest

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/matzehuels/tilegrid/pkg/layout"
)

// Manifest is the decoded shape of a TOML layout manifest.
type Manifest struct {
	Name  string `toml:"name"`
	Panes []Pane `toml:"pane"`
}

// Pane is a single [[pane]] table. Bounds are percentages in [0, 100].
type Pane struct {
	ID        string         `toml:"id"`
	Top       float64        `toml:"top"`
	Right     float64        `toml:"right"`
	Bottom    float64        `toml:"bottom"`
	Left      float64        `toml:"left"`
	MinWidth  float64        `toml:"min_width"`
	MinHeight float64        `toml:"min_height"`
	Props     map[string]any `toml:"props"`
}

// Parse decodes a TOML manifest from bytes.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// ParseFile reads and decodes a TOML manifest file.
func ParseFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ToLayout converts a manifest into a validated wire layout.
// Panes without an ID get a generated UUID, so hand-written manifests
// only need IDs for panes the author wants to reference.
func (m *Manifest) ToLayout() (layout.Layout, error) {
	l := layout.Layout{Panes: make([]layout.Pane, len(m.Panes))}
	for i, p := range m.Panes {
		id := p.ID
		if id == "" {
			id = uuid.NewString()
		}
		l.Panes[i] = layout.Pane{
			ID:        id,
			Top:       p.Top,
			Right:     p.Right,
			Bottom:    p.Bottom,
			Left:      p.Left,
			MinWidth:  p.MinWidth,
			MinHeight: p.MinHeight,
			Props:     p.Props,
		}
	}
	if err := l.Validate(); err != nil {
		return layout.Layout{}, err
	}
	return l, nil
}

// LoadLayout is the common path for CLI commands: read a manifest file
// and convert it in one step.
func LoadLayout(path string) (layout.Layout, error) {
	m, err := ParseFile(path)
	if err != nil {
		return layout.Layout{}, err
	}
	return m.ToLayout()
}
