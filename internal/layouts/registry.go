// Package layouts loads the layout registry: the named editor layout presets
// described by the switcher's config file.
package layouts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrConfigNotFound is returned when the registry file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
	// ErrInvalidConfig is returned when the registry file cannot be parsed.
	ErrInvalidConfig = errors.New("invalid configuration file")
	// ErrLayoutNotFound is returned by Lookup for an unknown layout id.
	ErrLayoutNotFound = errors.New("layout not found")
)

// ConfigError reports a registry document that could not be parsed. It matches
// ErrInvalidConfig with errors.Is.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return "invalid configuration file: " + e.Err.Error() }

func (e *ConfigError) Unwrap() error { return e.Err }

func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }

// Layout describes one preset.
type Layout struct {
	ID                    string   `json:"id" yaml:"-"`
	Name                  string   `json:"name" yaml:"name"`
	Description           string   `json:"description" yaml:"description"`
	RecommendedResolution string   `json:"recommended_resolution" yaml:"recommended_resolution"`
	UseCases              []string `json:"use_cases" yaml:"use_cases"`
	File                  string   `json:"file" yaml:"file"` // relative to the layouts directory
}

// SourcePath resolves the preset file against dir. Absolute paths are returned unchanged.
func (l Layout) SourcePath(dir string) string {
	if filepath.IsAbs(l.File) {
		return l.File
	}
	return filepath.Join(dir, l.File)
}

// Registry maps layout ids to layouts and keeps the order they were declared in.
type Registry struct {
	order   []string
	entries map[string]Layout
}

// document is the on-disk shape: {"layouts": {<id>: {...}}}.
type document struct {
	Layouts *Registry `json:"layouts" yaml:"layouts"`
}

// Load reads the registry from path. Files ending in .yaml or .yml are parsed as YAML,
// everything else as JSON.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes a registry document. ext selects the format the same way Load does.
func Parse(data []byte, ext string) (*Registry, error) {
	var doc document
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &ConfigError{Err: err}
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, &ConfigError{Err: err}
		}
	}
	if doc.Layouts == nil {
		return nil, &ConfigError{Err: errors.New("missing \"layouts\" object")}
	}
	return doc.Layouts, nil
}

// Lookup returns the layout registered under id.
func (r *Registry) Lookup(id string) (Layout, error) {
	l, ok := r.entries[id]
	if !ok {
		return Layout{}, fmt.Errorf("%w: '%s'", ErrLayoutNotFound, id)
	}
	return l, nil
}

// IDs returns the layout ids in declaration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// All returns every layout in declaration order.
func (r *Registry) All() []Layout {
	all := make([]Layout, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, r.entries[id])
	}
	return all
}

// Len returns the number of layouts.
func (r *Registry) Len() int {
	return len(r.order)
}

// add registers l under id. A repeated id keeps its first position and takes the new value.
func (r *Registry) add(id string, l Layout) {
	if r.entries == nil {
		r.entries = make(map[string]Layout)
	}
	if _, exists := r.entries[id]; !exists {
		r.order = append(r.order, id)
	}
	l.ID = id
	r.entries[id] = l
}

// UnmarshalJSON walks the object token by token so declaration order survives.
func (r *Registry) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("\"layouts\" must be an object")
	}
	*r = Registry{entries: make(map[string]Layout)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		id, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected key %v", keyTok)
		}
		var l Layout
		if err := dec.Decode(&l); err != nil {
			return fmt.Errorf("layout %q: %w", id, err)
		}
		r.add(id, l)
	}
	_, err = dec.Token()
	return err
}

// UnmarshalYAML reads the mapping node pairwise to keep declaration order.
func (r *Registry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: \"layouts\" must be a mapping", node.Line)
	}
	*r = Registry{entries: make(map[string]Layout)}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		var l Layout
		if err := valueNode.Decode(&l); err != nil {
			return fmt.Errorf("layout %q: %w", keyNode.Value, err)
		}
		r.add(keyNode.Value, l)
	}
	return nil
}
