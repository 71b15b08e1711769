package grip

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"a.json", FormatJSON, false},
		{"dir/b.YAML", FormatYAML, false},
		{"c.yml", FormatYAML, false},
		{"d.toml", FormatTOML, false},
		{"e.txt", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromPath(%q) err = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("FormatFromPath(%q) err = %v, want ErrUnknownFormat", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestLoadScriptFileFormats(t *testing.T) {
	tests := []struct {
		file  string
		nodes int
		steps int
	}{
		{"slider.json", 2, 1},
		{"knob.yaml", 1, 4},
		{"button.toml", 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			s, err := LoadScriptFile(filepath.Join("testdata", tt.file))
			if err != nil {
				t.Fatalf("LoadScriptFile: %v", err)
			}
			if len(s.Nodes) != tt.nodes || len(s.Steps) != tt.steps {
				t.Errorf("got %d nodes, %d steps; want %d, %d", len(s.Nodes), len(s.Steps), tt.nodes, tt.steps)
			}
		})
	}
}

func TestLoadScriptFileMissing(t *testing.T) {
	if _, err := LoadScriptFile(filepath.Join("testdata", "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDecodeScriptErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		format  string
		wantErr error
	}{
		{"unknown format", `{}`, "xml", ErrUnknownFormat},
		{"no steps", `{"nodes": []}`, FormatJSON, ErrEmptyScript},
		{
			"unknown target",
			`{"steps": [{"action": "cancel", "target": "ghost"}]}`,
			FormatJSON, ErrUnknownNode,
		},
		{
			"unknown parent",
			`{"nodes": [{"name": "a", "parent": "b"}], "steps": [{"action": "wait"}]}`,
			FormatJSON, ErrUnknownNode,
		},
		{
			"bad vector",
			`{"nodes": [{"name": "a"}], "steps": [{"action": "start", "target": "a", "origin": [1, 2]}]}`,
			FormatJSON, ErrBadVector,
		},
		{
			"bad position",
			`{"nodes": [{"name": "a", "position": [1, 2, 3, 4]}], "steps": [{"action": "wait"}]}`,
			FormatJSON, ErrBadVector,
		},
		{
			"unknown action",
			`{"nodes": [{"name": "a"}], "steps": [{"action": "jump", "target": "a"}]}`,
			FormatJSON, ErrUnknownAction,
		},
		{
			"unknown kind",
			`{"nodes": [{"name": "a", "interaction": {"kind": "spin"}}], "steps": [{"action": "wait"}]}`,
			FormatJSON, ErrUnknownKind,
		},
		{
			"yaml bad vector",
			"nodes:\n  - name: a\n    interaction: {kind: turn, axis: [0, 1]}\nsteps:\n  - action: wait\n",
			FormatYAML, ErrBadVector,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeScript([]byte(tt.data), tt.format)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecodeScriptSyntaxErrors(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatYAML, FormatTOML} {
		if _, err := DecodeScript([]byte("{[: not valid"), format); err == nil {
			t.Errorf("%s: expected parse error", format)
		}
	}
}

func TestDecodeScriptRejectsUnknownJSONFields(t *testing.T) {
	data := `{"steps": [{"action": "wait"}], "extra": 1}`
	if _, err := DecodeScript([]byte(data), FormatJSON); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestDragNeedsBothRays(t *testing.T) {
	data := `{"nodes": [{"name": "a"}], "steps": [{"action": "drag", "target": "a", "from": {"origin": [0,0,1], "direction": [0,0,-1]}}]}`
	if _, err := DecodeScript([]byte(data), FormatJSON); err == nil {
		t.Error("expected error for drag without to")
	}
}
