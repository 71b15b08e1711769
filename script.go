package grip

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Script formats accepted by DecodeScript.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Script errors.
var (
	ErrUnknownFormat = errors.New("unknown script format")
	ErrUnknownNode   = errors.New("unknown node")
	ErrUnknownAction = errors.New("unknown action")
	ErrUnknownKind   = errors.New("unknown interaction kind")
	ErrBadVector     = errors.New("vector must have 3 components")
	ErrEmptyScript   = errors.New("no steps")
)

// Script describes a scene of nodes and a sequence of pointer steps to
// replay against it, one controller call per frame.
type Script struct {
	Nodes []ScriptNode `json:"nodes" yaml:"nodes" toml:"nodes"`
	Steps []ScriptStep `json:"steps" yaml:"steps" toml:"steps"`
}

// ScriptNode declares one node. Parent names a node declared earlier; empty
// means the graph root.
type ScriptNode struct {
	Name          string             `json:"name" yaml:"name" toml:"name"`
	Parent        string             `json:"parent,omitempty" yaml:"parent,omitempty" toml:"parent,omitempty"`
	Position      []float32          `json:"position,omitempty" yaml:"position,omitempty" toml:"position,omitempty"`
	Scale         []float32          `json:"scale,omitempty" yaml:"scale,omitempty" toml:"scale,omitempty"`
	RotationAxis  []float32          `json:"rotationAxis,omitempty" yaml:"rotationAxis,omitempty" toml:"rotationAxis,omitempty"`
	RotationAngle float32            `json:"rotationAngle,omitempty" yaml:"rotationAngle,omitempty" toml:"rotationAngle,omitempty"`
	Interaction   *ScriptInteraction `json:"interaction,omitempty" yaml:"interaction,omitempty" toml:"interaction,omitempty"`
}

// ScriptInteraction configures a node's interaction type. Kind is "move",
// "turn" or "click". A move may carry either Box or Points.
type ScriptInteraction struct {
	Kind   string      `json:"kind" yaml:"kind" toml:"kind"`
	Axis   []float32   `json:"axis,omitempty" yaml:"axis,omitempty" toml:"axis,omitempty"`
	Box    *ScriptBox  `json:"box,omitempty" yaml:"box,omitempty" toml:"box,omitempty"`
	Points [][]float32 `json:"points,omitempty" yaml:"points,omitempty" toml:"points,omitempty"`
}

// ScriptBox is a BoxConstraint in script form.
type ScriptBox struct {
	Min []float32 `json:"min" yaml:"min" toml:"min"`
	Max []float32 `json:"max" yaml:"max" toml:"max"`
}

// ScriptRay is a Ray in script form.
type ScriptRay struct {
	Origin    []float32 `json:"origin" yaml:"origin" toml:"origin"`
	Direction []float32 `json:"direction" yaml:"direction" toml:"direction"`
}

// ScriptStep is a single action. Actions:
//
//	start, update, end   use Origin/Direction (update also Collided, default true)
//	cancel               needs only Target
//	drag                 start at From, Frames-2 updates ending at To, end at To
//	wait                 idles for Frames frames
type ScriptStep struct {
	Action    string     `json:"action" yaml:"action" toml:"action"`
	Target    string     `json:"target,omitempty" yaml:"target,omitempty" toml:"target,omitempty"`
	Origin    []float32  `json:"origin,omitempty" yaml:"origin,omitempty" toml:"origin,omitempty"`
	Direction []float32  `json:"direction,omitempty" yaml:"direction,omitempty" toml:"direction,omitempty"`
	Collided  *bool      `json:"collided,omitempty" yaml:"collided,omitempty" toml:"collided,omitempty"`
	From      *ScriptRay `json:"from,omitempty" yaml:"from,omitempty" toml:"from,omitempty"`
	To        *ScriptRay `json:"to,omitempty" yaml:"to,omitempty" toml:"to,omitempty"`
	Frames    int        `json:"frames,omitempty" yaml:"frames,omitempty" toml:"frames,omitempty"`
}

// FormatFromPath picks a script format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// DecodeScript parses a script in the given format and validates it.
func DecodeScript(data []byte, format string) (*Script, error) {
	var s Script
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&s)
	case FormatYAML:
		err = yaml.Unmarshal(data, &s)
	case FormatTOML:
		err = toml.Unmarshal(data, &s)
	default:
		return nil, fmt.Errorf("parse script: %w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadScriptFile reads and decodes a script, choosing the format from the
// file extension.
func LoadScriptFile(path string) (*Script, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("load script %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load script: %w", err)
	}
	s, err := DecodeScript(data, format)
	if err != nil {
		return nil, fmt.Errorf("load script %s: %w", path, err)
	}
	return s, nil
}

// Validate checks names, vectors and actions without building anything.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("parse script: %w", ErrEmptyScript)
	}
	known := make(map[string]bool, len(s.Nodes))
	for i, n := range s.Nodes {
		if n.Name == "" {
			return fmt.Errorf("node %d: empty name", i)
		}
		if known[n.Name] {
			return fmt.Errorf("node %q: duplicate name", n.Name)
		}
		if n.Parent != "" && !known[n.Parent] {
			return fmt.Errorf("node %q: parent %q: %w", n.Name, n.Parent, ErrUnknownNode)
		}
		if _, err := n.transform(); err != nil {
			return fmt.Errorf("node %q: %w", n.Name, err)
		}
		if n.Interaction != nil {
			if _, err := n.Interaction.interactionType(); err != nil {
				return fmt.Errorf("node %q: %w", n.Name, err)
			}
		}
		known[n.Name] = true
	}
	for i, st := range s.Steps {
		if _, err := st.resolve(func(name string) (Target, bool) {
			return 1, known[name]
		}); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

// --- Conversion helpers ---

// vec3 converts a script vector. Empty means def.
func vec3(v []float32, def mgl32.Vec3) (mgl32.Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return mgl32.Vec3{v[0], v[1], v[2]}, nil
	default:
		return mgl32.Vec3{}, fmt.Errorf("%w (got %d)", ErrBadVector, len(v))
	}
}

// nodeTransform is a decoded ScriptNode transform.
type nodeTransform struct {
	position    mgl32.Vec3
	orientation mgl32.Quat
	scale       mgl32.Vec3
}

func (n ScriptNode) transform() (nodeTransform, error) {
	var t nodeTransform
	var err error
	if t.position, err = vec3(n.Position, mgl32.Vec3{}); err != nil {
		return t, fmt.Errorf("position: %w", err)
	}
	if t.scale, err = vec3(n.Scale, mgl32.Vec3{1, 1, 1}); err != nil {
		return t, fmt.Errorf("scale: %w", err)
	}
	axis, err := vec3(n.RotationAxis, mgl32.Vec3{})
	if err != nil {
		return t, fmt.Errorf("rotationAxis: %w", err)
	}
	t.orientation = mgl32.QuatIdent()
	if unit, ok := safeNormalize(axis); ok && n.RotationAngle != 0 {
		t.orientation = mgl32.QuatRotate(n.RotationAngle, unit)
	}
	return t, nil
}

func (si ScriptInteraction) interactionType() (InteractionType, error) {
	switch strings.ToLower(si.Kind) {
	case "move":
		if si.Box != nil {
			lo, err := vec3(si.Box.Min, mgl32.Vec3{})
			if err != nil {
				return InteractionType{}, fmt.Errorf("box min: %w", err)
			}
			hi, err := vec3(si.Box.Max, mgl32.Vec3{})
			if err != nil {
				return InteractionType{}, fmt.Errorf("box max: %w", err)
			}
			return Move(Box(lo, hi)), nil
		}
		if si.Points != nil {
			pts := make([]mgl32.Vec3, 0, len(si.Points))
			for i, p := range si.Points {
				v, err := vec3(p, mgl32.Vec3{})
				if err != nil || len(p) == 0 {
					return InteractionType{}, fmt.Errorf("point %d: %w", i, ErrBadVector)
				}
				pts = append(pts, v)
			}
			return Move(Points(pts...)), nil
		}
		return Move(nil), nil
	case "turn":
		axis, err := vec3(si.Axis, mgl32.Vec3{0, 1, 0})
		if err != nil {
			return InteractionType{}, fmt.Errorf("axis: %w", err)
		}
		return Turn(axis), nil
	case "click":
		return Click(), nil
	default:
		return InteractionType{}, fmt.Errorf("%w: %q", ErrUnknownKind, si.Kind)
	}
}

func (sr *ScriptRay) ray() (Ray, error) {
	if sr == nil {
		return Ray{}, fmt.Errorf("missing ray")
	}
	o, err := vec3(sr.Origin, mgl32.Vec3{})
	if err != nil {
		return Ray{}, fmt.Errorf("origin: %w", err)
	}
	d, err := vec3(sr.Direction, mgl32.Vec3{})
	if err != nil {
		return Ray{}, fmt.Errorf("direction: %w", err)
	}
	return Ray{Origin: o, Direction: d}, nil
}

// resolvedStep is a ScriptStep with names and vectors decoded.
type resolvedStep struct {
	action   string
	target   Target
	ray      Ray
	from, to Ray
	collided bool
	frames   int
}

func (st ScriptStep) resolve(lookup func(string) (Target, bool)) (resolvedStep, error) {
	rs := resolvedStep{action: strings.ToLower(st.Action), collided: true, frames: st.Frames}
	if st.Collided != nil {
		rs.collided = *st.Collided
	}
	if rs.action == "wait" {
		return rs, nil
	}

	t, ok := lookup(st.Target)
	if !ok {
		return rs, fmt.Errorf("target %q: %w", st.Target, ErrUnknownNode)
	}
	rs.target = t

	var err error
	switch rs.action {
	case "start", "update", "end":
		rs.ray, err = (&ScriptRay{Origin: st.Origin, Direction: st.Direction}).ray()
	case "cancel":
	case "drag":
		if rs.from, err = st.From.ray(); err != nil {
			return rs, fmt.Errorf("from: %w", err)
		}
		if rs.to, err = st.To.ray(); err != nil {
			return rs, fmt.Errorf("to: %w", err)
		}
		if rs.frames < 2 {
			rs.frames = 2
		}
	default:
		return rs, fmt.Errorf("%w: %q", ErrUnknownAction, st.Action)
	}
	return rs, err
}
