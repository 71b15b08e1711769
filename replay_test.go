package grip

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func loadReplay(t *testing.T, file string, d Delegate) *Replay {
	t.Helper()
	s, err := LoadScriptFile(filepath.Join("testdata", file))
	if err != nil {
		t.Fatalf("LoadScriptFile: %v", err)
	}
	r, err := NewReplay(s, d)
	if err != nil {
		t.Fatalf("NewReplay: %v", err)
	}
	return r
}

func TestReplaySliderDrag(t *testing.T) {
	rec := &recorder{}
	r := loadReplay(t, "slider.json", rec)

	if frames := r.Run(); frames != 6 {
		t.Errorf("frames = %d, want 6", frames)
	}
	if !r.Done() {
		t.Error("replay should be done")
	}

	thumb, ok := r.Target("thumb")
	if !ok {
		t.Fatal("thumb not found")
	}
	assertVec(t, "thumb", r.Graph().Node(thumb).Position, mgl32.Vec3{2, 0, 0})
	if rec.String() != "start,update,update,update,update,end" {
		t.Errorf("calls = %s", rec)
	}
	if !r.Started(thumb) {
		t.Error("start should have been accepted")
	}
}

func TestReplayKnobTurn(t *testing.T) {
	r := loadReplay(t, "knob.yaml", nil)

	if frames := r.Run(); frames != 5 {
		t.Errorf("frames = %d, want 5", frames)
	}
	knob, _ := r.Target("knob")
	n := r.Graph().Node(knob)
	assertNear(t, "angle", QuatAngle(n.Orientation), math.Pi/2)
	assertVec(t, "position", n.Position, mgl32.Vec3{1, 1, 0})
	if r.Controller().Dragging(knob) {
		t.Error("knob should be idle after end")
	}
}

func TestReplayButtonReleasedOutside(t *testing.T) {
	rec := &recorder{}
	r := loadReplay(t, "button.toml", rec)
	r.Run()

	want := "start,collision(false),update,outside,collision(false),end"
	if rec.String() != want {
		t.Errorf("calls = %s, want %s", rec, want)
	}
}

func TestReplayStepByStep(t *testing.T) {
	r := loadReplay(t, "knob.yaml", nil)
	knob, _ := r.Target("knob")

	r.Step()
	if !r.Controller().Dragging(knob) {
		t.Fatal("knob should be dragging after the first frame")
	}
	r.Step()
	if r.Frame() != 2 {
		t.Errorf("Frame = %d, want 2", r.Frame())
	}
	r.Step()
	r.Step()
	if !r.Controller().Dragging(knob) {
		t.Error("knob should still be dragging during the wait")
	}
	r.Step()
	if !r.Done() {
		t.Error("replay should be done after the end step")
	}

	r.Step() // no-op once done
	if r.Frame() != 5 {
		t.Errorf("Frame = %d after done, want 5", r.Frame())
	}
}

func TestReplayNodesInOrder(t *testing.T) {
	r := loadReplay(t, "slider.json", nil)
	nodes := r.Nodes()
	if len(nodes) != 2 || nodes[0].Name != "track" || nodes[1].Name != "thumb" {
		t.Fatalf("Nodes = %v", nodes)
	}
	if nodes[1].Parent != nodes[0] {
		t.Error("thumb should be parented to track")
	}
	if r.Controller().Attached(nodes[0].ID) {
		t.Error("track declares no interaction and should not be attached")
	}
}

func TestReplayRefusedStart(t *testing.T) {
	data := `{
		"nodes": [{"name": "knob", "interaction": {"kind": "turn", "axis": [0, 0, 1]}}],
		"steps": [{"action": "start", "target": "knob", "origin": [0, 0, 1], "direction": [1, 0, 0]}]
	}`
	s, err := DecodeScript([]byte(data), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewReplay(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	r.Run()
	knob, _ := r.Target("knob")
	if r.Started(knob) {
		t.Error("parallel start should be refused")
	}
}

func TestLerpRay(t *testing.T) {
	a := Ray{Origin: mgl32.Vec3{0, 0, 0}, Direction: mgl32.Vec3{0, 0, -2}}
	b := Ray{Origin: mgl32.Vec3{4, 0, 0}, Direction: mgl32.Vec3{0, 0, -4}}
	got := lerpRay(a, b, 0.5)
	assertVec(t, "origin", got.Origin, mgl32.Vec3{2, 0, 0})
	assertVec(t, "direction", got.Direction, mgl32.Vec3{0, 0, -3})
}
