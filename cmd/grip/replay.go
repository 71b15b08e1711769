package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/grip"
	"github.com/phanxgames/grip/internal/watch"
	"github.com/spf13/cobra"
)

type replayOptions struct {
	format string
	json   bool
	watch  bool
	debug  bool
}

var replayOpts replayOptions

var replayCmd = &cobra.Command{
	Use:   "replay [script]",
	Short: "Run a script and print every interaction event",
	Long: `Build the script's node tree, attach interactive nodes to a controller and feed
the steps one per frame. Each event is printed as it fires, followed by the final
transform of every node.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplayCmd,
}

func init() {
	f := replayCmd.Flags()
	f.StringVar(&replayOpts.format, "format", "auto", "script format: auto, json, yaml or toml")
	f.BoolVar(&replayOpts.json, "json", false, "print events as JSON lines")
	f.BoolVar(&replayOpts.watch, "watch", false, "re-run whenever the script changes")
	f.BoolVar(&replayOpts.debug, "debug", false, "log refused starts and skipped updates to stderr")
	rootCmd.AddCommand(replayCmd)
}

func runReplayCmd(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := cmd.OutOrStdout()
	if err := runReplay(out, path, replayOpts); err != nil {
		if !replayOpts.watch {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	if !replayOpts.watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return watchReplay(ctx, out, cmd.ErrOrStderr(), path, replayOpts)
}

// watchReplay re-runs the script on every change until ctx is done.
func watchReplay(ctx context.Context, out, errOut io.Writer, path string, opts replayOptions) error {
	fw, err := watch.NewFileWatcher(100*time.Millisecond, func(err error) {
		fmt.Fprintf(errOut, "Watcher error: %v\n", err)
	})
	if err != nil {
		return err
	}
	defer fw.Close()

	var mu sync.Mutex
	if err := fw.Watch([]string{path}, func(string) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(out, "--- %s changed, replaying\n", path)
		if err := runReplay(out, path, opts); err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
		}
	}); err != nil {
		return err
	}
	fw.Start()
	fmt.Fprintf(errOut, "watching %s (Ctrl-C to stop)\n", path)
	<-ctx.Done()
	return nil
}

func loadScript(path, format string) (*grip.Script, error) {
	if format == "" || format == "auto" {
		return grip.LoadScriptFile(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load script: %w", err)
	}
	s, err := grip.DecodeScript(data, format)
	if err != nil {
		return nil, fmt.Errorf("load script %s: %w", path, err)
	}
	return s, nil
}

// eventLine is the JSON form of one printed event or final node state.
type eventLine struct {
	Frame       int        `json:"frame"`
	Event       string     `json:"event"`
	Node        string     `json:"node"`
	Kind        string     `json:"kind,omitempty"`
	Position    mgl32.Vec3 `json:"position"`
	Orientation [4]float32 `json:"orientation"` // w, x, y, z
	Angle       float32    `json:"angle,omitempty"`
	Collided    bool       `json:"collided,omitempty"`
}

func runReplay(out io.Writer, path string, opts replayOptions) error {
	s, err := loadScript(path, opts.format)
	if err != nil {
		return err
	}
	r, err := grip.NewReplay(s, nil)
	if err != nil {
		return err
	}
	c := r.Controller()
	c.SetDebugMode(opts.debug)
	defer c.SetDebugMode(false)

	names := make(map[grip.Target]string, len(r.Nodes()))
	for _, n := range r.Nodes() {
		names[n.ID] = n.Name
	}

	enc := json.NewEncoder(out)
	var writeErr error
	emit := func(line eventLine) {
		if writeErr != nil {
			return
		}
		if opts.json {
			writeErr = enc.Encode(line)
			return
		}
		_, writeErr = fmt.Fprintln(out, formatLine(line))
	}

	c.OnAny(func(ev grip.InteractionEvent) {
		emit(eventLine{
			Frame:       r.Frame(),
			Event:       ev.Type.String(),
			Node:        names[ev.Target],
			Kind:        ev.Kind.String(),
			Position:    ev.Position,
			Orientation: quatArray(ev.Orientation),
			Angle:       ev.Angle,
			Collided:    ev.Collided,
		})
	})

	frames := r.Run()
	for _, n := range r.Nodes() {
		emit(eventLine{
			Frame:       frames,
			Event:       "final",
			Node:        n.Name,
			Position:    n.Position,
			Orientation: quatArray(n.Orientation),
			Angle:       grip.QuatAngle(n.Orientation),
		})
	}
	return writeErr
}

func quatArray(q mgl32.Quat) [4]float32 {
	return [4]float32{q.W, q.V[0], q.V[1], q.V[2]}
}

func formatLine(l eventLine) string {
	p := l.Position
	s := fmt.Sprintf("%4d %-16s %-10s pos=(%.4g, %.4g, %.4g)", l.Frame, l.Event, l.Node, p[0], p[1], p[2])
	if l.Event == "final" || l.Kind == "turn" {
		s += fmt.Sprintf(" angle=%.4g", l.Angle)
	}
	if l.Kind == "click" {
		s += fmt.Sprintf(" collided=%v", l.Collided)
	}
	return s
}
