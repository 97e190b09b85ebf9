package tacmap

import (
	"encoding/json"
	"fmt"
)

// scriptStep is one entry of a JSON test script. Which fields apply depends
// on Action:
//
//	click      x, y
//	drag       fromX, fromY, toX, toY, frames, button ("left", "right", "middle")
//	wheel      x, y, value (notches)
//	wait       frames
//	screenshot label
//	projection mode ("orthogonal" or "isometric")
//	cellSize   value
//	zoom       value
//	rotation   value (degrees)
//	pan        x, y
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Button string  `json:"button,omitempty"`
	Mode   string  `json:"mode,omitempty"`
	Value  float64 `json:"value,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

// scriptActions lists the known actions and validates their arguments.
var scriptActions = map[string]func(scriptStep) error{
	"click":      nil,
	"drag":       nil,
	"wheel":      nil,
	"wait":       nil,
	"screenshot": nil,
	"cellSize":   nil,
	"zoom":       nil,
	"rotation":   nil,
	"pan":        nil,
	"projection": func(st scriptStep) error {
		if _, ok := parseProjection(st.Mode); !ok {
			return fmt.Errorf("unknown projection %q", st.Mode)
		}
		return nil
	},
}

// TestRunner plays a script of injected input, context changes and
// screenshots, one step per frame. Attach it with Session.SetTestRunner.
type TestRunner struct {
	steps   []scriptStep
	next    int
	waiting int
	done    bool
}

// LoadTestScript parses and validates a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range sc.Steps {
		check, ok := scriptActions[st.Action]
		if !ok {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
		if check == nil {
			continue
		}
		if err := check(st); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: sc.Steps}, nil
}

// SetTestRunner attaches runner to the session. Session.Update steps it
// before processing input each frame.
func (s *Session) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether every step has run and its input has drained.
func (r *TestRunner) Done() bool {
	return r.done
}

// step runs at most one script step. Queued input from an earlier step and
// pending wait frames hold the script back.
func (r *TestRunner) step(s *Session) {
	if r.done || len(s.injectQueue) > 0 {
		return
	}
	if r.waiting > 0 {
		r.waiting--
		return
	}
	if r.next == len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.next]
	r.next++
	r.run(s, st)

	if r.next == len(r.steps) && r.waiting == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}

func (r *TestRunner) run(s *Session, st scriptStep) {
	ctx := s.ctx
	switch st.Action {
	case "click":
		s.InjectClick(st.X, st.Y)
	case "drag":
		s.InjectButtonDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames, parseButton(st.Button))
	case "wheel":
		s.InjectWheel(st.X, st.Y, st.Value)
	case "wait":
		// The current frame counts as the first.
		r.waiting = max(st.Frames-1, 0)
	case "screenshot":
		s.Screenshot(st.Label)
	case "projection":
		p, _ := parseProjection(st.Mode)
		ctx.SetProjection(p)
	case "cellSize":
		if st.Value > 0 {
			ctx.SetGridCellSize(st.Value)
		}
	case "zoom":
		if st.Value > 0 {
			ctx.SetZoom(st.Value)
		}
	case "rotation":
		ctx.SetRotation(st.Value)
	case "pan":
		ctx.SetPan(st.X, st.Y)
	}
}

func parseProjection(mode string) (Projection, bool) {
	switch mode {
	case "orthogonal":
		return ProjectionOrthogonal, true
	case "isometric":
		return ProjectionIsometric, true
	}
	return ProjectionOrthogonal, false
}

func parseButton(name string) MouseButton {
	switch name {
	case "right":
		return MouseButtonRight
	case "middle":
		return MouseButtonMiddle
	default:
		return MouseButtonLeft
	}
}
