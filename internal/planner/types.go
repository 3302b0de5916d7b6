package planner

import "github.com/backmassage/mtsmux/internal/engine"

// Action describes how a plan treats the video stream.
type Action int

const (
	ActionRemux  Action = iota // Copy the video stream into the new container.
	ActionEncode               // Decode, filter and re-encode the video stream.
)

func (a Action) String() string {
	switch a {
	case ActionRemux:
		return "remux"
	case ActionEncode:
		return "encode"
	}
	return "unknown"
}

// Plan is one engine operation plus its success criteria. Plans are
// produced by [BuildPlans] and tried by the pipeline in declaration order.
type Plan struct {
	Name        string
	Action      Action
	Description string

	// Args are engine argument tokens. The tokens engine.InputName and
	// engine.OutputName refer to scratch entries.
	Args []string

	// MinOutputBytes flags a run that "succeeded" with a near-empty output
	// as failed. Zero disables the check.
	MinOutputBytes int64
}

// Operation converts the plan into the engine's invocation type.
func (p Plan) Operation() engine.Operation {
	args := make([]string, len(p.Args))
	copy(args, p.Args)
	return engine.Operation{Name: p.Name, Args: args}
}

// TooSmall reports whether n bytes of output fail the plan's size check.
func (p Plan) TooSmall(n int) bool {
	return p.MinOutputBytes > 0 && int64(n) < p.MinOutputBytes
}
