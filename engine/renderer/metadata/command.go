package metadata

type CommandType uint8

const (
	CommandTypeClear CommandType = iota
	CommandTypeDraw
)

type ClearCommand struct {
	Target *RenderTarget
	Color  Color
}

// DrawBindings are the resources a draw binds beyond its slice. The target
// must match the pipeline's declared target format.
type DrawBindings struct {
	Target *RenderTarget
}

type DrawCommand struct {
	Slice    *Slice
	Pipeline *Pipeline
	Bindings DrawBindings
}

// Command is one recorded operation. Exactly one of Clear/Draw is set,
// according to Type.
type Command struct {
	Type  CommandType
	Clear *ClearCommand
	Draw  *DrawCommand
}

// CommandSequence is a frozen, ordered list of commands ready for submission.
// Backends must execute it in exactly this order; clear and draw commands are
// order-dependent.
type CommandSequence struct {
	Commands []Command
}

func (s *CommandSequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Commands)
}
