package interp

// CallFrame is one entry in the evaluator's call stack: the locals of
// an in-progress function or method invocation, plus an optional bound
// receiver for method calls (spec.md §3: "call stack of frames (each
// frame holds a local-name → value map)").
type CallFrame struct {
	Locals   map[string]Value
	Receiver *Object // non-nil inside a bound-method call
}

func newCallFrame(receiver *Object) *CallFrame {
	return &CallFrame{Locals: make(map[string]Value), Receiver: receiver}
}

// CallStack is a simple LIFO stack of frames. Identifier resolution
// consults only the innermost frame's locals (spec.md §4.5: "innermost
// call-frame local"); there is no lexical nesting between frames.
type CallStack struct {
	frames []*CallFrame
}

func NewCallStack() *CallStack { return &CallStack{} }

func (c *CallStack) Push(frame *CallFrame) { c.frames = append(c.frames, frame) }

func (c *CallStack) Pop() {
	c.frames = c.frames[:len(c.frames)-1]
}

func (c *CallStack) Depth() int { return len(c.frames) }

// Top returns the innermost frame, or nil if the stack is empty (i.e.
// evaluation is at the top level, outside any function).
func (c *CallStack) Top() *CallFrame {
	if len(c.frames) == 0 {
		return nil
	}
	return c.frames[len(c.frames)-1]
}
