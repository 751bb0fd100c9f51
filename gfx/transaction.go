package gfx

// DisplayListUpdate replaces one pipeline's display list at a given
// epoch, together with the layout metadata the frame composites
// against.
type DisplayListUpdate struct {
	Epoch      Epoch
	Background *ColorF
	LayoutSize LayoutSize
	List       BuiltDisplayList
}

// FrameRequest asks the backend to build a new frame from the current
// scene state.
type FrameRequest struct {
	Seq     uint64
	Reasons RenderReasons
}

// Transaction is a one-shot, write-only batch of scene and frame
// commands. It is constructed fresh per submission, filled through
// its setters and consumed whole by RenderAPI.SendTransaction; it has
// no retained identity afterwards. An empty transaction is valid and
// acts as a pure state pump.
type Transaction struct {
	DisplayList  *DisplayListUpdate
	RootPipeline *PipelineID
	Frame        *FrameRequest
}

// NewTransaction creates an empty transaction.
func NewTransaction() *Transaction {
	return &Transaction{}
}

// SetDisplayList records a display list replacement for the epoch.
// A nil background keeps the backend's configured clear color.
func (t *Transaction) SetDisplayList(epoch Epoch, background *ColorF, layout LayoutSize, list BuiltDisplayList) {
	t.DisplayList = &DisplayListUpdate{
		Epoch:      epoch,
		Background: background,
		LayoutSize: layout,
		List:       list,
	}
}

// SetRootPipeline records which pipeline the document composites as
// its root.
func (t *Transaction) SetRootPipeline(pipeline PipelineID) {
	p := pipeline
	t.RootPipeline = &p
}

// GenerateFrame requests that a frame be built once the rest of the
// transaction has been applied.
func (t *Transaction) GenerateFrame(seq uint64, reasons RenderReasons) {
	t.Frame = &FrameRequest{Seq: seq, Reasons: reasons}
}

// IsEmpty reports whether the transaction carries no commands.
func (t *Transaction) IsEmpty() bool {
	return t.DisplayList == nil && t.RootPipeline == nil && t.Frame == nil
}
