// Package brainstorm implements the C13 BrainstormOrchestrator: interactive
// business ideation with persona-swapped system prompts ("thinking hats"),
// a reverse-brainstorm critique stage, and canvas-candidate extraction.
// Grounded on original_source's three-stage psychological framework: Input
// (free chat), Refinery (reverse brainstorm / critique), Anchor (canvas —
// externalized survivors of the critique).
package brainstorm

import "time"

// Source is one web-search hit a response drew on, echoed back to the
// caller alongside the generated content.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Message is one brainstorm turn, mirroring the original BrainstormMessage
// dataclass shape.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Sources   []Source  `json:"sources,omitempty"`
}

// HistoryEntry is one prior turn of conversation fed back in as context.
type HistoryEntry struct {
	Role    string
	Content string
}

// CanvasPriority is the urgency label ExtractCanvasCandidates assigns.
type CanvasPriority string

const (
	PriorityHigh   CanvasPriority = "high"
	PriorityMedium CanvasPriority = "medium"
	PriorityLow    CanvasPriority = "low"
)

// CanvasCategory classifies an extracted idea for canvas display.
type CanvasCategory string

const (
	CategoryFeature     CanvasCategory = "feature"
	CategoryRisk        CanvasCategory = "risk"
	CategoryOpportunity CanvasCategory = "opportunity"
	CategoryInsight     CanvasCategory = "insight"
)

// CanvasCandidate is one idea the synthesis pass decided survived critique
// and is worth pinning to the canvas.
type CanvasCandidate struct {
	Title    string         `json:"title"`
	Category CanvasCategory `json:"category"`
	Content  string         `json:"content"`
	Priority CanvasPriority `json:"priority"`
}

// CanvasResult is ExtractCanvasCandidates' output.
type CanvasResult struct {
	Ideas   []CanvasCandidate `json:"ideas"`
	Message string            `json:"message"`
}
