package profile

import "io"

// The pipeline's outputs are consumed by collaborators that live outside the
// core: report and export surfaces, chart generation, and chat grounding.
// These seams keep the core free of any rendering or transport concern.

// Renderer turns a profile result into a human-facing representation
// (markdown report, JSON payload, and the like).
type Renderer interface {
	Render(*Result) (string, error)
}

// Exporter writes the cleaned dataset of a result to an external format.
type Exporter interface {
	Export(w io.Writer, res *Result) error
}

// Document is one descriptive text unit handed to a retrieval or chat
// collaborator.
type Document struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// ContextBuilder produces descriptive documents about a result for
// retrieval-index or chat-grounding collaborators.
type ContextBuilder interface {
	Documents(*Result) []Document
}
