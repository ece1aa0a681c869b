package models

// DocumentEmbedding is one precomputed entry of the documentation corpus:
// a package identifier, the raw document text, and its embedding vector.
// The corpus is loaded once per invocation and never mutated afterwards.
type DocumentEmbedding struct {
	Package   string    `json:"package"`
	Content   string    `json:"content"`
	Embedding []float32 `json:"embedding"`
}

// ScoredCandidate pairs a corpus document with its similarity score against
// the current question. It only exists while a ranking is in flight.
type ScoredCandidate struct {
	Document DocumentEmbedding
	Score    float64
}

// ConversationTurn is one prior comment in the triggering thread, in the
// chronological order GitHub returned it.
type ConversationTurn struct {
	AuthorLogin string
	Body        string
}
