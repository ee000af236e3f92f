package model

// Clause represents a grammatically meaningful fragment of a post,
// produced by the segmenter and fed to the claim classifier
type Clause struct {
	Text      string `json:"text"`       // The clause text, trimmed
	WordCount int    `json:"word_count"` // Whitespace-delimited word count (>= 3 for any surviving clause)
	Sentence  int    `json:"sentence"`   // Sentence index in the post (0-based)
}
