package model

// CorrectionPattern is one learned generalization of a human correction.
// Invariant: substituting ContextualItem (and the context fields) back into
// Generalized reproduces Corrected byte-for-byte. Patterns persist across
// runs in an append-only library deduplicated by Generalized.
type CorrectionPattern struct {
	Original       string         `json:"original_template"`
	Corrected      string         `json:"corrected_template"`
	Generalized    string         `json:"generalized_template"`
	ContextualItem string         `json:"contextual_item,omitempty"`
	ItemPattern    string         `json:"item_pattern,omitempty"` // regex locating the item in event text
	QuestionType   QuestionType   `json:"question_type"`
	Source         SourceCategory `json:"source"`
	Uses           int            `json:"uses"`
}
