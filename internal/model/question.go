package model

// QuestionType categorizes the interrogative form of a trivia question.
type QuestionType string

const (
	QuestionWhat  QuestionType = "what"
	QuestionWho   QuestionType = "who"
	QuestionWhen  QuestionType = "when"
	QuestionWhere QuestionType = "where"
	QuestionWhich QuestionType = "which"
)

// SourceCategory identifies which fact category of the record a question was
// built from. The answer is always reachable from the same category.
type SourceCategory string

const (
	SourceIdentity       SourceCategory = "identity"
	SourceSpecies        SourceCategory = "species"
	SourceBirth          SourceCategory = "birth"
	SourceFamily         SourceCategory = "family"
	SourceExtendedFamily SourceCategory = "extended_family"
	SourceNickname       SourceCategory = "nickname"
	SourcePortrayal      SourceCategory = "portrayal"
	SourceAppearance     SourceCategory = "appearance"
	SourceEvent          SourceCategory = "event"
	SourceCharacteristic SourceCategory = "characteristic"
	SourceLocation       SourceCategory = "location"
	SourceObject         SourceCategory = "object"
)

// Difficulty is the ordinal difficulty bucket of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Question is one synthesized trivia question/answer pair. Instances are
// derived and stateless - cheap to regenerate from the source record.
type Question struct {
	ID         string         `json:"id"`
	Type       QuestionType   `json:"type"`
	Text       string         `json:"question"`
	Answer     string         `json:"answer"`
	Score      float64        `json:"score"`
	Difficulty Difficulty     `json:"difficulty"`
	Source     SourceCategory `json:"source"`
	Character  string         `json:"character"`
	Series     string         `json:"series,omitempty"`
	Episode    string         `json:"episode,omitempty"`
	Verified   bool           `json:"verified"`
}
