package model

// SeriesCodes lists the series abbreviations recognized in episode templates
// like {{DS9|Time's Orphan}}. Appearance maps always carry every code as a
// key so consumers can rely on key existence.
var SeriesCodes = []string{"TNG", "DS9", "TOS", "VOY", "ENT", "DIS", "PIC", "LD", "PRO", "SNW"}

// SeriesNames maps series codes to their full display names.
var SeriesNames = map[string]string{
	"TNG": "The Next Generation",
	"DS9": "Deep Space Nine",
	"TOS": "The Original Series",
	"VOY": "Voyager",
	"ENT": "Enterprise",
	"DIS": "Discovery",
	"PIC": "Picard",
	"LD":  "Lower Decks",
	"PRO": "Prodigy",
	"SNW": "Strange New Worlds",
}

// ExtendedRelationKinds lists the extended-family categories parsed from the
// |relative sidebar field. Every kind is always present as a key in
// Family.Extended, empty when nothing was extracted.
var ExtendedRelationKinds = []string{
	"paternal_grandfather",
	"paternal_grandmother",
	"maternal_grandfather",
	"maternal_grandmother",
	"maternal_great_grandmother",
	"paternal_ancestor",
	"daughter_in_law",
	"son_in_law",
	"grandson",
	"granddaughter",
	"father_in_law",
	"mother_in_law",
	"brother_in_law",
	"sister_in_law",
	"cousin",
	"uncle",
	"aunt",
	"nephew",
	"niece",
}

// Relation is one family/relationship claim: a name, the kind of relation,
// and optional annotations captured next to the name.
type Relation struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Nickname string `json:"nickname,omitempty"`
	Via      string `json:"via,omitempty"` // indirect qualifier, e.g. relation through marriage
}

// Birth holds extracted birth facts. Both fields are null when unextractable.
type Birth struct {
	Year     *int    `json:"year"`
	Location *string `json:"location"`
}

// Family groups typed relation slots. Scalar slots are null when absent,
// list slots are empty, never nil.
type Family struct {
	Father   *Relation             `json:"father"`
	Mother   *Relation             `json:"mother"`
	Spouses  []Relation            `json:"spouses"`
	Children []Relation            `json:"children"`
	Siblings []Relation            `json:"siblings"`
	Extended map[string][]Relation `json:"extended"`
}

// NewFamily returns a Family with every slot initialized so that serialized
// records always carry the full key set.
func NewFamily() Family {
	ext := make(map[string][]Relation, len(ExtendedRelationKinds))
	for _, kind := range ExtendedRelationKinds {
		ext[kind] = []Relation{}
	}
	return Family{
		Spouses:  []Relation{},
		Children: []Relation{},
		Siblings: []Relation{},
		Extended: ext,
	}
}

// Portrayal records one actor credit with the role qualifier, e.g. "primary"
// or "infant".
type Portrayal struct {
	Actor string `json:"actor"`
	Role  string `json:"role"`
}

// Event is one timeline entry. Summary is retained verbatim; it is the
// canonical source for downstream phrase extraction. Episode and Series are
// null when no marker could be resolved - the event is still a fact.
type Event struct {
	Label   string  `json:"label"`
	Episode *string `json:"episode"`
	Series  *string `json:"series"`
	Summary string  `json:"summary"`
}

// LocationStay records a place the character lived with period and reason.
type LocationStay struct {
	Name   string `json:"name"`
	Period string `json:"period,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Object records an item associated with the character.
type Object struct {
	Name    string `json:"name"`
	Context string `json:"context,omitempty"`
}

// CharacterRecord is the normalized output of one extraction run over one
// page. Immutable once built; re-extraction replaces it wholesale. Every
// schema field is present in JSON - nulls for missing scalars, empty lists
// for missing list values.
type CharacterRecord struct {
	Name            string              `json:"name"`
	Species         *string             `json:"species"`
	Status          *string             `json:"status"`
	Born            Birth               `json:"born"`
	Family          Family              `json:"family"`
	PortrayedBy     []Portrayal         `json:"portrayed_by"`
	Appearances     map[string][]string `json:"appearances"`
	NotableEvents   []Event             `json:"notable_events"`
	Characteristics []string            `json:"characteristics"`
	Locations       []LocationStay      `json:"locations"`
	Objects         []Object            `json:"objects"`
}

// NewCharacterRecord returns a record with every list and map slot
// initialized for the given character name.
func NewCharacterRecord(name string) *CharacterRecord {
	apps := make(map[string][]string, len(SeriesCodes))
	for _, code := range SeriesCodes {
		apps[code] = []string{}
	}
	return &CharacterRecord{
		Name:            name,
		Family:          NewFamily(),
		PortrayedBy:     []Portrayal{},
		Appearances:     apps,
		NotableEvents:   []Event{},
		Characteristics: []string{},
		Locations:       []LocationStay{},
		Objects:         []Object{},
	}
}

// IsStub reports whether extraction recovered nothing beyond the name.
// Stub records are skipped by batch extraction.
func (r *CharacterRecord) IsStub() bool {
	if r.Species != nil || r.Status != nil || r.Born.Year != nil || r.Born.Location != nil {
		return false
	}
	if r.Family.Father != nil || r.Family.Mother != nil ||
		len(r.Family.Spouses) > 0 || len(r.Family.Children) > 0 || len(r.Family.Siblings) > 0 {
		return false
	}
	for _, rels := range r.Family.Extended {
		if len(rels) > 0 {
			return false
		}
	}
	for _, eps := range r.Appearances {
		if len(eps) > 0 {
			return false
		}
	}
	return len(r.PortrayedBy) == 0 && len(r.NotableEvents) == 0 &&
		len(r.Characteristics) == 0 && len(r.Locations) == 0 && len(r.Objects) == 0
}

// CharacterDocument is the file-resident shape: the record plus the trivia
// facts derived from it, under the top-level character / trivia_facts keys.
type CharacterDocument struct {
	Character   *CharacterRecord `json:"character"`
	TriviaFacts []Question       `json:"trivia_facts"`
}
