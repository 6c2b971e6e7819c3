package generate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/lorefoundry/triviaforge/internal/extract"
	"github.com/lorefoundry/triviaforge/internal/model"
)

// Synthesizer turns a character record into trivia questions. Learned
// correction patterns take priority over built-in templates; every answer is
// derived from the same record fields as the question text.
type Synthesizer struct {
	cfg           model.GenerateConfig
	patterns      []model.CorrectionPattern
	detector      *Detector
	enabled       map[model.QuestionType]bool
	onTemplateUse func(generalized string)
}

// NewSynthesizer builds a synthesizer over the given correction patterns.
// The originals of the patterns seed the detector's rejected list, so a
// phrasing a human already corrected is never emitted again.
func NewSynthesizer(cfg model.GenerateConfig, patterns []model.CorrectionPattern) *Synthesizer {
	enabled := make(map[model.QuestionType]bool, len(cfg.QuestionTypes))
	for _, qt := range cfg.QuestionTypes {
		enabled[model.QuestionType(strings.ToLower(qt))] = true
	}

	var rejected []string
	for _, p := range patterns {
		if frag := literalFragment(p.Original); frag != "" {
			rejected = append(rejected, frag)
		}
	}

	return &Synthesizer{
		cfg:      cfg,
		patterns: patterns,
		detector: NewDetector(rejected),
		enabled:  enabled,
	}
}

// OnTemplateUse registers a callback fired each time a learned correction
// template produces a question, so the library's use counters track
// application, not just learning. The callback must be safe for concurrent
// use when records are synthesized in parallel.
func (s *Synthesizer) OnTemplateUse(fn func(generalized string)) {
	s.onTemplateUse = fn
}

// literalFragment extracts the longest placeholder-free run of a rejected
// template, the part worth matching against future questions.
func literalFragment(template string) string {
	longest := ""
	for _, part := range placeholderRe.Split(template, -1) {
		part = strings.TrimSpace(part)
		if len(strings.Fields(part)) >= 3 && len(part) > len(longest) {
			longest = part
		}
	}
	return longest
}

// Synthesize produces the question set for one record.
func (s *Synthesizer) Synthesize(rec *model.CharacterRecord) []model.Question {
	questions := []model.Question{}
	add := func(q model.Question, ok bool) {
		if ok {
			questions = append(questions, q)
		}
	}

	if rec.Species != nil {
		add(s.build(model.QuestionWhat, model.SourceSpecies, rec,
			fmt.Sprintf("What species was %s?", rec.Name), *rec.Species, "", ""))
	}
	if rec.Born.Year != nil {
		add(s.build(model.QuestionWhen, model.SourceBirth, rec,
			fmt.Sprintf("In what year was %s born?", rec.Name), strconv.Itoa(*rec.Born.Year), "", ""))
	}
	if rec.Born.Location != nil {
		add(s.build(model.QuestionWhere, model.SourceBirth, rec,
			fmt.Sprintf("Where was %s born?", rec.Name), *rec.Born.Location, "", ""))
	}

	questions = append(questions, s.familyQuestions(rec)...)
	questions = append(questions, s.portrayalQuestions(rec)...)
	questions = append(questions, s.appearanceQuestions(rec)...)
	for _, ev := range rec.NotableEvents {
		questions = append(questions, s.eventQuestions(rec, ev)...)
	}
	if len(rec.Characteristics) > 0 {
		add(s.build(model.QuestionWhat, model.SourceCharacteristic, rec,
			fmt.Sprintf("What characteristic was %s known for?", rec.Name), rec.Characteristics[0], "", ""))
	}
	questions = append(questions, s.locationQuestions(rec)...)
	questions = append(questions, s.objectQuestions(rec)...)

	if max := s.cfg.MaxQuestionsPerRecord; max > 0 && len(questions) > max {
		questions = questions[:max]
	}
	return questions
}

// build assembles one question, or reports ok=false when the type is
// disabled, the answer is empty, the difficulty cap is exceeded, or the
// detector flags the text.
func (s *Synthesizer) build(qt model.QuestionType, src model.SourceCategory, rec *model.CharacterRecord, text, answer, series, episode string) (model.Question, bool) {
	if text == "" || answer == "" || !s.enabled[qt] {
		return model.Question{}, false
	}
	if len(s.detector.Flag(text)) > 0 {
		return model.Question{}, false
	}

	q := model.Question{
		ID:        uuid.NewString(),
		Type:      qt,
		Text:      text,
		Answer:    answer,
		Source:    src,
		Character: rec.Name,
		Series:    series,
		Episode:   episode,
	}
	q.Score = Score(&q)
	q.Difficulty = LevelOf(q.Score)
	if s.cfg.MaxDifficulty > 0 && q.Score > s.cfg.MaxDifficulty {
		return model.Question{}, false
	}
	return q, true
}

// relationLabels give the singular and plural wordings per family slot.
var relationLabels = map[string][2]string{
	"spouse":  {"spouse", "spouses"},
	"child":   {"child", "children"},
	"sibling": {"sibling", "siblings"},
}

func (s *Synthesizer) familyQuestions(rec *model.CharacterRecord) []model.Question {
	var questions []model.Question
	add := func(q model.Question, ok bool) {
		if ok {
			questions = append(questions, q)
		}
	}

	if rec.Family.Father != nil {
		add(s.build(model.QuestionWho, model.SourceFamily, rec,
			fmt.Sprintf("Who was %s's father?", rec.Name), rec.Family.Father.Name, "", ""))
	}
	if rec.Family.Mother != nil {
		add(s.build(model.QuestionWho, model.SourceFamily, rec,
			fmt.Sprintf("Who was %s's mother?", rec.Name), rec.Family.Mother.Name, "", ""))
	}
	for _, grp := range []struct {
		kind string
		rels []model.Relation
	}{
		{"spouse", rec.Family.Spouses},
		{"child", rec.Family.Children},
		{"sibling", rec.Family.Siblings},
	} {
		rels := grp.rels
		if len(rels) == 0 {
			continue
		}
		labels := relationLabels[grp.kind]
		if len(rels) == 1 {
			add(s.build(model.QuestionWho, model.SourceFamily, rec,
				fmt.Sprintf("Who was %s's %s?", rec.Name, labels[0]), rels[0].Name, "", ""))
		} else {
			add(s.build(model.QuestionWho, model.SourceFamily, rec,
				fmt.Sprintf("Who were %s's %s?", rec.Name, labels[1]), joinNames(rels), "", ""))
		}
	}

	for _, kind := range model.ExtendedRelationKinds {
		rels := rec.Family.Extended[kind]
		if len(rels) == 0 {
			continue
		}
		display := strings.ReplaceAll(kind, "_", " ")
		add(s.build(model.QuestionWho, model.SourceExtendedFamily, rec,
			fmt.Sprintf("Who was %s's %s?", rec.Name, display), rels[0].Name, "", ""))
	}

	// One nickname question per annotated relation, at any depth.
	for _, rel := range allRelations(rec.Family) {
		if rel.Nickname == "" {
			continue
		}
		display := strings.ReplaceAll(rel.Kind, "_", " ")
		add(s.build(model.QuestionWhat, model.SourceNickname, rec,
			fmt.Sprintf("What was the nickname of %s's %s, %s?", rec.Name, display, rel.Name), rel.Nickname, "", ""))
	}
	return questions
}

func allRelations(fam model.Family) []model.Relation {
	var rels []model.Relation
	if fam.Father != nil {
		rels = append(rels, *fam.Father)
	}
	if fam.Mother != nil {
		rels = append(rels, *fam.Mother)
	}
	rels = append(rels, fam.Spouses...)
	rels = append(rels, fam.Children...)
	rels = append(rels, fam.Siblings...)
	for _, kind := range model.ExtendedRelationKinds {
		rels = append(rels, fam.Extended[kind]...)
	}
	return rels
}

func joinNames(rels []model.Relation) string {
	names := make([]string, len(rels))
	for i, rel := range rels {
		names[i] = rel.Name
	}
	return strings.Join(names, ", ")
}

func (s *Synthesizer) portrayalQuestions(rec *model.CharacterRecord) []model.Question {
	var questions []model.Question
	for _, p := range rec.PortrayedBy {
		text := fmt.Sprintf("Who played %s?", rec.Name)
		if p.Role != "primary" {
			text = fmt.Sprintf("Who played the %s %s?", p.Role, rec.Name)
		}
		if q, ok := s.build(model.QuestionWho, model.SourcePortrayal, rec, text, p.Actor, "", ""); ok {
			questions = append(questions, q)
		}
	}
	return questions
}

func (s *Synthesizer) appearanceQuestions(rec *model.CharacterRecord) []model.Question {
	var questions []model.Question
	for _, code := range model.SeriesCodes {
		episodes := rec.Appearances[code]
		if len(episodes) == 0 {
			continue
		}
		text := fmt.Sprintf("Which episode of %s featured %s?", model.SeriesNames[code], rec.Name)
		if q, ok := s.build(model.QuestionWhich, model.SourceAppearance, rec, text, episodes[0], code, ""); ok {
			questions = append(questions, q)
		}
	}
	return questions
}

func (s *Synthesizer) eventQuestions(rec *model.CharacterRecord, ev model.Event) []model.Question {
	var questions []model.Question
	phrase := extract.ActionPhrase(ev.Summary, rec.Name)

	for _, qt := range []model.QuestionType{model.QuestionWhich, model.QuestionWhat} {
		if q, ok := s.learnedQuestion(rec, ev, qt, phrase); ok {
			questions = append(questions, q)
			continue
		}
		if phrase == "" || ev.Episode == nil {
			continue // incomplete derivation: skip, never emit a fragment
		}
		vars := map[string]string{
			PlaceholderCharacter: rec.Name,
			PlaceholderItem:      phrase,
			PlaceholderEpisode:   *ev.Episode,
		}
		text, ok := Fill(builtinEventTemplates[qt], vars)
		if !ok {
			continue
		}
		answer := *ev.Episode
		if qt == model.QuestionWhat {
			answer = phrase
		}
		if q, ok := s.build(qt, model.SourceEvent, rec, text, answer, deref(ev.Series), *ev.Episode); ok {
			questions = append(questions, q)
		}
	}
	return questions
}

// learnedQuestion applies the first correction pattern matching this
// category and type whose placeholders can all be filled from the event.
func (s *Synthesizer) learnedQuestion(rec *model.CharacterRecord, ev model.Event, qt model.QuestionType, phrase string) (model.Question, bool) {
	for _, p := range s.patterns {
		if p.QuestionType != qt || p.Source != model.SourceEvent || p.Generalized == "" {
			continue
		}
		item := phrase
		if p.ItemPattern != "" {
			re, err := regexp.Compile(p.ItemPattern)
			if err != nil {
				continue
			}
			m := re.FindStringSubmatch(ev.Summary)
			if m == nil || len(m) < 2 {
				continue
			}
			item = m[1]
		}
		vars := map[string]string{
			PlaceholderCharacter: rec.Name,
			PlaceholderSeries:    deref(ev.Series),
			PlaceholderEpisode:   deref(ev.Episode),
			PlaceholderItem:      item,
		}
		text, ok := Fill(p.Generalized, vars)
		if !ok {
			continue
		}

		var answer string
		switch qt {
		case model.QuestionWhich, model.QuestionWhen:
			answer = deref(ev.Episode)
		default:
			answer = item
		}
		if answer == "" {
			continue
		}
		q, ok := s.build(qt, model.SourceEvent, rec, text, answer, deref(ev.Series), deref(ev.Episode))
		if ok && s.onTemplateUse != nil {
			s.onTemplateUse(p.Generalized)
		}
		return q, ok
	}
	return model.Question{}, false
}

func (s *Synthesizer) locationQuestions(rec *model.CharacterRecord) []model.Question {
	var questions []model.Question
	for i, loc := range rec.Locations {
		if i == 0 {
			if q, ok := s.build(model.QuestionWhere, model.SourceLocation, rec,
				fmt.Sprintf("Where did %s live?", rec.Name), loc.Name, "", ""); ok {
				questions = append(questions, q)
			}
		}
		if loc.Period != "" {
			if q, ok := s.build(model.QuestionWhen, model.SourceLocation, rec,
				fmt.Sprintf("When did %s live on %s?", rec.Name, loc.Name), loc.Period, "", ""); ok {
				questions = append(questions, q)
			}
		}
	}
	return questions
}

func (s *Synthesizer) objectQuestions(rec *model.CharacterRecord) []model.Question {
	var questions []model.Question
	for _, obj := range rec.Objects {
		if !objectContexts[obj.Context] {
			continue
		}
		text := fmt.Sprintf("What was the object of %s's %s?", rec.Name, obj.Context)
		if q, ok := s.build(model.QuestionWhat, model.SourceObject, rec, text, obj.Name, "", ""); ok {
			questions = append(questions, q)
		}
	}
	return questions
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
