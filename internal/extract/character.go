package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lorefoundry/triviaforge/internal/markup"
	"github.com/lorefoundry/triviaforge/internal/model"
)

// knownSpecies anchors species validation. A sidebar value matching one of
// these is canonicalized; anything else is kept only when it looks like a
// plain species name.
var knownSpecies = []string{
	"Human", "Vulcan", "Klingon", "Bajoran", "Betazoid", "Ferengi",
	"Cardassian", "Trill", "Andorian", "Romulan", "Borg", "Talaxian",
	"Ocampa", "Bolian", "Denobulan", "Tellarite", "El-Aurian", "Q",
	"Changeling", "Kazon", "Hirogen", "Vorta", "Jem'Hadar", "Orion",
	"Caitian", "Xindi", "Kelpien", "Barzan",
}

// Extractor turns a wiki biography page into a structured character record.
type Extractor struct {
	cfg model.ExtractConfig
}

func NewExtractor(cfg model.ExtractConfig) *Extractor {
	return &Extractor{cfg: cfg}
}

// Extract builds the character record for one page. A page with no text
// resolves to ErrPageNotFound; any recognizable page yields a record, with
// unextractable fields at their zero values.
func (e *Extractor) Extract(page *model.Page) (*model.CharacterRecord, error) {
	if page == nil || strings.TrimSpace(page.Text) == "" {
		return nil, model.ErrPageNotFound
	}

	rec := model.NewCharacterRecord(page.Title)
	fields := SidebarFields(page.Text)

	rec.Species = extractSpecies(fields["species"])
	rec.Status = extractStatus(fields)
	rec.Born = extractBirth(fields["born"])
	rec.Family = extractFamily(fields)
	rec.PortrayedBy = extractPortrayals(fields)
	rec.Appearances = Appearances(page.Text, e.cfg.MaxEpisodesPerSeries)

	body := bodyProse(page.Text)
	rec.NotableEvents = Events(body, page.Title, e.cfg.MaxEventsPerRecord)
	rec.Characteristics, rec.Objects = extractTraits(body, page.Title)
	rec.Locations = extractLocations(body, page.Title)

	return rec, nil
}

func extractSpecies(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, sp := range knownSpecies {
		if strings.EqualFold(value, sp) || containsWord(value, sp) {
			s := sp
			return &s
		}
	}
	// Unlisted species are kept when the value is a short plain name, not a
	// sentence of qualifiers.
	if words := strings.Fields(value); len(words) <= 2 && alphabetic(value) {
		s := value
		return &s
	}
	return nil
}

func extractStatus(fields map[string]string) *string {
	status := strings.TrimSpace(fields["status"])
	if status == "" {
		return nil
	}
	if date := strings.TrimSpace(fields["datestatus"]); date != "" {
		status = status + " (" + date + ")"
	}
	return &status
}

var yearRe = regexp.MustCompile(`\b(\d{4})\b`)

// extractBirth splits a born field like "2332, France, Earth" or
// "2372, USS Enterprise-D" into year and location. Stardate parentheticals
// are dropped before parsing.
func extractBirth(value string) model.Birth {
	var birth model.Birth
	value = stripParens(strings.TrimSpace(value))
	if value == "" {
		return birth
	}

	if m := yearRe.FindStringSubmatch(value); m != nil {
		if y, err := strconv.Atoi(m[1]); err == nil {
			birth.Year = &y
		}
	}

	// Location is everything after the first comma; a USS ship name may also
	// stand alone without a leading year.
	if _, rest, found := strings.Cut(value, ","); found {
		if loc := strings.TrimSpace(rest); loc != "" {
			birth.Location = &loc
		}
	} else if birth.Year == nil && value != "" {
		loc := value
		birth.Location = &loc
	}
	return birth
}

func extractFamily(fields map[string]string) model.Family {
	fam := model.NewFamily()

	if rels := Relations(firstField(fields, "father"), "father"); len(rels) > 0 {
		fam.Father = &rels[0]
	}
	if rels := Relations(firstField(fields, "mother"), "mother"); len(rels) > 0 {
		fam.Mother = &rels[0]
	}
	fam.Spouses = Relations(firstField(fields, "spouse", "spouses"), "spouse")
	fam.Children = Relations(firstField(fields, "children", "child"), "child")
	fam.Siblings = Relations(firstField(fields, "sibling", "siblings"), "sibling")

	// The relative field mixes extended kinds, annotated per segment.
	for _, rel := range Relations(firstField(fields, "relative", "relatives"), "") {
		kind := canonicalKind(strings.ReplaceAll(rel.Kind, " ", "_"))
		if kind == "" {
			continue
		}
		rel.Kind = kind
		fam.Extended[kind] = append(fam.Extended[kind], rel)
	}
	return fam
}

// roleQualifiers are parenthesized actor annotations distinguishing multiple
// portrayals of one character.
var roleQualifiers = map[string]bool{
	"infant": true, "baby": true, "child": true, "young": true,
	"adult": true, "elderly": true, "voice": true, "mirror": true,
}

func extractPortrayals(fields map[string]string) []model.Portrayal {
	value := firstField(fields, "actor", "played by", "performer")
	portrayals := []model.Portrayal{}

	for _, seg := range splitTop(value, ";,") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		role := "primary"
		for {
			open := strings.IndexByte(seg, '(')
			if open == -1 {
				break
			}
			closeIdx := strings.IndexByte(seg[open:], ')')
			if closeIdx == -1 {
				seg = strings.TrimSpace(seg[:open])
				break
			}
			annot := strings.ToLower(strings.TrimSpace(seg[open+1 : open+closeIdx]))
			seg = strings.TrimSpace(seg[:open] + seg[open+closeIdx+1:])
			if roleQualifiers[annot] {
				role = annot
			}
		}
		if seg == "" || isPlaceholder(seg) {
			continue
		}
		portrayals = append(portrayals, model.Portrayal{Actor: seg, Role: role})
	}
	return portrayals
}

// Appearances collects every inline episode marker grouped per series,
// preserving first-occurrence order and deduplicating. Every known series
// code is present as a key. perSeries caps each list (0 means unlimited).
func Appearances(text string, perSeries int) map[string][]string {
	apps := make(map[string][]string, len(model.SeriesCodes))
	for _, code := range model.SeriesCodes {
		apps[code] = []string{}
	}

	seen := make(map[string]bool)
	for _, m := range episodeMarkerRe.FindAllStringSubmatch(text, -1) {
		series := strings.ToUpper(m[1])
		episode := strings.TrimSpace(m[2])
		if episode == "" || seen[series+"|"+episode] {
			continue
		}
		if perSeries > 0 && len(apps[series]) >= perSeries {
			continue
		}
		seen[series+"|"+episode] = true
		apps[series] = append(apps[series], episode)
	}
	return apps
}

// extractTraits scans body prose for item-pattern sentences about the
// subject. The full phrase becomes a characteristic; the captured item
// becomes an object with the pattern name as context.
func extractTraits(body, characterName string) ([]string, []model.Object) {
	characteristics := []string{}
	objects := []model.Object{}
	seenTrait := make(map[string]bool)
	seenObject := make(map[string]bool)

	for _, normalized := range subjectSentences(body, characterName) {
		item, pattern := FindItem(normalized)
		if item == "" {
			continue
		}
		if phrase := ActionPhrase(normalized, characterName); phrase != "" && !seenTrait[phrase] {
			seenTrait[phrase] = true
			characteristics = append(characteristics, phrase)
		}
		if !seenObject[item] {
			seenObject[item] = true
			objects = append(objects, model.Object{Name: item, Context: pattern.Name})
		}
	}
	return characteristics, objects
}

// locationRe matches residence phrasings; the capture is the place name.
var locationRe = regexp.MustCompile(`(?i)\b(?:moved (?:aboard|to)|lived (?:on|in|aboard)|resided (?:on|in|aboard)|grew up (?:on|in|aboard)|was raised (?:on|in)|was stationed (?:on|aboard|at)) ` + itemExpr)

var periodRe = regexp.MustCompile(`\b(?:in|around|until|from) (\d{4}(?:\s(?:to|until|-)\s\d{4})?)`)

func extractLocations(body, characterName string) []model.LocationStay {
	locations := []model.LocationStay{}
	seen := make(map[string]bool)

	for _, normalized := range subjectSentences(body, characterName) {
		m := locationRe.FindStringSubmatch(normalized)
		if m == nil {
			continue
		}
		name := trimItemTail(m[1])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		stay := model.LocationStay{Name: name}
		if p := periodRe.FindStringSubmatch(normalized); p != nil {
			stay.Period = p[1]
		}
		for _, lead := range []string{" after ", " when ", " because "} {
			if idx := indexFold(normalized, lead); idx != -1 {
				stay.Reason = strings.TrimRight(strings.TrimSpace(normalized[idx+len(lead):]), ".")
				break
			}
		}
		locations = append(locations, stay)
	}
	return locations
}

// bodyProse returns the page text with the sidebar template removed, so
// trait scanning never misreads field markup as prose.
func bodyProse(text string) string {
	for _, name := range sidebarTemplates {
		needle := "{{" + strings.ToLower(name)
		start := strings.Index(strings.ToLower(text), needle)
		if start == -1 {
			continue
		}
		if body, ok := findTemplate(text, name); ok {
			return text[:start] + text[start+len(body)+4:]
		}
	}
	return text
}

// subjectSentences returns the normalized body sentences attributable to the
// subject, with the same pronoun continuation rule as event scanning.
func subjectSentences(body, characterName string) []string {
	names := mentionTokens(characterName)
	var out []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "*# "))
		if line == "" || strings.HasPrefix(line, "=") {
			continue
		}
		prev := false
		for _, sentence := range splitSentences(line) {
			mentioned := mentionsAny(sentence, names) || (prev && startsWithPronoun(sentence))
			prev = mentioned
			if !mentioned {
				continue
			}
			if n := markup.Normalize(sentence); n != "" {
				out = append(out, n)
			}
		}
	}
	return out
}

// firstField returns the first present field among the given names.
func firstField(fields map[string]string, names ...string) string {
	for _, name := range names {
		if v, ok := fields[name]; ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

var parenRe = regexp.MustCompile(`\([^)]*\)`)

func stripParens(s string) string {
	return strings.Join(strings.Fields(parenRe.ReplaceAllString(s, " ")), " ")
}

func containsWord(s, word string) bool {
	for _, f := range strings.Fields(s) {
		if strings.EqualFold(strings.Trim(f, ",.;"), word) {
			return true
		}
	}
	return false
}

func alphabetic(s string) bool {
	for _, r := range s {
		if !(r == ' ' || r == '-' || r == '\'' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			return false
		}
	}
	return true
}
