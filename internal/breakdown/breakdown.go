// Package breakdown splits an AI-generated script into shots and detects the
// recurring characters of its video prompt section.
//
// Extraction is a pure function of the input text. Missing structure is not
// an error: callers get a NotFound result with a Reason and can offer a
// manual trigger instead.
package breakdown

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"ugc-studio/internal/model"
)

// SectionHeaders are the recognised labels of the video prompt section, in
// priority order. Matching is case-insensitive; the first variant present wins.
var SectionHeaders = []string{
	"**Prompt para Sora 2:**",
	"**Prompt para Sora 2**:",
	"**Prompt para Sora:**",
	"**Prompt for Sora 2:**",
	"**Prompt for Sora 2**:",
	"**Sora 2 Prompt:**",
	"**Sora 2 Prompt**:",
	"**Video Generation Prompt:**",
	"**Video Prompt:**",
	"Prompt para Sora 2:",
	"Prompt for Sora 2:",
	"Sora 2 Prompt:",
	"Video Generation Prompt:",
}

// ShotDelimiters separate shots inside the section. Matching is case-insensitive.
var ShotDelimiters = []string{
	"[CUT TO:]",
	"[cut]",
}

// sectionEnd marks the start of the next bold block after the section.
const sectionEnd = "\n\n**"

const (
	// MinShotLength is the minimum fragment length in runes; shorter fragments are noise.
	MinShotLength = 20
	MaxCharacters = 3
)

// GenericCharacterDescription is used when the section talks about UGC or
// influencers without describing anyone specific.
const GenericCharacterDescription = "UGC creator presenting the product to camera"

// roleNouns are the people the role-noun pattern recognises.
var roleNouns = []string{
	"woman", "man", "girl", "guy", "boy",
	"influencer", "customer", "creator", "person", "user",
	"mom", "mother", "dad", "father", "model", "student", "teenager",
}

// characterPatterns are applied to the section body. Matches from all of them
// are merged by position.
var characterPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:a|an)\s+(?:[a-z'-]+\s+){0,3}?(?:` + strings.Join(roleNouns, "|") + `)\b`),
	regexp.MustCompile(`(?i)\bAI[\s-]+influencer(?:\s+named\s+[a-z][\w'-]*)?`),
	regexp.MustCompile(`(?i)\bUGC[\s-]+creators?\b`),
}

var genericCharacterHint = regexp.MustCompile(`(?i)\b(?:ugc|influencers?)\b`)

type Status int

const (
	NotFound Status = iota
	Found
)

func (s Status) String() string {
	if s == Found {
		return "found"
	}
	return "not_found"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Reason explains a NotFound result.
type Reason string

const (
	ReasonNoSection     Reason = "no_section"
	ReasonNoDelimiter   Reason = "no_delimiter"
	ReasonNoUsableShots Reason = "no_usable_shots"
)

// Result is the tagged outcome of an extraction. Shots and Characters are
// empty unless Status is Found.
type Result struct {
	Status     Status            `json:"status"`
	Reason     Reason            `json:"reason,omitempty"`
	Shots      []model.Shot      `json:"shots"`
	Characters []model.Character `json:"characters"`
}

func (r Result) Found() bool {
	return r.Status == Found
}

func notFound(reason Reason) Result {
	return Result{
		Status:     NotFound,
		Reason:     reason,
		Shots:      []model.Shot{},
		Characters: []model.Character{},
	}
}

// Extractor holds compiled header and delimiter matchers. It is immutable and
// safe for concurrent use.
type Extractor struct {
	headers       []*regexp.Regexp
	delimiter     *regexp.Regexp
	minShotLength int
	maxCharacters int
}

type Option func(*extractorOptions)

type extractorOptions struct {
	headers       []string
	delimiters    []string
	minShotLength int
	maxCharacters int
}

func WithHeaders(headers ...string) Option {
	return func(o *extractorOptions) { o.headers = headers }
}

func WithDelimiters(delimiters ...string) Option {
	return func(o *extractorOptions) { o.delimiters = delimiters }
}

func WithMinShotLength(n int) Option {
	return func(o *extractorOptions) { o.minShotLength = n }
}

func WithMaxCharacters(n int) Option {
	return func(o *extractorOptions) { o.maxCharacters = n }
}

// New compiles an Extractor. Without options it uses SectionHeaders,
// ShotDelimiters, MinShotLength and MaxCharacters.
func New(opts ...Option) *Extractor {
	o := extractorOptions{
		headers:       SectionHeaders,
		delimiters:    ShotDelimiters,
		minShotLength: MinShotLength,
		maxCharacters: MaxCharacters,
	}
	for _, opt := range opts {
		opt(&o)
	}

	e := &Extractor{
		minShotLength: o.minShotLength,
		maxCharacters: o.maxCharacters,
	}
	for _, h := range o.headers {
		e.headers = append(e.headers, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(h)))
	}

	// longest first so "[CUT TO:]" is not shadowed by a shorter token
	delims := append([]string(nil), o.delimiters...)
	sort.SliceStable(delims, func(i, j int) bool { return len(delims[i]) > len(delims[j]) })
	quoted := make([]string, 0, len(delims))
	for _, d := range delims {
		if d != "" {
			quoted = append(quoted, regexp.QuoteMeta(d))
		}
	}
	if len(quoted) > 0 {
		e.delimiter = regexp.MustCompile(`(?i)(?:` + strings.Join(quoted, "|") + `)`)
	}
	return e
}

var defaultExtractor = New()

// Extract runs the default Extractor.
func Extract(text string) Result {
	return defaultExtractor.Extract(text)
}

func (e *Extractor) Extract(text string) Result {
	section, ok := e.section(text)
	if !ok {
		return notFound(ReasonNoSection)
	}
	if e.delimiter == nil || !e.delimiter.MatchString(section) {
		return notFound(ReasonNoDelimiter)
	}

	shots := e.splitShots(section)
	if len(shots) == 0 {
		return notFound(ReasonNoUsableShots)
	}

	return Result{
		Status:     Found,
		Shots:      shots,
		Characters: e.detectCharacters(section),
	}
}

// section returns the trimmed body between the first matching header and the
// next blank-line-plus-bold marker (or the end of the text).
func (e *Extractor) section(text string) (string, bool) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, h := range e.headers {
		loc := h.FindStringIndex(text)
		if loc == nil {
			continue
		}
		body := text[loc[1]:]
		if end := strings.Index(body, sectionEnd); end >= 0 {
			body = body[:end]
		}
		return strings.TrimSpace(body), true
	}
	return "", false
}

func (e *Extractor) splitShots(section string) []model.Shot {
	parts := e.delimiter.Split(section, -1)
	shots := make([]model.Shot, 0, len(parts))
	for _, part := range parts {
		content := strings.TrimSpace(part)
		if utf8.RuneCountInString(content) < e.minShotLength {
			continue
		}
		shots = append(shots, model.Shot{Index: len(shots), Content: content})
	}
	return shots
}

type characterMatch struct {
	start   int
	end     int
	pattern int
	text    string
}

func (e *Extractor) detectCharacters(section string) []model.Character {
	var matches []characterMatch
	for i, p := range characterPatterns {
		for _, loc := range p.FindAllStringIndex(section, -1) {
			matches = append(matches, characterMatch{
				start:   loc[0],
				end:     loc[1],
				pattern: i,
				text:    strings.Join(strings.Fields(section[loc[0]:loc[1]]), " "),
			})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].start != matches[j].start {
			return matches[i].start < matches[j].start
		}
		return matches[i].pattern < matches[j].pattern
	})

	characters := make([]model.Character, 0, e.maxCharacters)
	seen := make([]string, 0, e.maxCharacters)
	var spans [][2]int
	for _, m := range matches {
		if len(characters) >= e.maxCharacters {
			break
		}
		// overlapping spans describe the same mention, e.g. "an AI influencer named Aura"
		if overlaps(spans, m.start, m.end) || covered(seen, strings.ToLower(m.text)) {
			continue
		}
		spans = append(spans, [2]int{m.start, m.end})
		seen = append(seen, strings.ToLower(m.text))
		characters = append(characters, model.Character{Index: len(characters), Description: m.text})
	}

	if len(characters) == 0 && e.maxCharacters > 0 && genericCharacterHint.MatchString(section) {
		characters = append(characters, model.Character{Index: 0, Description: GenericCharacterDescription})
	}
	return characters
}

func overlaps(spans [][2]int, start, end int) bool {
	for _, s := range spans {
		if start < s[1] && end > s[0] {
			return true
		}
	}
	return false
}

// covered reports whether desc overlaps a stored description in either direction.
func covered(stored []string, desc string) bool {
	for _, s := range stored {
		if strings.Contains(s, desc) || strings.Contains(desc, s) {
			return true
		}
	}
	return false
}

// Attach returns a copy of r with generated media URLs set on the matching
// shots and characters. Later entries override earlier ones.
func (r Result) Attach(media []model.GeneratedMedia) Result {
	out := r
	out.Shots = append([]model.Shot(nil), r.Shots...)
	out.Characters = append([]model.Character(nil), r.Characters...)
	if out.Shots == nil {
		out.Shots = []model.Shot{}
	}
	if out.Characters == nil {
		out.Characters = []model.Character{}
	}

	for _, m := range media {
		switch m.Type {
		case model.MediaTypeScene:
			if m.Index < 0 || m.Index >= len(out.Shots) {
				continue
			}
			shot := &out.Shots[m.Index]
			if m.ImageURL != "" {
				shot.ImageURL = stringPtr(m.ImageURL)
			}
			if m.VideoURL != "" {
				shot.VideoURL = stringPtr(m.VideoURL)
			}
			if m.ThumbnailURL != "" {
				shot.ThumbnailURL = stringPtr(m.ThumbnailURL)
			}
		case model.MediaTypeCharacter:
			if m.Index < 0 || m.Index >= len(out.Characters) {
				continue
			}
			if m.ImageURL != "" {
				out.Characters[m.Index].ImageURL = stringPtr(m.ImageURL)
			}
		}
	}
	return out
}

func stringPtr(s string) *string {
	return &s
}
