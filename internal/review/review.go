// File: internal/review/review.go

// Package review loads and validates the questionnaire input file. The file
// is sectioned key/value text ("ini"): reserved sections carry global
// parameters and workload metadata, and an open-ended number of QUESTION
// sections carry the answers to replay. Section order in the file defines
// replay order, so the parser must preserve it.
package review

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// ErrInvalidInput marks any defect in the questionnaire file: missing
// sections or keys, empty mandatory values, malformed answer numbering.
// The driver maps it to the "invalid input file" exit code.
var ErrInvalidInput = errors.New("invalid input file")

// Reserved section names.
const (
	sectionGeneral = "GENERAL"
	sectionWAR     = "WAR"
	// questionPrefix marks the replayable question sections.
	questionPrefix = "QUESTION"
)

// mandatoryWorkloadKeys must all be present in the WAR section. Every one of
// them except accountIDs must also be non-empty.
var mandatoryWorkloadKeys = []string{
	"name", "description", "industryType", "industry",
	"environment", "regions", "accountIDs", "milestone",
}

// Workload holds the metadata entered into the portal's creation form.
type Workload struct {
	Name         string
	Description  string
	IndustryType string
	Industry     string
	Environment  string
	Regions      []string
	AccountIDs   []string
	Milestone    string
}

// Question is one replayable wizard section. Answers maps the 1-based
// on-screen checkbox position to the desired checked state. The mapping is a
// fragile coupling to the remote UI's rendering order; the file author owns
// keeping it in sync.
type Question struct {
	Section      string
	DoesNotApply bool
	Notes        string
	Answers      map[int]bool
}

// AnswerIndices returns the flagged-true answer positions in ascending order.
func (q Question) AnswerIndices() []int {
	indices := make([]int, 0, len(q.Answers))
	for idx, on := range q.Answers {
		if on {
			indices = append(indices, idx)
		}
	}
	sort.Ints(indices)
	return indices
}

// Review is the fully validated content of the input file.
type Review struct {
	SignInURL string
	OutDir    string
	Workload  Workload
	// Questions appear in file order, which defines replay order.
	Questions []Question
}

// Load reads and validates the questionnaire file at path.
func Load(path string) (*Review, error) {
	f, err := ini.LoadSources(ini.LoadOptions{}, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return parse(f)
}

// LoadBytes parses questionnaire content directly; used by tests.
func LoadBytes(data []byte) (*Review, error) {
	f, err := ini.LoadSources(ini.LoadOptions{}, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return parse(f)
}

func parse(f *ini.File) (*Review, error) {
	general, err := f.GetSection(sectionGeneral)
	if err != nil {
		return nil, fmt.Errorf("%w: section '%s' is missing", ErrInvalidInput, sectionGeneral)
	}
	war, err := f.GetSection(sectionWAR)
	if err != nil {
		return nil, fmt.Errorf("%w: section '%s' is missing", ErrInvalidInput, sectionWAR)
	}

	rev := &Review{
		SignInURL: strings.TrimSpace(keyValue(general, "signin.url")),
		OutDir:    strings.TrimSpace(keyValue(general, "outDir")),
	}
	if rev.SignInURL == "" {
		return nil, fmt.Errorf("%w: missing value for 'signin.url' parameter", ErrInvalidInput)
	}

	for _, key := range mandatoryWorkloadKeys {
		if !hasKey(war, key) {
			return nil, fmt.Errorf("%w: parameter '%s' is missing", ErrInvalidInput, key)
		}
		if strings.TrimSpace(keyValue(war, key)) == "" && key != "accountIDs" {
			return nil, fmt.Errorf("%w: missing value for '%s' parameter", ErrInvalidInput, key)
		}
	}

	rev.Workload = Workload{
		Name:         strings.TrimSpace(keyValue(war, "name")),
		Description:  strings.TrimSpace(keyValue(war, "description")),
		IndustryType: strings.TrimSpace(keyValue(war, "industryType")),
		Industry:     strings.TrimSpace(keyValue(war, "industry")),
		Environment:  strings.TrimSpace(keyValue(war, "environment")),
		Regions:      splitList(keyValue(war, "regions")),
		AccountIDs:   splitList(keyValue(war, "accountIDs")),
		Milestone:    strings.TrimSpace(keyValue(war, "milestone")),
	}

	// Question sections, in file order.
	for _, section := range f.Sections() {
		if !strings.HasPrefix(section.Name(), questionPrefix) {
			continue
		}
		q, err := parseQuestion(section)
		if err != nil {
			return nil, err
		}
		rev.Questions = append(rev.Questions, q)
	}
	if len(rev.Questions) == 0 {
		return nil, fmt.Errorf("%w: no section with '%s' prefix", ErrInvalidInput, questionPrefix)
	}

	return rev, nil
}

// parseQuestion validates one QUESTION section: integer answer keys plus the
// optional doNotApply and notes keys, nothing else.
func parseQuestion(section *ini.Section) (Question, error) {
	q := Question{
		Section: section.Name(),
		Answers: make(map[int]bool),
	}

	for _, key := range section.Keys() {
		name := key.Name()
		switch strings.ToLower(name) {
		case "donotapply":
			v, err := key.Bool()
			if err != nil {
				return q, fmt.Errorf("%w: section '%s': 'doNotApply' is not a boolean: %q",
					ErrInvalidInput, q.Section, key.Value())
			}
			q.DoesNotApply = v
		case "notes":
			q.Notes = key.Value()
		default:
			idx, err := strconv.Atoi(name)
			if err != nil || idx < 1 {
				return q, fmt.Errorf("%w: invalid answer numbering in section '%s': expected number, got %q",
					ErrInvalidInput, q.Section, name)
			}
			v, err := key.Bool()
			if err != nil {
				return q, fmt.Errorf("%w: section '%s': answer '%s' is not a boolean: %q",
					ErrInvalidInput, q.Section, name, key.Value())
			}
			q.Answers[idx] = v
		}
	}

	return q, nil
}

// IsValidAccountID reports whether token is exactly 12 decimal digits, the
// only shape the portal accepts for an account identifier.
func IsValidAccountID(token string) bool {
	if len(token) != 12 {
		return false
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FirstInvalidAccountID returns the first malformed token, if any.
func FirstInvalidAccountID(ids []string) (string, bool) {
	for _, id := range ids {
		if !IsValidAccountID(id) {
			return id, true
		}
	}
	return "", false
}

// keyValue fetches a key's raw value with case-insensitive name matching.
// The ini format is case-preserving but authors are sloppy about it.
func keyValue(section *ini.Section, name string) string {
	for _, key := range section.Keys() {
		if strings.EqualFold(key.Name(), name) {
			return key.Value()
		}
	}
	return ""
}

func hasKey(section *ini.Section, name string) bool {
	for _, key := range section.Keys() {
		if strings.EqualFold(key.Name(), name) {
			return true
		}
	}
	return false
}

// splitList splits a comma-separated value, trimming whitespace and dropping
// empty tokens.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
