package talent

import (
	"encoding/json"
	"os"
	"strings"
)

// Candidate describes a prospective hire produced by demo data or extracted by a language model.
type Candidate struct {
	Name       string   `json:"name" yaml:"name" mapstructure:"name"`
	Title      string   `json:"title" yaml:"title" mapstructure:"title"`
	Company    string   `json:"company" yaml:"company" mapstructure:"company"`
	Location   string   `json:"location" yaml:"location" mapstructure:"location"`
	Experience string   `json:"experience" yaml:"experience" mapstructure:"experience"`
	Skills     []string `json:"skills" yaml:"skills" mapstructure:"skills"`
	Score      int      `json:"score" yaml:"score" mapstructure:"score"`
	Summary    string   `json:"summary" yaml:"summary" mapstructure:"summary"`
	ProfileURL string   `json:"linkedinUrl" yaml:"profile_url" mapstructure:"linkedinUrl"`
	Source     string   `json:"source,omitempty" yaml:"source,omitempty" mapstructure:"source"`
}

// SearchResult is a single item returned by the web search API.
type SearchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Copy returns a deep copy of the list. A nil list yields an empty, non-nil slice.
func Copy(list []Candidate) []Candidate {
	out := make([]Candidate, 0, len(list))
	for _, c := range list {
		if c.Skills != nil {
			c.Skills = append([]string(nil), c.Skills...)
		}
		out = append(out, c)
	}
	return out
}

// Key identifies a candidate for exclusion purposes: the profile URL when known, the name otherwise.
func (c Candidate) Key() string {
	if url := strings.TrimSpace(c.ProfileURL); url != "" {
		return strings.ToLower(strings.TrimRight(url, "/"))
	}
	return strings.ToLower(strings.TrimSpace(c.Name))
}

// DumpToTmpFile writes the list as indented JSON into a temporary file and returns its name.
func DumpToTmpFile(list []Candidate) (string, error) {
	file, err := os.CreateTemp("", "candidates_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(list); err != nil {
		return "", err
	}
	return file.Name(), nil
}
