package scout

import (
	"regexp"
	"strings"

	"github.com/spigell/hr-scout/internal/talent"
)

const fallbackQuery = "marketing specialist AI"

var (
	positionLabel    = regexp.MustCompile(`(?i)stanowisko:\s*([^\n\r]+)`)
	trailingPunct    = regexp.MustCompile(`[.;]+$`)
	titleSeparators  = regexp.MustCompile(`[/,]+`)
	siteRestrictions = map[talent.Scope]string{
		talent.ScopeLinkedIn: "site:linkedin.com",
		talent.ScopeMulti:    "(site:linkedin.com/in OR site:github.com OR site:goldenline.pl OR site:pracuj.pl)",
	}
)

type keywordRule struct {
	needles  []string
	fragment string
}

// Checked in order; each matching rule appends its fragment once.
var keywordRules = []keywordRule{
	{needles: []string{"warszawa", "warsaw"}, fragment: "Warszawa"},
	{needles: []string{"kraków", "krakow"}, fragment: "Kraków"},
	{needles: []string{"gdańsk", "gdansk"}, fragment: "Gdańsk"},
	{needles: []string{"ai", "artificial intelligence", "sztuczna inteligencja"}, fragment: "AI"},
	{needles: []string{"marketing"}, fragment: "marketing"},
	{needles: []string{"programist", "developer"}, fragment: "developer"},
}

// SiteRestriction returns the site: clause appended to every query of the scope.
func SiteRestriction(scope talent.Scope) string {
	if clause, ok := siteRestrictions[scope]; ok {
		return clause
	}
	return siteRestrictions[talent.ScopeLinkedIn]
}

// GenerateSearchQuery derives a web search query from a free-text job brief using
// keyword heuristics. When nothing in the brief is recognized a fixed fallback query is used.
func GenerateSearchQuery(brief string, scope talent.Scope) string {
	lower := strings.ToLower(brief)
	parts := make([]string, 0, len(keywordRules)+1)

	if strings.Contains(lower, "stanowisko:") {
		if title := positionTitle(brief); title != "" {
			parts = append(parts, title)
		}
	}

	for _, rule := range keywordRules {
		for _, needle := range rule.needles {
			if strings.Contains(lower, needle) {
				parts = append(parts, rule.fragment)
				break
			}
		}
	}

	site := SiteRestriction(scope)
	if len(parts) == 0 {
		return fallbackQuery + " " + site
	}

	return strings.TrimSpace(strings.Join(parts, " ") + " " + site)
}

// positionTitle returns the first segment of the line following the "stanowisko:" label.
func positionTitle(brief string) string {
	match := positionLabel.FindStringSubmatch(brief)
	if match == nil {
		return ""
	}

	title := strings.TrimSpace(match[1])
	title = trailingPunct.ReplaceAllString(title, "")
	segments := titleSeparators.Split(title, -1)

	return strings.TrimSpace(segments[0])
}
