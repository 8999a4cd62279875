package ai

import (
	"fmt"
	"strings"

	_ "embed"

	"github.com/spigell/hr-scout/internal/talent"
)

//go:embed prompt_pl.md
var promptTemplatePL string

//go:embed prompt_en.md
var promptTemplateEN string

type promptTexts struct {
	template      string
	system        string
	resultTitle   string
	resultSnippet string
	profileURL    map[talent.Scope]string
	source        map[talent.Scope]string
}

var prompts = map[talent.Locale]promptTexts{
	talent.LocalePolish: {
		template:      promptTemplatePL,
		system:        "Zwróć wyłącznie poprawną tablicę JSON. Bez komentarzy. Odpowiadaj w języku polskim.",
		resultTitle:   "Tytuł",
		resultSnippet: "Opis",
		profileURL: map[talent.Scope]string{
			talent.ScopeLinkedIn: "URL profilu LinkedIn",
			talent.ScopeMulti:    "URL profilu (LinkedIn, GitHub, GoldenLine lub Pracuj.pl)",
		},
		source: map[talent.Scope]string{
			talent.ScopeLinkedIn: "Źródło informacji",
			talent.ScopeMulti:    "Platforma, na której znaleziono profil (np. LinkedIn, GitHub)",
		},
	},
	talent.LocaleEnglish: {
		template:      promptTemplateEN,
		system:        "Return strictly valid JSON array. No commentary.",
		resultTitle:   "Title",
		resultSnippet: "Snippet",
		profileURL: map[talent.Scope]string{
			talent.ScopeLinkedIn: "LinkedIn profile URL",
			talent.ScopeMulti:    "Profile URL (LinkedIn, GitHub, GoldenLine or Pracuj.pl)",
		},
		source: map[talent.Scope]string{
			talent.ScopeLinkedIn: "Source of information",
			talent.ScopeMulti:    "Platform where the profile was found (e.g. LinkedIn, GitHub)",
		},
	},
}

func textsFor(locale talent.Locale) promptTexts {
	if texts, ok := prompts[locale]; ok {
		return texts
	}
	return prompts[talent.LocalePolish]
}

// SystemPrompt returns the system instruction sent alongside the extraction prompt.
func SystemPrompt(locale talent.Locale) string {
	return textsFor(locale).system
}

// BuildPrompt renders the extraction prompt for the brief and the numbered search results.
func BuildPrompt(locale talent.Locale, scope talent.Scope, brief string, results []talent.SearchResult) string {
	texts := textsFor(locale)

	template := texts.template
	if strings.TrimSpace(template) == "" {
		template = "Brief:\n{{BRIEF}}\n\nResults:\n{{RESULTS}}\n\nJSON Response:"
	}

	replacer := strings.NewReplacer(
		"{{BRIEF}}", brief,
		"{{RESULTS}}", formatResults(texts, results),
		"{{PROFILE_URL_HINT}}", texts.profileURL[scope],
		"{{SOURCE_HINT}}", texts.source[scope],
	)
	return replacer.Replace(template)
}

func formatResults(texts promptTexts, results []talent.SearchResult) string {
	blocks := make([]string, 0, len(results))
	for i, item := range results {
		blocks = append(blocks, fmt.Sprintf("\n%d. %s: %s\n   URL: %s\n   %s: %s\n",
			i+1,
			texts.resultTitle, item.Title,
			item.Link,
			texts.resultSnippet, item.Snippet,
		))
	}
	return strings.Join(blocks, "\n")
}
