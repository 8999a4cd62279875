package scout

import "github.com/spigell/hr-scout/internal/talent"

var demoPolish = []talent.Candidate{
	{
		Name:       "Jan Kowalski",
		Title:      "Starszy Specjalista AI Marketing",
		Company:    "TechCorp Polska",
		Location:   "Warszawa, Polska",
		Experience: "5+ lat",
		Skills:     []string{"Narzędzia AI", "Tworzenie treści", "Strategia marketingowa"},
		Score:      95,
		Summary:    "Doświadczony specjalista marketingu AI z silnym zapleczem w kreatywnym tworzeniu treści.",
		ProfileURL: "https://linkedin.com/in/jankowalski",
		Source:     "Dane demo",
	},
	{
		Name:       "Anna Nowak",
		Title:      "Kreatywny Designer AI",
		Company:    "Studio Design",
		Location:   "Warszawa, Polska",
		Experience: "3+ lata",
		Skills:     []string{"Narzędzia AI Design", "Produkcja multimedialna", "Strategia kreatywna"},
		Score:      88,
		Summary:    "Profesjonalista kreatywny specjalizujący się w projektowaniu wspomaganym AI i treściach multimedialnych.",
		ProfileURL: "https://linkedin.com/in/annanowak",
		Source:     "Dane demo",
	},
}

var demoPolishMulti = []talent.Candidate{
	{
		Name:       "Jan Kowalski",
		Title:      "Starszy Specjalista AI Marketing",
		Company:    "TechCorp Polska",
		Location:   "Warszawa, Polska",
		Experience: "5+ lat",
		Skills:     []string{"Narzędzia AI", "Tworzenie treści", "Strategia marketingowa"},
		Score:      95,
		Summary:    "Doświadczony specjalista marketingu AI z silnym zapleczem w kreatywnym tworzeniu treści.",
		ProfileURL: "https://linkedin.com/in/jankowalski",
		Source:     "LinkedIn (demo)",
	},
	{
		Name:       "Anna Nowak",
		Title:      "Kreatywny Designer AI",
		Company:    "Studio Design",
		Location:   "Kraków, Polska",
		Experience: "3+ lata",
		Skills:     []string{"Narzędzia AI Design", "Produkcja multimedialna", "Strategia kreatywna"},
		Score:      88,
		Summary:    "Profesjonalista kreatywny specjalizujący się w projektowaniu wspomaganym AI i treściach multimedialnych.",
		ProfileURL: "https://www.goldenline.pl/anna-nowak",
		Source:     "GoldenLine (demo)",
	},
	{
		Name:       "Piotr Wiśniewski",
		Title:      "Programista Python / ML",
		Company:    "DataLab",
		Location:   "Gdańsk, Polska",
		Experience: "4+ lata",
		Skills:     []string{"Python", "Uczenie maszynowe", "Generatywne AI"},
		Score:      81,
		Summary:    "Programista z publicznymi projektami generatywnego AI i aktywnym profilem open source.",
		ProfileURL: "https://github.com/pwisniewski",
		Source:     "GitHub (demo)",
	},
}

var demoEnglish = []talent.Candidate{
	{
		Name:       "John Smith",
		Title:      "Senior AI Marketing Specialist",
		Company:    "Tech Corp",
		Location:   "Warsaw, Poland",
		Experience: "5+ years",
		Skills:     []string{"AI Tools", "Content Creation", "Marketing Strategy"},
		Score:      95,
		Summary:    "Experienced AI marketing specialist with strong background in creative content generation.",
		ProfileURL: "https://linkedin.com/in/johnsmith",
		Source:     "Demo Data",
	},
	{
		Name:       "Anna Kowalski",
		Title:      "Creative AI Designer",
		Company:    "Design Studio",
		Location:   "Warsaw, Poland",
		Experience: "3+ years",
		Skills:     []string{"AI Design Tools", "Multimedia Production", "Creative Strategy"},
		Score:      88,
		Summary:    "Creative professional specializing in AI-powered design and multimedia content.",
		ProfileURL: "https://linkedin.com/in/annakowalski",
		Source:     "Demo Data",
	},
}

// DemoCandidates returns a fresh copy of the fixed demo list used when API credentials are absent.
func DemoCandidates(locale talent.Locale, scope talent.Scope) []talent.Candidate {
	switch {
	case locale == talent.LocaleEnglish:
		return talent.Copy(demoEnglish)
	case scope == talent.ScopeMulti:
		return talent.Copy(demoPolishMulti)
	default:
		return talent.Copy(demoPolish)
	}
}
