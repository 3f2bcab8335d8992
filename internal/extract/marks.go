package extract

import (
	"regexp"
	"strings"
)

var (
	reCountryOfOrigin = regexp.MustCompile(`(?i)\bCountry\s+Of\s+Origin\b`)
	reMarksHeader     = regexp.MustCompile(`(?i)\bNOCAB\b|\bMARKS?\b`)
	reMarksLabel      = regexp.MustCompile(`(?i)^.*?\b(?:SHIPPING\s+)?MARKS?(?:\s*(?:&|AND)\s*NOS?\.?)?\s*:\s*`)
	reMarksClause     = regexp.MustCompile(`(?i)^(.*?Country\s+Of\s+Origin\s*:\s*[A-Za-z][A-Za-z ]*)`)
	reMarksCode       = regexp.MustCompile(`(?i)[A-Z0-9][A-Z0-9\-/# ]{5,}`)
	reTrailingName    = regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2})\s*$`)
)

// extractMarks returns the shipping-marks block: the lines from the marks
// header (NOCAB/MARKS) down to the "Country Of Origin: <country>" clause.
func extractMarks(text string) string {
	lines := strings.Split(text, "\n")
	coo := -1
	for i, l := range lines {
		if reCountryOfOrigin.MatchString(l) {
			coo = i
			break
		}
	}
	if coo < 0 {
		return ""
	}

	start := coo - 3
	if start < 0 {
		start = 0
	}
	for k := coo; k >= 0 && k > coo-6; k-- {
		if reMarksHeader.MatchString(lines[k]) {
			start = k
			break
		}
	}

	block := make([]string, 0, coo-start+2)
	for i := start; i <= coo; i++ {
		l := lines[i]
		if i == start {
			l = reMarksLabel.ReplaceAllString(l, "")
		}
		block = append(block, l)
	}

	picked := norm(strings.Join(block, " "))
	if m := reMarksClause.FindStringSubmatch(picked); m != nil {
		return norm(m[1])
	}
	// Country on the following line.
	if coo+1 < len(lines) {
		withNext := norm(picked + " " + lines[coo+1])
		if m := reMarksClause.FindStringSubmatch(withNext); m != nil {
			return norm(m[1])
		}
	}
	if m := reMarksCode.FindString(picked); m != "" {
		return norm(m)
	}
	return picked
}

// countries are matched in list order; the last hit wins, so the more
// specific names sit after the ones they contain.
var countries = []string{
	"Canada", "Belgium", "Poland", "Taiwan", "Singapore", "United Kingdom", "United States",
	"Netherlands", "France", "Germany", "Italy", "Spain", "Portugal", "Mexico", "Brazil", "China",
	"Japan", "Korea", "Turkey", "Australia", "New Zealand", "Thailand", "Indonesia", "Malaysia",
	"Philippines", "Vietnam", "Cambodia", "Laos", "Myanmar", "India", "Pakistan", "Bangladesh",
	"Sri Lanka", "U.A.E", "United Arab Emirates",
}

var countryPatterns = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(countries))
	for i, c := range countries {
		out[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(c) + `\b`)
	}
	return out
}()

var (
	reLongPrefix   = regexp.MustCompile(`(?i)^(?:kingdom|republic|state|federal|commonwealth)\s+of\s+`)
	rePeoplesRep   = regexp.MustCompile(`(?i)^people's\s+republic\s+of\s+`)
	reParenthetic  = regexp.MustCompile(`\s*\(.*?\)\s*$`)
	countryAliases = strings.NewReplacer(
		"Viet Nam", "Vietnam",
		"Korea, Republic of", "Korea",
		"U.S.A", "United States",
	)
)

func cleanCountry(s string) string {
	t := strings.TrimSpace(s)
	t = reLongPrefix.ReplaceAllString(t, "")
	t = reParenthetic.ReplaceAllString(t, "")
	t = rePeoplesRep.ReplaceAllString(t, "")
	t = countryAliases.Replace(t)
	return strings.TrimSpace(t)
}

// destFromMarks derives the destination country from the part of the marks
// preceding the origin clause.
func destFromMarks(marks string) string {
	if marks == "" {
		return ""
	}
	pre := marks
	if loc := reCountryOfOrigin.FindStringIndex(marks); loc != nil {
		pre = marks[:loc[0]]
	}
	pre = countryAliases.Replace(pre)

	found := ""
	for i, re := range countryPatterns {
		if re.MatchString(pre) {
			found = countries[i]
		}
	}
	if found != "" {
		return cleanCountry(found)
	}
	if m := reTrailingName.FindStringSubmatch(strings.TrimSpace(pre)); m != nil {
		return cleanCountry(m[1])
	}
	return ""
}
