package extract

import "strings"

var (
	onesWords = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
		"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tensWords  = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
	scaleWords = []string{"", "Thousand", "Million", "Billion", "Trillion", "Quadrillion", "Quintillion"}
)

// Words spells n as English cardinal words in title case, e.g. 120 ->
// "One Hundred Twenty". It covers the whole int64 range.
func Words(n int64) string {
	if n == 0 {
		return "Zero"
	}
	if n < 0 {
		// -(n+1)+1 avoids overflow at math.MinInt64.
		return "Minus " + wordsUnsigned(uint64(-(n+1))+1)
	}
	return wordsUnsigned(uint64(n))
}

func wordsUnsigned(u uint64) string {
	groups := make([]string, 0, len(scaleWords))
	for scale := 0; u > 0; scale++ {
		chunk := int(u % 1000)
		u /= 1000
		if chunk == 0 {
			continue
		}
		g := hundredsWords(chunk)
		if scaleWords[scale] != "" {
			g += " " + scaleWords[scale]
		}
		groups = append(groups, g)
	}
	for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
		groups[i], groups[j] = groups[j], groups[i]
	}
	return strings.Join(groups, " ")
}

// hundredsWords spells 1..999.
func hundredsWords(n int) string {
	parts := make([]string, 0, 3)
	if n >= 100 {
		parts = append(parts, onesWords[n/100], "Hundred")
		n %= 100
	}
	switch {
	case n >= 20:
		parts = append(parts, tensWords[n/10])
		if n%10 > 0 {
			parts = append(parts, onesWords[n%10])
		}
	case n > 0:
		parts = append(parts, onesWords[n])
	}
	return strings.Join(parts, " ")
}
