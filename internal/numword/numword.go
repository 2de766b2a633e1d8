// Package numword parses a run of English/Polish number words into a
// float64, per spec.md §4.2 ("Number-word literals") and the toNumber
// family of built-ins in spec.md §6.
package numword

import "strings"

var ones = map[string]float64{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6, "seven": 7,
	"eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,

	"zero_pl": 0, "jeden": 1, "dwa": 2, "trzy": 3, "cztery": 4, "pięć": 5, "sześć": 6,
	"siedem": 7, "osiem": 8, "dziewięć": 9, "dziesięć": 10, "jedenaście": 11, "dwanaście": 12,
	"trzynaście": 13, "czternaście": 14, "piętnaście": 15, "szesnaście": 16, "siedemnaście": 17,
	"osiemnaście": 18, "dziewiętnaście": 19,
}

var tens = map[string]float64{
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50, "sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,

	"dwadzieścia": 20, "trzydzieści": 30, "czterdzieści": 40, "pięćdziesiąt": 50,
	"sześćdziesiąt": 60, "siedemdziesiąt": 70, "osiemdziesiąt": 80, "dziewięćdziesiąt": 90,
}

var hundreds = map[string]bool{"hundred": true, "sto": true}

var scales = map[string]float64{
	"thousand": 1e3, "million": 1e6, "billion": 1e9, "trillion": 1e12,
	"quadrillion": 1e15, "quintillion": 1e18,

	"tysiąc": 1e3, "milion": 1e6, "miliard": 1e9, "bilion": 1e12,
	"biliard": 1e15, "trylion": 1e18,
}

var connectors = map[string]bool{"and": true, "i": true}

// IsWord reports whether w is any recognised number word, hundred
// marker, scale word, or connector — used by the parser to decide
// whether an identifier could extend a number-word run.
func IsWord(w string) bool {
	w = strings.ToLower(w)
	if _, ok := ones[w]; ok {
		return true
	}
	if _, ok := tens[w]; ok {
		return true
	}
	if hundreds[w] {
		return true
	}
	if _, ok := scales[w]; ok {
		return true
	}
	return connectors[w]
}

// Parse converts a run of number words (connectors "and"/"i" allowed
// between parts but not first) into a float64. It requires every word to
// be consumed; a connector may not appear first per spec.md §4.2.
func Parse(words []string) (float64, bool) {
	if len(words) == 0 {
		return 0, false
	}
	if connectors[strings.ToLower(words[0])] {
		return 0, false
	}

	var total float64
	var current float64
	sawAny := false

	for idx := 0; idx < len(words); idx++ {
		w := strings.ToLower(words[idx])
		switch {
		case connectors[w]:
			if !sawAny {
				return 0, false
			}
			continue
		case func() bool { _, ok := ones[w]; return ok }():
			current += ones[w]
			sawAny = true
		case func() bool { _, ok := tens[w]; return ok }():
			current += tens[w]
			sawAny = true
		case hundreds[w]:
			if current == 0 {
				current = 1
			}
			current *= 100
			sawAny = true
		case func() bool { _, ok := scales[w]; return ok }():
			if current == 0 {
				current = 1
			}
			total += current * scales[w]
			current = 0
			sawAny = true
		default:
			return 0, false
		}
	}
	if !sawAny {
		return 0, false
	}
	return total + current, true
}
