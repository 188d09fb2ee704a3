package pgn

import (
	"strings"
	"unicode"
)

// Soundex computes a soundex code for a player name, for fuzzy matching
// across an archive's Header Scanner results (e.g. "Smith" against
// "Smyth", or a name with diacritics stripped against its ASCII form).
// Grounded on the teacher's internal/matching.Soundex, whose consonant
// grouping is tailored for chess names, including Slavic transliteration
// variants, rather than the classical English-surname soundex table.
func Soundex(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))

	var cleaned strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) {
			cleaned.WriteRune(r)
		}
	}

	s := cleaned.String()
	if s == "" {
		return ""
	}

	result := string(s[0])
	lastCode := soundexCode(s[0])
	for i := 1; i < len(s) && len(result) < 6; i++ {
		code := soundexCode(s[i])
		if code != '0' && code != lastCode {
			result += string(code)
		}
		if code != '0' {
			lastCode = code
		}
	}
	for len(result) < 6 {
		result += "0"
	}
	return result
}

// soundexDigits maps each letter to its consonant-group digit; a letter
// absent from the table (vowels, Y, H) codes as '0'.
var soundexDigits = [26]byte{
	'B' - 'A': '1', 'F' - 'A': '1', 'P' - 'A': '1', 'V' - 'A': '1', 'W' - 'A': '1',
	'C' - 'A': '2', 'G' - 'A': '2', 'J' - 'A': '2', 'K' - 'A': '2', 'Q' - 'A': '2', 'S' - 'A': '2', 'X' - 'A': '2', 'Z' - 'A': '2',
	'D' - 'A': '3', 'T' - 'A': '3',
	'L' - 'A': '4',
	'M' - 'A': '5', 'N' - 'A': '5',
	'R' - 'A': '6',
}

// soundexCode groups similar-sounding consonants under one digit; vowels
// and anything else (including non-ASCII letter bytes that slip through
// the cleaning pass) fall through to '0'.
func soundexCode(c byte) byte {
	if c < 'A' || c > 'Z' {
		return '0'
	}
	if d := soundexDigits[c-'A']; d != 0 {
		return d
	}
	return '0'
}

// SoundexMatch reports whether name1 and name2 share a Soundex code.
func SoundexMatch(name1, name2 string) bool {
	return Soundex(name1) == Soundex(name2)
}
