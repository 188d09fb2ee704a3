// Package pgn provides multi-game PGN archive indexing and iteration: a
// byte-offset Indexer (C7), a permissive Header Scanner (C6), a lazy
// caching Cursor (C8), and a goroutine-based worker pool for parallel
// parsing (C9). The single-game grammar and replay live in package chess.
package pgn

import "strings"

// ScanHeaders extracts tag pairs from a contiguous header block: every
// line beginning with "[" up to (not including) the first blank line.
// It is deliberately more permissive than the full grammar (chess.
// ParsePGN): a malformed individual line is simply omitted from the
// result rather than failing the whole block. See spec §4.6.
func ScanHeaders(block string) map[string]string {
	headers := map[string]string{}
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		if !strings.HasPrefix(line, "[") {
			continue
		}
		name, value, ok := scanTagLine(line)
		if ok {
			headers[name] = value
		}
	}
	return headers
}

// scanTagLine extracts Name and Value from `[Name  "Value"]`, locating the
// first unescaped quote after the name and the next unescaped quote,
// where "unescaped" means preceded by an even number of backslashes.
// Unescaping is applied in the fixed order \\ -> \, then \" -> ".
func scanTagLine(line string) (name, value string, ok bool) {
	if !strings.HasPrefix(line, "[") {
		return "", "", false
	}
	body := line[1:]
	if strings.HasSuffix(body, "]") {
		body = body[:len(body)-1]
	}
	quoteStart := strings.IndexByte(body, '"')
	if quoteStart < 0 {
		return "", "", false
	}
	name = strings.TrimSpace(body[:quoteStart])
	if name == "" {
		return "", "", false
	}
	quoteEnd := findUnescapedQuote(body, quoteStart+1)
	if quoteEnd < 0 {
		return "", "", false
	}
	value = unescape(body[quoteStart+1 : quoteEnd])
	return name, value, true
}

func findUnescapedQuote(s string, start int) int {
	for i := start; i < len(s); i++ {
		if s[i] != '"' {
			continue
		}
		backslashes := 0
		for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
			backslashes++
		}
		if backslashes%2 == 0 {
			return i
		}
	}
	return -1
}

func unescape(s string) string {
	s = strings.ReplaceAll(s, `\\`, "\x00")
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, "\x00", `\`)
	return s
}
