package pgn

import "strings"

// GameIndex records the byte span of one game within a multi-game PGN
// archive plus its eagerly scanned headers, per spec §3/§4.7.
type GameIndex struct {
	StartOffset int
	EndOffset   int
	Headers     map[string]string
}

// IndexGames performs a single O(N) pass over text, splitting on "\n". A
// new game begins at the first tag-pair line that follows a blank line
// (or the start of file); the header scanner runs over that game's
// contiguous header block. The previous entry's EndOffset is set to the
// new game's StartOffset; the final entry's EndOffset is the text length.
// Never fails on an individual malformed game: such a game simply gets a
// partial or empty Headers map.
func IndexGames(text string) []GameIndex {
	lines := strings.Split(text, "\n")
	var out []GameIndex
	var current *GameIndex
	prevBlank := true
	offset := 0

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		isTagLine := strings.HasPrefix(trimmed, "[")

		if isTagLine && prevBlank {
			if current != nil {
				current.EndOffset = offset
				out = append(out, *current)
			}
			current = &GameIndex{StartOffset: offset}
			current.Headers = ScanHeaders(strings.Join(headerBlockAt(lines, i), "\n"))
		}

		prevBlank = trimmed == ""
		offset += len(line) + 1
	}

	if current != nil {
		current.EndOffset = len(text)
		out = append(out, *current)
	}
	return out
}

// headerBlockAt collects the contiguous run of tag-pair lines starting at
// index i, stopping at the first blank or non-tag line.
func headerBlockAt(lines []string, i int) []string {
	var block []string
	for ; i < len(lines); i++ {
		t := strings.TrimSpace(lines[i])
		if t == "" || !strings.HasPrefix(t, "[") {
			break
		}
		block = append(block, lines[i])
	}
	return block
}
