package chess

import (
	"fmt"
	"strconv"
	"strings"
)

// PGNOptions configures Game.PGN.
type PGNOptions struct {
	Newline  string // default "\n"
	MaxWidth int    // 0 disables wrapping
}

// pgnWriter wraps tokens at MaxWidth. A header line, a "SAN+suffix" pair,
// or a single word of comment text is never split across a break; a long
// comment body itself wraps word by word via writeComment. Grounded on
// the teacher's internal/output.OutputWriter.
type pgnWriter struct {
	sb         strings.Builder
	newline    string
	maxWidth   int
	lineLength int
	needsSpace bool
}

func newPGNWriter(opts PGNOptions) *pgnWriter {
	nl := opts.Newline
	if nl == "" {
		nl = "\n"
	}
	return &pgnWriter{newline: nl, maxWidth: opts.MaxWidth}
}

func (w *pgnWriter) writeLine(s string) {
	w.sb.WriteString(s)
	w.sb.WriteString(w.newline)
}

// write appends a single atomic token, wrapping to a new line first if it
// would not fit and MaxWidth > 0. Tokens are never split.
func (w *pgnWriter) write(tok string) {
	if w.needsSpace {
		if w.maxWidth > 0 && w.lineLength+1+len(tok) > w.maxWidth {
			w.sb.WriteString(w.newline)
			w.lineLength = 0
			w.needsSpace = false
		} else {
			w.sb.WriteByte(' ')
			w.lineLength++
		}
	}
	w.sb.WriteString(tok)
	w.lineLength += len(tok)
	w.needsSpace = true
}

// writeComment emits a brace-delimited comment, word-wrapping its body
// across lines like any other token stream: each word of the comment is
// its own wrap point, with the opening "{" glued to the first word and
// the closing "}" glued to the last, so a break never separates "}" from
// the content it closes. Per spec, whitespace immediately before a wrap
// is stripped rather than carried onto the new line; splitting on
// strings.Fields already discards that whitespace before write ever sees
// it, so the wrap point itself never leaves a trailing space behind.
func (w *pgnWriter) writeComment(comment string) {
	words := strings.Fields(comment)
	if len(words) == 0 {
		w.write("{}")
		return
	}
	for i, word := range words {
		if i == 0 {
			word = "{" + word
		}
		if i == len(words)-1 {
			word += "}"
		}
		w.write(word)
	}
}

func escapeTagValue(s string) string {
	if !strings.ContainsAny(s, `\"`) {
		return s
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

// PGN renders the game as PGN text: header block, blank line, movetext,
// terminating result. See spec §4.4.
func (g *Game) PGN(opts PGNOptions) string {
	w := newPGNWriter(opts)
	nl := w.newline

	headers := g.GetHeaders()
	for _, h := range headers {
		w.sb.WriteString(fmt.Sprintf("[%s \"%s\"]%s", h.Name, escapeTagValue(h.Value), nl))
	}
	if len(headers) > 0 {
		w.sb.WriteString(nl)
	}

	for i, e := range g.history {
		if e.turn == White {
			w.write(strconv.Itoa(e.moveNumber) + ".")
		} else if i == 0 {
			w.write(strconv.Itoa(e.moveNumber) + "...")
		}
		token := e.public.SAN
		if suffix, ok := g.suffixes[e.public.After]; ok {
			token += suffix
		}
		w.write(token)
		if comment, ok := g.comments[e.public.After]; ok {
			w.writeComment(comment)
		}
	}

	result, _ := g.header("Result")
	if result == "" {
		result = "*"
	}
	w.write(result)
	w.sb.WriteString(nl)

	return w.sb.String()
}

// LoadPgnOptions configures Game.LoadPgn.
type LoadPgnOptions struct {
	Strict      bool
	NewlineChar string // reserved: source newline override for future non-LF sources
}

// LoadPgn parses text via the PGN grammar and replays its main line onto
// a fresh Game, applying headers, comments, and NAG suffixes as it goes.
// See spec §4.4 and §4.5.
func (g *Game) LoadPgn(text string, opts LoadPgnOptions) error {
	headers, root, result, err := ParsePGN(text, opts.Strict)
	if err != nil {
		return err
	}

	var fenHeader string
	var hasFEN, setUp bool
	for _, h := range headers {
		if h.Name == "FEN" {
			fenHeader, hasFEN = h.Value, true
		}
		if h.Name == "SetUp" && h.Value == "1" {
			setUp = true
		}
	}

	if setUp && !hasFEN {
		if opts.Strict {
			return &MoveError{Err: ErrHeaderContract, Text: "SetUp without FEN"}
		}
		setUp = false
	}

	if setUp {
		if err := g.Load(fenHeader, NewLoadOptions(WithPreserveHeaders())); err != nil {
			if opts.Strict {
				return err
			}
			g.Reset(true)
		}
	} else {
		g.Reset(true)
	}

	for _, h := range headers {
		g.SetHeader(h.Name, h.Value)
	}
	if result != "" {
		g.SetHeader("Result", result)
	}

	if root == nil || len(root.Variations) == 0 {
		return nil
	}
	node := root.Variations[0]
	for node != nil {
		before := g.FEN(FENOptions{})
		mv, err := g.Move(node.Move, MoveOptions{Strict: opts.Strict})
		if err != nil {
			// Invalid PGN (semantic): the SAN did not resolve at its
			// position. Strict mode surfaces it immediately; non-strict
			// mode stops replay here and keeps whatever was already
			// applied, matching the Cursor's best-effort policy.
			if opts.Strict {
				return fmt.Errorf("pgn: move %q at %q did not resolve: %w", node.Move, before, err)
			}
			return nil
		}
		if node.Comment != "" {
			g.SetComment(mv.After, node.Comment)
		}
		if node.SuffixAnnotation != "" {
			_ = g.SetSuffixAnnotation(mv.After, node.SuffixAnnotation)
		}
		if len(node.Variations) == 0 {
			break
		}
		node = node.Variations[0]
	}
	return nil
}
