package chess

import "testing"

func TestParsePGNSimpleGame(t *testing.T) {
	text := `[Event "Test"]
[White "A"]
[Black "B"]
[Result "1-0"]

1. e4 e5 2. Nf3 Nc6 1-0`

	headers, root, result, err := ParsePGN(text, true)
	if err != nil {
		t.Fatalf("ParsePGN error: %v", err)
	}
	if result != "1-0" {
		t.Errorf("result = %q, want 1-0", result)
	}
	wantHeaders := map[string]string{"Event": "Test", "White": "A", "Black": "B", "Result": "1-0"}
	for _, h := range headers {
		if wantHeaders[h.Name] != h.Value {
			t.Errorf("header %s = %q, want %q", h.Name, h.Value, wantHeaders[h.Name])
		}
	}

	var mainLine []string
	node := root
	for len(node.Variations) > 0 {
		node = node.Variations[0]
		mainLine = append(mainLine, node.Move)
	}
	want := []string{"e4", "e5", "Nf3", "Nc6"}
	if len(mainLine) != len(want) {
		t.Fatalf("main line = %v, want %v", mainLine, want)
	}
	for i := range want {
		if mainLine[i] != want[i] {
			t.Errorf("main line[%d] = %q, want %q", i, mainLine[i], want[i])
		}
	}
}

func TestParsePGNFirstMoveVariation(t *testing.T) {
	text := `[Event "Test"]

1. e4 (1. d4) e5 *`

	_, root, _, err := ParsePGN(text, true)
	if err != nil {
		t.Fatalf("ParsePGN error: %v", err)
	}
	if len(root.Variations) != 2 {
		t.Fatalf("root has %d variations, want 2 (main + alternative first move)", len(root.Variations))
	}
	if root.Variations[0].Move != "e4" {
		t.Errorf("root.Variations[0].Move = %q, want e4", root.Variations[0].Move)
	}
	if root.Variations[1].Move != "d4" {
		t.Errorf("root.Variations[1].Move = %q, want d4", root.Variations[1].Move)
	}
}

func TestParsePGNLaterVariationAttachesToParentSlot(t *testing.T) {
	text := `[Event "Test"]

1. e4 e5 (1... c5 2. Nf3) 2. Nf3 *`

	_, root, _, err := ParsePGN(text, true)
	if err != nil {
		t.Fatalf("ParsePGN error: %v", err)
	}
	e4node := root.Variations[0]
	if e4node.Move != "e4" {
		t.Fatalf("root.Variations[0].Move = %q, want e4", e4node.Move)
	}
	// e5 and the alternative c5 are both replies to e4, so they are
	// siblings under e4's Variations slot.
	if len(e4node.Variations) != 2 {
		t.Fatalf("e4 node has %d variations, want 2 (e5 + alternative c5)", len(e4node.Variations))
	}
	if e4node.Variations[0].Move != "e5" {
		t.Errorf("e4node.Variations[0].Move = %q, want e5", e4node.Variations[0].Move)
	}
	if e4node.Variations[1].Move != "c5" {
		t.Errorf("e4node.Variations[1].Move = %q, want c5", e4node.Variations[1].Move)
	}
}

func TestParsePGNCommentsAndNAGs(t *testing.T) {
	text := `[Event "Test"]

1. e4 {best by test} e5 $1 2. Nf3 *`

	_, root, _, err := ParsePGN(text, true)
	if err != nil {
		t.Fatalf("ParsePGN error: %v", err)
	}
	e4node := root.Variations[0]
	if e4node.Comment != "best by test" {
		t.Errorf("e4 comment = %q, want %q", e4node.Comment, "best by test")
	}
	e5node := e4node.Variations[0]
	if e5node.SuffixAnnotation != "!" {
		t.Errorf("e5 suffix = %q, want !", e5node.SuffixAnnotation)
	}
}

func TestParsePGNRejectsOrphanRAV(t *testing.T) {
	text := `[Event "Test"]

(1. e4) *`
	_, _, _, err := ParsePGN(text, true)
	if err == nil {
		t.Error("ParsePGN accepted an RAV with no preceding move, want error")
	}
}
