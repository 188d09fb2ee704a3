package pgn

import (
	"testing"

	"github.com/lucidchess/corepgn/chess"
	"github.com/lucidchess/corepgn/internal/testutil"
)

func threeGamePGN() string {
	return `[Event "One"]
[Site "?"]
[Date "????.??.??"]
[Round "1"]
[White "A"]
[Black "B"]
[Result "1-0"]

1. e4 e5 1-0

[Event "Two"]
[Site "?"]
[Date "????.??.??"]
[Round "2"]
[White "C"]
[Black "D"]
[Result "0-1"]

1. d4 d5 0-1

[Event "Three"]
[Site "?"]
[Date "????.??.??"]
[Round "3"]
[White "E"]
[Black "F"]
[Result "*"]

1. c4 *
`
}

func TestCursorSequentialIteration(t *testing.T) {
	c := NewCursor(threeGamePGN(), Options{Strict: true})
	var events []string
	for c.HasNext() {
		g, err := c.Next()
		testutil.AssertNoError(t, err, "Next()")
		testutil.AssertNotNil(t, g, "Next() before exhaustion")
		for _, h := range g.GetHeaders() {
			if h.Name == "Event" {
				events = append(events, h.Value)
			}
		}
	}
	testutil.AssertEqual(t, events, []string{"One", "Two", "Three"}, "Event headers in iteration order")
	if g, err := c.Next(); g != nil || err != nil {
		t.Errorf("Next() past the end = (%v, %v), want (nil, nil)", g, err)
	}
}

func TestCursorSeekAndBefore(t *testing.T) {
	c := NewCursor(threeGamePGN(), Options{Strict: true})
	if !c.Seek(2) {
		t.Fatal("Seek(2) = false")
	}
	g, err := c.Next()
	if err != nil || g == nil {
		t.Fatalf("Next() after Seek(2) = (%v, %v)", g, err)
	}
	before, err := c.Before()
	if err != nil || before == nil {
		t.Fatalf("Before() = (%v, %v)", before, err)
	}
	found := false
	for _, h := range before.GetHeaders() {
		if h.Name == "Event" && h.Value == "Three" {
			found = true
		}
	}
	if !found {
		t.Error("Before() did not return game Three")
	}
}

func TestCursorSeekOutOfRange(t *testing.T) {
	c := NewCursor(threeGamePGN(), Options{Strict: true})
	testutil.AssertFalse(t, c.Seek(-1), "Seek(-1)")
	testutil.AssertFalse(t, c.Seek(99), "Seek(99)")
}

func TestCursorFindNext(t *testing.T) {
	c := NewCursor(threeGamePGN(), Options{Strict: true})
	g, err := c.FindNext(func(h map[string]string) bool {
		return h["White"] == "C"
	})
	if err != nil {
		t.Fatalf("FindNext error: %v", err)
	}
	if g == nil {
		t.Fatal("FindNext() = nil, want game Two")
	}
	for _, h := range g.GetHeaders() {
		if h.Name == "Event" && h.Value != "Two" {
			t.Errorf("FindNext() matched Event %q, want Two", h.Value)
		}
	}
}

func TestCursorResetRewindsAndClearsCache(t *testing.T) {
	c := NewCursor(threeGamePGN(), Options{Strict: true})
	if _, err := c.Next(); err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	c.Reset()
	if c.current != c.opts.Start {
		t.Errorf("current after Reset = %d, want %d", c.current, c.opts.Start)
	}
	if !c.HasNext() {
		t.Error("HasNext() = false after Reset")
	}
	if _, ok := c.cacheGet(0); ok {
		t.Error("cache still holds game 0 after Reset")
	}
}

func TestCursorCacheIsFIFOBounded(t *testing.T) {
	c := NewCursor(threeGamePGN(), Options{Strict: true, CacheSize: 1, Prefetch: 0})
	if _, err := c.Next(); err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if _, err := c.Next(); err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	// CacheSize 1 means the first game's cache entry must have been
	// evicted by the time the second is cached.
	if _, ok := c.cacheGet(0); ok {
		t.Error("cache still holds game 0 after CacheSize 1 evicted it")
	}
	if _, ok := c.cacheGet(1); !ok {
		t.Error("cache does not hold the most recently parsed game")
	}
}

func TestCursorPGNPreservesCurrent(t *testing.T) {
	c := NewCursor(threeGamePGN(), Options{Strict: true})
	if _, err := c.Next(); err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	before := c.current
	out := c.PGN(chess.PGNOptions{})
	if out == "" {
		t.Error("PGN() returned empty output")
	}
	if c.current != before {
		t.Errorf("current changed by PGN(): got %d, want %d", c.current, before)
	}
}

func TestCursorTotalGames(t *testing.T) {
	c := NewCursor(threeGamePGN(), Options{Strict: true})
	if got := c.TotalGames(); got != 3 {
		t.Errorf("TotalGames() = %d, want 3", got)
	}
}

func TestNewOptionsAppliesFunctionalOptions(t *testing.T) {
	opts := NewOptions(WithStrict(true), WithWorkers(true), WithWorkerCount(2), WithCacheSize(5))
	testutil.AssertTrue(t, opts.Strict, "Strict")
	testutil.AssertTrue(t, opts.Workers, "Workers")
	testutil.AssertEqual(t, opts.WorkerCount, 2, "WorkerCount")
	testutil.AssertEqual(t, opts.CacheSize, 5, "CacheSize")

	c := NewCursor(threeGamePGN(), opts)
	if got := c.TotalGames(); got != 3 {
		t.Errorf("TotalGames() = %d, want 3", got)
	}
}
