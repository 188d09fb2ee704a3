package pgn

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestPoolSubmitBatchPreservesOrder(t *testing.T) {
	idx := IndexGames(threeGamePGN())
	items := make([]WorkItem, len(idx))
	for i, e := range idx {
		items[i] = WorkItem{
			Index:   i,
			Slice:   threeGamePGN()[e.StartOffset:e.EndOffset],
			Headers: e.Headers,
			Strict:  true,
		}
	}

	pool := NewPool(2, zerolog.Nop())
	defer pool.Terminate()

	results := pool.SubmitBatch(items)
	if len(results) != len(items) {
		t.Fatalf("SubmitBatch returned %d results, want %d", len(results), len(items))
	}
	for i, r := range results {
		if r.Index != i {
			t.Errorf("results[%d].Index = %d, want %d", i, r.Index, i)
		}
		if r.Err != nil {
			t.Errorf("results[%d].Err = %v", i, r.Err)
		}
		if r.Game == nil {
			t.Errorf("results[%d].Game = nil", i)
		}
	}
}

func TestPoolTerminateIsIdempotent(t *testing.T) {
	pool := NewPool(1, zerolog.Nop())
	pool.Terminate()
	pool.Terminate()
}

func TestPoolFallsBackAfterTerminate(t *testing.T) {
	pool := NewPool(1, zerolog.Nop())
	pool.Terminate()

	idx := IndexGames(threeGamePGN())
	e := idx[0]
	items := []WorkItem{{
		Index:   0,
		Slice:   threeGamePGN()[e.StartOffset:e.EndOffset],
		Headers: e.Headers,
		Strict:  true,
	}}
	results := pool.SubmitBatch(items)
	if len(results) != 1 || results[0].Game == nil {
		t.Errorf("SubmitBatch after Terminate = %+v, want a successful in-process fallback", results)
	}
}
