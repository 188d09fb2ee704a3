package chess

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidateFEN performs the structural-only validation from spec §4.10. It
// does not check positional legality beyond the eleven listed rules.
// Grounded on the teacher's internal/engine/fen.go field-by-field checks,
// generalized to the full rule set the spec enumerates (home-rank pawns,
// single king per side, EP-rank-vs-turn consistency).
func ValidateFEN(fen string) error {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return &FENError{Err: fmt.Errorf("expected 6 fields, got %d", len(fields)), FEN: fen}
	}
	placement, turn, castling, ep, halfmove, fullmove := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5]

	if n, err := strconv.Atoi(fullmove); err != nil || n <= 0 {
		return &FENError{Err: fmt.Errorf("move number must be a positive integer, got %q", fullmove), FEN: fen, Field: 6}
	}
	if n, err := strconv.Atoi(halfmove); err != nil || n < 0 {
		return &FENError{Err: fmt.Errorf("halfmove clock must be a non-negative integer, got %q", halfmove), FEN: fen, Field: 5}
	}
	if turn != "w" && turn != "b" {
		return &FENError{Err: fmt.Errorf("turn must be 'w' or 'b', got %q", turn), FEN: fen, Field: 2}
	}
	if castling != "-" {
		for _, r := range castling {
			if !strings.ContainsRune("kKqQ", r) {
				return &FENError{Err: fmt.Errorf("castling field has invalid character %q", r), FEN: fen, Field: 3}
			}
		}
	}

	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return &FENError{Err: fmt.Errorf("expected 8 ranks, got %d", len(ranks)), FEN: fen, Field: 1}
	}
	var kingCount, blackKingCount int
	for ri, rank := range ranks {
		sum := 0
		lastWasDigit := false
		for _, r := range rank {
			switch {
			case r >= '1' && r <= '8':
				if lastWasDigit {
					return &FENError{Err: fmt.Errorf("rank %d has two consecutive digits", ri+1), FEN: fen, Field: 1}
				}
				sum += int(r - '0')
				lastWasDigit = true
			case strings.ContainsRune("prnbqkPRNBQK", r):
				sum++
				lastWasDigit = false
				if r == 'K' {
					kingCount++
				}
				if r == 'k' {
					blackKingCount++
				}
				if (r == 'P' || r == 'p') && (ri == 0 || ri == 7) {
					return &FENError{Err: fmt.Errorf("pawn on rank %d", 8-ri), FEN: fen, Field: 1}
				}
			default:
				return &FENError{Err: fmt.Errorf("rank %d has invalid character %q", ri+1, r), FEN: fen, Field: 1}
			}
		}
		if sum != 8 {
			return &FENError{Err: fmt.Errorf("rank %d sums to %d squares, want 8", ri+1, sum), FEN: fen, Field: 1}
		}
	}
	if kingCount != 1 || blackKingCount != 1 {
		return &FENError{Err: fmt.Errorf("expected exactly one king per side, got %d white %d black", kingCount, blackKingCount), FEN: fen, Field: 1}
	}

	if ep != "-" {
		sq, ok := ParseSquare(ep)
		if !ok || len(ep) != 2 {
			return &FENError{Err: fmt.Errorf("malformed en-passant square %q", ep), FEN: fen, Field: 4}
		}
		wantRank := 5 // rank 6 (0-based 5) when white to move
		if turn == "b" {
			wantRank = 2 // rank 3 (0-based 2) when black to move
		}
		if sq.Rank() != wantRank {
			return &FENError{Err: fmt.Errorf("en-passant square %q inconsistent with side to move %q", ep, turn), FEN: fen, Field: 4}
		}
	}

	return nil
}
