package chess

import (
	"errors"
	"fmt"
)

// Sentinel errors for the error kinds named in spec §7. Grounded on the
// teacher's internal/errors package: sentinel errors.New values checked
// with errors.Is, wrapped with fmt.Errorf("%w", ...) for context, plus
// wrapper types implementing Unwrap for errors.As.
var (
	// ErrInvalidFEN indicates a FEN string that fails structural
	// validation (spec §4.10) or cannot be parsed into a Position.
	ErrInvalidFEN = errors.New("invalid FEN")

	// ErrInvalidMove indicates a SAN string or {from,to,promotion} that
	// does not resolve to any legal move in the current position.
	ErrInvalidMove = errors.New("invalid move")

	// ErrIllegalNullMove indicates a null move attempted while the side
	// to move is in check.
	ErrIllegalNullMove = errors.New("illegal null move: side to move is in check")

	// ErrInvalidSuffix indicates a suffix annotation outside the NAG set
	// {!, ?, !!, !?, ?!, ??}.
	ErrInvalidSuffix = errors.New("invalid suffix annotation")

	// ErrHeaderContract indicates a header-level contract violation, e.g.
	// SetUp "1" without an accompanying FEN tag under strict loading.
	ErrHeaderContract = errors.New("header contract violation")

	// ErrCursorRange indicates a Cursor operation (Seek, or an internal
	// index lookup) addressed a game index outside the archive's bounds.
	ErrCursorRange = errors.New("game index out of range")

	// ErrWorkerTransport indicates a worker pool batch could not be
	// dispatched to a worker goroutine (a panic during an item's parse,
	// or the pool being stopped or saturated) and fell back to
	// synchronous in-process processing.
	ErrWorkerTransport = errors.New("worker transport failure")
)

// MoveError wraps a move-related failure with the offending text and the
// position it was attempted against, for errors.Is/errors.As inspection.
type MoveError struct {
	Err  error
	Text string
	FEN  string
}

func (e *MoveError) Error() string {
	if e.FEN != "" {
		return fmt.Sprintf("move %q at %q: %v", e.Text, e.FEN, e.Err)
	}
	return fmt.Sprintf("move %q: %v", e.Text, e.Err)
}

func (e *MoveError) Unwrap() error { return e.Err }

// FENError wraps a FEN validation failure with the offending field.
type FENError struct {
	Err   error
	FEN   string
	Field int // 1-based FEN field index, 0 if not field-specific
}

func (e *FENError) Error() string {
	if e.Field > 0 {
		return fmt.Sprintf("fen %q field %d: %v", e.FEN, e.Field, e.Err)
	}
	return fmt.Sprintf("fen %q: %v", e.FEN, e.Err)
}

func (e *FENError) Unwrap() error { return e.Err }

// Is reports every FENError as an ErrInvalidFEN for errors.Is.
func (e *FENError) Is(target error) bool { return target == ErrInvalidFEN }
