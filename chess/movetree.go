package chess

// MoveTreeNode is the PGN grammar's output shape (spec §3's "Move tree
// node"): {move?, comment?, suffixAnnotation?, variations}. The root node
// returned by ParsePGN carries no move of its own; Variations[0] is the
// main line, any further entries are alternative branches rooted at the
// same parent ply.
type MoveTreeNode struct {
	Move             string
	Comment          string
	SuffixAnnotation string
	Variations       []*MoveTreeNode
}
