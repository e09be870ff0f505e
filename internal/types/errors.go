package types

import "errors"

// Sentinel errors for graphfilter host operations.
// The filter algebra itself has no error conditions.
var (
	// ErrInvalidExpression indicates a filter expression tree could not be decoded.
	ErrInvalidExpression = errors.New("invalid filter expression")

	// ErrExpressionTooDeep indicates a filter expression exceeds the maximum nesting depth.
	ErrExpressionTooDeep = errors.New("filter expression exceeds maximum depth")

	// ErrUnknownNodeRef indicates a graph document link refers to an undeclared node.
	ErrUnknownNodeRef = errors.New("unknown node reference")

	// ErrDuplicateNodeRef indicates a graph document declares the same ref twice.
	ErrDuplicateNodeRef = errors.New("duplicate node reference")

	// ErrDuplicateNodeID indicates two nodes in one graph carry the same identifier.
	ErrDuplicateNodeID = errors.New("duplicate node identifier")

	// ErrNodeNotFound indicates a lookup by NodeID found nothing.
	ErrNodeNotFound = errors.New("node not found")
)
