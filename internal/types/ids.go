package types

import "github.com/google/uuid"

// NewNodeID generates a UUIDv7 node identifier.
// Time-ordered IDs keep sequential inserts clustered in the nodes index.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewNodeID() NodeID {
	return NodeID(uuid.Must(uuid.NewV7()).String())
}

// ParseNodeID validates and converts a string to NodeID.
// Rejects malformed UUIDs to prevent invalid IDs from entering filter trees.
func ParseNodeID(s string) (NodeID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return NodeID(u.String()), nil
}

// MustParseNodeID is ParseNodeID for literals in tests and fixtures.
func MustParseNodeID(s string) NodeID {
	id, err := ParseNodeID(s)
	if err != nil {
		panic(err)
	}
	return id
}
