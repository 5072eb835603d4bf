// Package objectid validates and parses the 24-character hexadecimal
// identifiers used on the wire for every stored entity.
package objectid

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Valid reports whether s is a well-formed identifier (24 hex characters).
func Valid(s string) bool {
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}

// Parse converts s into an ObjectID. Surrounding whitespace is ignored.
// ok is false when s is empty or malformed.
func Parse(s string) (id primitive.ObjectID, ok bool) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
