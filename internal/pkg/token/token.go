// Package token generates opaque session tokens. Tokens carry no decodable
// structure; they are only valid as long as the matching user row holds them.
package token

import "github.com/google/uuid"

// New returns a fresh unguessable session token (UUID v4).
func New() string {
	return uuid.NewString()
}
