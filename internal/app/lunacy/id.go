package lunacy

import (
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
)

// NewID returns a fresh swatch id: a random UUID in unpadded base64url
func NewID() string {
	return EncodeID(uuid.New())
}

// EncodeID converts a UUID into the document id form
func EncodeID(id uuid.UUID) string {
	return base64.RawURLEncoding.EncodeToString(id[:])
}

// DecodeID converts a document id back into a UUID
func DecodeID(id string) (uuid.UUID, error) {
	data, err := base64.RawURLEncoding.DecodeString(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", id, err)
	}

	u, err := uuid.FromBytes(data)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", id, err)
	}

	return u, nil
}
