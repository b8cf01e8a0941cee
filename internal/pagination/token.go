// Package pagination encodes keyset positions of order listings as opaque page tokens.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
)

type tokenPayload struct {
	CreatedAt time.Time `json:"c"`
	ID        uuid.UUID `json:"i"`
}

// EncodeToken serialises cursor into a base64 URL-safe page token.
func EncodeToken(cursor model.OrderCursor) (string, error) {
	data, err := json.Marshal(tokenPayload{CreatedAt: cursor.CreatedAt.UTC(), ID: cursor.ID})
	if err != nil {
		return "", fmt.Errorf("pagination: encode token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeToken parses a token produced by EncodeToken. An empty token yields a
// nil cursor, meaning the first page.
func DecodeToken(token string) (*model.OrderCursor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}

	decoded, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidPageToken, err)
	}

	var payload tokenPayload
	if err := json.Unmarshal(decoded, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidPageToken, err)
	}
	if payload.ID == uuid.Nil || payload.CreatedAt.IsZero() {
		return nil, model.ErrInvalidPageToken
	}

	return &model.OrderCursor{CreatedAt: payload.CreatedAt, ID: payload.ID}, nil
}
