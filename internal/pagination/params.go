package pagination

import (
	"net/url"
	"strconv"
	"strings"

	"storefront/internal/model"
)

const (
	// DefaultPageSize is used when the client omits pageSize.
	DefaultPageSize = 50
	// MaxPageSize caps pageSize to keep listings bounded.
	MaxPageSize = 100
)

// Parse reads pageSize and pageToken from query values.
func Parse(values url.Values) (model.PageRequest, error) {
	req := model.PageRequest{PageToken: strings.TrimSpace(values.Get("pageToken"))}

	raw := strings.TrimSpace(values.Get("pageSize"))
	if raw == "" {
		return req, nil
	}

	size, err := strconv.Atoi(raw)
	if err != nil || size <= 0 {
		return model.PageRequest{}, model.NewValidationError("pageSize must be a positive integer")
	}
	req.PageSize = size

	return req, nil
}

// Limit clamps a requested page size into [1, MaxPageSize], defaulting when unset.
func Limit(pageSize int) int {
	switch {
	case pageSize <= 0:
		return DefaultPageSize
	case pageSize > MaxPageSize:
		return MaxPageSize
	default:
		return pageSize
	}
}
