package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product represents an item in the storefront catalogue.
type Product struct {
	ID        string          `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Category  string          `json:"category" db:"category"`
	Image     ImageList       `json:"image" db:"image"`
	Sizes     []string        `json:"sizes,omitempty" db:"sizes"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}

// ImageList holds product image references. Catalogue records store either a
// single image string or an array of them; both decode into a list.
type ImageList []string

// UnmarshalJSON accepts a JSON string, an array of strings or null.
func (l *ImageList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}

	if data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return fmt.Errorf("decode image: %w", err)
		}
		*l = ImageList{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("decode image list: %w", err)
	}
	*l = ImageList(many)
	return nil
}

// Normalized returns the non-blank image references in their original order.
func (l ImageList) Normalized() []string {
	images := make([]string, 0, len(l))
	for _, img := range l {
		img = strings.TrimSpace(img)
		if img != "" {
			images = append(images, img)
		}
	}
	return images
}
