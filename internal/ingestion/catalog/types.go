package catalog

import (
	"fmt"
	"strings"
)

// PartListResponse is the envelope the upstream catalog returns for a page
// of parts.
type PartListResponse struct {
	Data   []PartData `json:"data"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
	Total  int        `json:"total"`
}

// PartData is one catalog entry as the upstream API ships it.
type PartData struct {
	ID         string         `json:"id"`
	Attributes PartAttributes `json:"attributes"`
}

type PartAttributes struct {
	Manufacturer string `json:"manufacturer"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Spec         string `json:"spec"`
	UpdatedAt    string `json:"updated_at"`
}

// ExtractedPart is the normalized form ready for storage.
type ExtractedPart struct {
	ExternalRef  string
	Manufacturer string
	Name         string
	CategorySlug string
	CategoryName string
	Spec         string
}

// ExtractPartMetadata validates and normalizes one upstream entry.
func ExtractPartMetadata(data PartData) (*ExtractedPart, error) {
	if data.ID == "" {
		return nil, fmt.Errorf("catalog entry missing id")
	}
	name := strings.TrimSpace(data.Attributes.Name)
	if name == "" {
		return nil, fmt.Errorf("catalog entry %s missing name", data.ID)
	}

	category := strings.TrimSpace(data.Attributes.Category)
	if category == "" {
		category = "Uncategorized"
	}

	return &ExtractedPart{
		ExternalRef:  data.ID,
		Manufacturer: strings.TrimSpace(data.Attributes.Manufacturer),
		Name:         name,
		CategorySlug: slugify(category),
		CategoryName: category,
		Spec:         data.Attributes.Spec,
	}, nil
}

// slugify lowercases and hyphenates a category label.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastHyphen := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
