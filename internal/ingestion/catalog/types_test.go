package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPartMetadata(t *testing.T) {
	extracted, err := ExtractPartMetadata(PartData{
		ID: "cat-123",
		Attributes: PartAttributes{
			Manufacturer: " Brembo ",
			Name:         "  GT-S Caliper Kit ",
			Category:     "Brake Systems",
			Spec:         "6-piston, 380mm",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "cat-123", extracted.ExternalRef)
	assert.Equal(t, "Brembo", extracted.Manufacturer)
	assert.Equal(t, "GT-S Caliper Kit", extracted.Name)
	assert.Equal(t, "brake-systems", extracted.CategorySlug)
	assert.Equal(t, "Brake Systems", extracted.CategoryName)
}

func TestExtractPartMetadata_Invalid(t *testing.T) {
	_, err := ExtractPartMetadata(PartData{Attributes: PartAttributes{Name: "no id"}})
	assert.Error(t, err)

	_, err = ExtractPartMetadata(PartData{ID: "cat-1", Attributes: PartAttributes{Name: "   "}})
	assert.Error(t, err)
}

func TestExtractPartMetadata_MissingCategoryDefaults(t *testing.T) {
	extracted, err := ExtractPartMetadata(PartData{
		ID:         "cat-2",
		Attributes: PartAttributes{Name: "Mystery Part"},
	})
	require.NoError(t, err)
	assert.Equal(t, "uncategorized", extracted.CategorySlug)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Brake Systems":      "brake-systems",
		"Turbo / Forced Ind": "turbo-forced-ind",
		"  Wheels  ":         "wheels",
		"ECU":                "ecu",
	}
	for in, want := range cases {
		assert.Equal(t, want, slugify(in), "input %q", in)
	}
}
