package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"BarBaz":                      "barbaz",
		"elec foo":                    "elec-foo",
		"Educación":                   "educacion",
		"Antecedentes laborales":      "antecedentes-laborales",
		"  Último   trabajo!! ":       "ultimo-trabajo",
		"Elección la Florida, 2012":   "eleccion-la-florida-2012",
		"already-a_slug":              "already-a-slug",
		"¿Estas de acuerdo?":          "estas-de-acuerdo",
		"":                            "",
		"!!!":                         "",
	}
	for input, expected := range cases {
		assert.Equal(t, expected, Slugify(input), "slugify %q", input)
	}
}

func TestMapAndContains(t *testing.T) {
	doubled := Map([]int{1, 2, 3}, func(i int) int { return i * 2 })
	assert.Equal(t, []int{2, 4, 6}, doubled)
	assert.True(t, Contains([]string{"a", "b"}, "b"))
	assert.False(t, Contains([]string{"a", "b"}, "c"))
}
