package textkit

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Lavender & Honey Soap", "lavender-honey-soap"},
		{"  Rosé   Crème  ", "rose-creme"},
		{"Café Ötzi", "cafe-otzi"},
		{"UPPER case", "upper-case"},
		{"already-a-slug", "already-a-slug"},
		{"--multiple---hyphens--", "multiple-hyphens"},
		{"100% Natural", "100-natural"},
		{"香水", "product"},
		{"", "product"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "Slugify(%q)", tc.in)
	}
}

func TestCompareNumericAware(t *testing.T) {
	names := []string{"b.jpg", "a.png", "c10.jpg", "c2.jpg"}
	sort.Slice(names, func(i, j int) bool { return Less(names[i], names[j]) })

	assert.Equal(t, []string{"a.png", "b.jpg", "c2.jpg", "c10.jpg"}, names)
}

func TestCompareCaseInsensitive(t *testing.T) {
	assert.Equal(t, 0, Compare("IMG_001", "img_001"))
	assert.True(t, Less("img_2", "IMG_10"))
}
