package arabic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsArabic(t *testing.T) {
	assert.True(t, ContainsArabic("فاتورة"))
	assert.True(t, ContainsArabic("invoice فاتورة mixed"))
	assert.False(t, ContainsArabic("invoice 123"))
	assert.False(t, ContainsArabic(""))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a b c", Normalize("  a\t b \n c "))
	assert.Equal(t, "", Normalize("   "))
	assert.Equal(t, "شركة التقنية", Normalize(" شركة   التقنية "))
}

func TestShapeForDisplayPassThrough(t *testing.T) {
	res := ShapeForDisplay("Acme Trading LLC")
	assert.Equal(t, "Acme Trading LLC", res.Text)
	assert.False(t, res.Shaped)

	res = ShapeForDisplay("")
	assert.Equal(t, "", res.Text)
	assert.False(t, res.Shaped)
}

func TestShapeForDisplayShapesArabic(t *testing.T) {
	res := ShapeForDisplay("شركة التقنية")
	assert.True(t, res.Shaped)
	assert.NotEmpty(t, res.Text)
	// Contextual forms replace the isolated code points
	assert.NotEqual(t, "شركة التقنية", res.Text)
}

func TestShapeForDisplayPreservesRuneCountClass(t *testing.T) {
	// Shaping maps to presentation forms; output must still be Arabic text
	res := ShapeForDisplay("فاتورة")
	assert.True(t, res.Shaped)
	for _, r := range res.Text {
		assert.True(t, isArabicRune(r), "rune %U should be Arabic", r)
	}
}

func TestReorderRunsReversesArabicRunOrder(t *testing.T) {
	// A pure-Latin string is a single non-Arabic run and stays put
	assert.Equal(t, "hello", reorderRuns("hello"))

	// A pure-Arabic string has its runes reversed for visual order
	in := "ابج"
	out := reorderRuns(in)
	assert.Equal(t, "جبا", out)
}

func TestReorderRunsMixedDirection(t *testing.T) {
	// Arabic-first mixed text: the Latin run moves in front of the
	// reversed Arabic run
	out := reorderRuns("اب Ltd")
	assert.Equal(t, "Ltd با", out)
}
