package invoicepdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguageValid(t *testing.T) {
	assert.True(t, LanguageArabic.Valid())
	assert.True(t, LanguageEnglish.Valid())
	assert.False(t, Language("fr").Valid())
	assert.False(t, Language("").Valid())
}

func TestDefaultLabelsComplete(t *testing.T) {
	for _, lang := range []Language{LanguageArabic, LanguageEnglish} {
		labels := DefaultLabels(lang)
		assert.NotEmpty(t, labels.CompanyName)
		assert.NotEmpty(t, labels.VATNumber)
		assert.NotEmpty(t, labels.InvoiceNumber)
		assert.NotEmpty(t, labels.Date)
		assert.NotEmpty(t, labels.CustomerInfo)
		assert.NotEmpty(t, labels.Description)
		assert.NotEmpty(t, labels.Quantity)
		assert.NotEmpty(t, labels.Amount)
		assert.NotEmpty(t, labels.VAT)
		assert.NotEmpty(t, labels.Total)
		assert.NotEmpty(t, labels.Subtotal)
		assert.NotEmpty(t, labels.VATTotal)
		assert.NotEmpty(t, labels.GrandTotal)
		assert.NotEmpty(t, labels.QRCode)
		assert.NotEmpty(t, labels.Notes)
	}
}

func TestResolveLabelsNoOverrides(t *testing.T) {
	assert.Equal(t, DefaultLabels(LanguageEnglish), ResolveLabels(LanguageEnglish, nil))
	assert.Equal(t, DefaultLabels(LanguageArabic), ResolveLabels(LanguageArabic, &LabelOverrides{}))
}

func TestResolveLabelsAppliesOverride(t *testing.T) {
	total := "المبلغ الإجمالي"
	labels := ResolveLabels(LanguageArabic, &LabelOverrides{GrandTotal: &total})

	assert.Equal(t, total, labels.GrandTotal)
	// Untouched keys keep the same language's defaults, never English
	assert.Equal(t, DefaultLabels(LanguageArabic).Subtotal, labels.Subtotal)
	assert.NotEqual(t, DefaultLabels(LanguageEnglish).Subtotal, labels.Subtotal)
}

func TestResolveLabelsIgnoresEmptyOverride(t *testing.T) {
	empty := ""
	labels := ResolveLabels(LanguageEnglish, &LabelOverrides{Total: &empty})
	assert.Equal(t, DefaultLabels(LanguageEnglish).Total, labels.Total)
}

func TestFillMissingUnionsBlanks(t *testing.T) {
	partial := Labels{Total: "Custom Total"}
	filled := fillMissing(partial, DefaultLabels(LanguageEnglish))

	assert.Equal(t, "Custom Total", filled.Total)
	assert.Equal(t, DefaultLabels(LanguageEnglish).QRCode, filled.QRCode)
	assert.NotEmpty(t, filled.Subtotal)
}
