package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBilingualIn(t *testing.T) {
	both := Bilingual{En: "Gold Plan", Ar: "الخطة الذهبية"}
	assert.Equal(t, "Gold Plan", both.In(LanguageEnglish))
	assert.Equal(t, "الخطة الذهبية", both.In(LanguageArabic))

	// Resolution is total: missing sides fall back rather than return blanks.
	enOnly := Bilingual{En: "Gold Plan"}
	assert.Equal(t, "Gold Plan", enOnly.In(LanguageArabic))

	arOnly := Bilingual{Ar: "الخطة الذهبية"}
	assert.Equal(t, "الخطة الذهبية", arOnly.In(LanguageEnglish))

	empty := Bilingual{}
	assert.Equal(t, "", empty.In(LanguageEnglish))
	assert.Equal(t, "", empty.In(LanguageArabic))
	assert.True(t, empty.IsEmpty())
	assert.False(t, arOnly.IsEmpty())
}

func TestBilingualScan(t *testing.T) {
	var b Bilingual
	assert.NoError(t, b.Scan([]byte(`{"en":"Gold","ar":"ذهبي"}`)))
	assert.Equal(t, "Gold", b.En)
	assert.Equal(t, "ذهبي", b.Ar)

	assert.NoError(t, b.Scan(nil))
	assert.True(t, b.IsEmpty())

	assert.Error(t, b.Scan(42))
}
