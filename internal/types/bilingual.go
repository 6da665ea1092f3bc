package types

import (
	"database/sql/driver"
	"encoding/json"

	ierr "github.com/gymmawy/gymmawy/internal/errors"
)

// Language selects which side of a bilingual field to render.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageArabic  Language = "ar"
)

func (l Language) Validate() error {
	switch l {
	case LanguageEnglish, LanguageArabic:
		return nil
	default:
		return ierr.NewErrorf("invalid language: %s", l).
			Mark(ierr.ErrValidation)
	}
}

// Bilingual is a fixed-shape English/Arabic text pair, stored as a JSONB
// column. Resolution is total: the requested language falls back to English,
// then Arabic, then the empty string.
type Bilingual struct {
	En string `json:"en"`
	Ar string `json:"ar"`
}

// In resolves the text for the given language.
func (b Bilingual) In(lang Language) string {
	if lang == LanguageArabic && b.Ar != "" {
		return b.Ar
	}
	if b.En != "" {
		return b.En
	}
	return b.Ar
}

// IsEmpty reports whether neither language has text.
func (b Bilingual) IsEmpty() bool {
	return b.En == "" && b.Ar == ""
}

// Value implements driver.Valuer so Bilingual persists as JSONB.
func (b Bilingual) Value() (driver.Value, error) {
	return json.Marshal(b)
}

// Scan implements sql.Scanner.
func (b *Bilingual) Scan(value interface{}) error {
	if value == nil {
		*b = Bilingual{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return ierr.NewErrorf("unsupported type for bilingual field: %T", value).
			Mark(ierr.ErrDatabase)
	}

	return json.Unmarshal(data, b)
}
