package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"english command", "add milk to my cart", LangEnglish},
		{"arabic command", "أضف الحليب إلى السلة", LangArabic},
		{"mixed script leans arabic", "add حليب please", LangArabic},
		{"numbers only default to english", "12345", LangEnglish},
		{"empty string", "", LangEnglish},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLanguage(tt.text))
		})
	}
}

func TestNLUModelFor(t *testing.T) {
	assert.Equal(t, "nlu-en", NLUModelFor(LangEnglish))
	assert.Equal(t, "nlu-ar", NLUModelFor(LangArabic))
	assert.Equal(t, "nlu-en", NLUModelFor("fr"))
}
