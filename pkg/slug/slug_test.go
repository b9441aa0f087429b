package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Keten Gömlek", "keten-gomlek"},
		{"Kadın Giyim", "kadin-giyim"},
		{"Çocuk Ürünleri", "cocuk-urunleri"},
		{"Güneş Gözlüğü", "gunes-gozlugu"},
		{"İPEK ŞAL", "ipek-sal"},
		{"Kâğıt Çanta", "kagit-canta"},
		{"Triko Hırka (Ekru) - 2024", "triko-hirka-ekru-2024"},
		{"  --Yazlık  Elbise--  ", "yazlik-elbise"},
		{"%100 Pamuk", "100-pamuk"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Make(tt.input))
		})
	}
}

func TestMake_Empty(t *testing.T) {
	assert.Equal(t, "", Make(""))
	assert.Equal(t, "", Make("!!! ---"))
}
