package screenreport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		rel      string
		wantOK   bool
		device   string
		number   string
		language string
	}{
		{
			name:     "device and number",
			rel:      "de-DE/A B 3.png",
			wantOK:   true,
			device:   "A B",
			number:   "3",
			language: "de-DE",
		},
		{
			name:     "hyphens separate tokens",
			rel:      "en-US/iPhone-13-Pro-2.png",
			wantOK:   true,
			device:   "iPhone 13 Pro",
			number:   "2",
			language: "en-US",
		},
		{
			name:     "repeated separators collapse",
			rel:      "fr-FR/iPad  Pro - 10.jpg",
			wantOK:   true,
			device:   "iPad Pro",
			number:   "10",
			language: "fr-FR",
		},
		{
			name:     "non-numeric number is kept verbatim",
			rel:      "de-DE/iPhone intro.png",
			wantOK:   true,
			device:   "iPhone",
			number:   "intro",
			language: "de-DE",
		},
		{
			name:     "no language directory",
			rel:      "iPhone 1.png",
			wantOK:   true,
			device:   "iPhone",
			number:   "1",
			language: "",
		},
		{
			name:   "single token",
			rel:    "de-DE/3.png",
			wantOK: false,
		},
		{
			name:   "only separators",
			rel:    "de-DE/ - .png",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := Decode(tt.rel)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Equal(t, ParsedImage{}, p)
				return
			}
			assert.Equal(t, tt.rel, p.Path)
			assert.Equal(t, tt.device, p.Device)
			assert.Equal(t, tt.number, p.Number)
			assert.Equal(t, tt.language, p.Language)
		})
	}
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "iPhone 1.png", want: "iPhone 1.png", wantOK: true},
		{in: "iPhone-13-Pro-2.png", want: "iPhone 13 Pro 2.png", wantOK: true},
		{in: "iPad  Pro--4.jpg", want: "iPad Pro 4.jpg", wantOK: true},
		{in: "3.png", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Canonical(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImage(t *testing.T) {
	i := Image{Path: "de-DE/iPhone 1.png"}
	assert.Equal(t, "iPhone 1.png", i.Filename())
	assert.Equal(t, "de-DE", i.Caption())

	p, ok := Decode(i.Path)
	assert.True(t, ok)
	assert.Equal(t, p.Language, i.Caption())
}
