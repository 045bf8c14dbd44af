package commands

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		width int
		want  string
	}{
		{
			name:  "short title unchanged",
			title: "Fan monthly",
			width: 20,
			want:  "Fan monthly",
		},
		{
			name:  "exact width unchanged",
			title: "1234567890",
			width: 10,
			want:  "1234567890",
		},
		{
			name:  "long title truncated with ellipsis",
			title: "Quarterly inspection of rooftop air handling unit",
			width: 20,
			want:  "Quarterly inspect...",
		},
		{
			name:  "width below the floor clamps instead of panicking",
			title: "Quarterly inspection",
			width: 1,
			want:  "Quarter...",
		},
		{
			name:  "multi-byte runes are not split",
			title: "Prüfung der Lüftungsanlage im Maschinenraum",
			width: 12,
			want:  "Prüfung d...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateTitle(tt.title, tt.width)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
