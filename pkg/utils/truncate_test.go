package utils

import (
	"strings"
	"testing"
)

func TestTruncateHalfWidth(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		maxHW int
		want  string
	}{
		{
			name:  "ascii under the limit",
			text:  "short label",
			maxHW: 20,
			want:  "short label",
		},
		{
			name:  "ascii exactly at the limit",
			text:  "12345",
			maxHW: 5,
			want:  "12345",
		},
		{
			name:  "ascii over the limit",
			text:  "123456",
			maxHW: 5,
			want:  "12345...",
		},
		{
			name:  "fullwidth runes count double",
			text:  "事業所名", // 8 half-width equivalents
			maxHW: 8,
			want:  "事業所名",
		},
		{
			name:  "fullwidth over the limit",
			text:  "事業所名称",
			maxHW: 8,
			want:  "事業所名...",
		},
		{
			name:  "mixed width",
			text:  "様式A1号", // 2+2+1+1+2 = 8
			maxHW: 7,
			want:  "様式A1...",
		},
		{
			name:  "empty string",
			text:  "",
			maxHW: 10,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateHalfWidth(tt.text, tt.maxHW)
			if got != tt.want {
				t.Errorf("TruncateHalfWidth(%q, %d) = %q, want %q", tt.text, tt.maxHW, got, tt.want)
			}
			if !strings.HasSuffix(got, "...") && got != tt.text {
				t.Errorf("truncated output %q must carry the ellipsis suffix", got)
			}
		})
	}
}
