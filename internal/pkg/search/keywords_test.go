package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeywords(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{
			name: "single keyword",
			raw:  "golang",
			want: []string{"golang"},
		},
		{
			name: "multiple keywords",
			raw:  "golang kafka messaging",
			want: []string{"golang", "kafka", "messaging"},
		},
		{
			name: "collapses consecutive spaces",
			raw:  "golang    kafka",
			want: []string{"golang", "kafka"},
		},
		{
			name: "trims surrounding whitespace",
			raw:  "  golang  ",
			want: []string{"golang"},
		},
		{
			name:    "empty input",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "only whitespace",
			raw:     "   ",
			wantErr: true,
		},
		{
			name:    "too many keywords",
			raw:     "a b c d e f",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKeywords(tt.raw, DefaultMaxKeywordCount, DefaultMaxKeywordLength)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKeywords_TooLong(t *testing.T) {
	long := strings.Repeat("x", DefaultMaxKeywordLength+1)
	_, err := ParseKeywords(long, DefaultMaxKeywordCount, DefaultMaxKeywordLength)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keyword too long")
}

func TestEscapeILIKE(t *testing.T) {
	tests := []struct {
		name    string
		keyword string
		want    string
	}{
		{
			name:    "plain keyword",
			keyword: "golang",
			want:    "%golang%",
		},
		{
			name:    "percent escaped",
			keyword: "50%",
			want:    `%50\%%`,
		},
		{
			name:    "underscore escaped",
			keyword: "snake_case",
			want:    `%snake\_case%`,
		},
		{
			name:    "backslash escaped",
			keyword: `a\b`,
			want:    `%a\\b%`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeILIKE(tt.keyword))
		})
	}
}
