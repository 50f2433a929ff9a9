package cli

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		name  string
		pairs []string
		want  url.Values
	}{
		{"empty", nil, url.Values{}},
		{"single pair", []string{"page=2"}, url.Values{"page": {"2"}}},
		{"repeated key", []string{"status=a", "status=b"}, url.Values{"status": {"a", "b"}}},
		{"value with equals", []string{"filter=name=demo"}, url.Values{"filter": {"name=demo"}}},
		{"empty value", []string{"flag="}, url.Values{"flag": {""}}},
		{"malformed entries skipped", []string{"no-separator", "=no-key", "ok=1"}, url.Values{"ok": {"1"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parseParams(tc.pairs))
		})
	}
}
