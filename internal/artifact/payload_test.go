package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "note.svg")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestExtractPayload(t *testing.T) {
	tests := []struct {
		name     string
		svg      string
		expected string
	}{
		{
			name:     "qr element text wins",
			svg:      `<svg><text id="qr-code">SN-ABC-1</text><text>SN-OTHER-2</text></svg>`,
			expected: "SN-ABC-1",
		},
		{
			name:     "qr element data attribute",
			svg:      `<svg><rect id="qrBlock" data="SN-DATA-9"/></svg>`,
			expected: "SN-DATA-9",
		},
		{
			name:     "empty qr element falls back to marker",
			svg:      `<svg><rect id="qr"/></svg>`,
			expected: "QR data extracted",
		},
		{
			name:     "serial text node",
			svg:      `<svg><text>decoration</text><text> SN-ABC123-42 </text></svg>`,
			expected: "SN-ABC123-42",
		},
		{
			name:     "no payload",
			svg:      `<svg><rect width="10" height="10"/></svg>`,
			expected: "",
		},
		{
			name:     "unparseable document",
			svg:      `<svg><text`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeArtifact(t, tt.svg)
			assert.Equal(t, tt.expected, ExtractPayload(path))
		})
	}
}

func TestExtractPayload_MissingFile(t *testing.T) {
	assert.Equal(t, "", ExtractPayload(filepath.Join(t.TempDir(), "absent.svg")))
}
