package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigest(t *testing.T) {
	// sha256("")
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Digest(nil))
	assert.Len(t, ShortDigest([]byte("<OfficeApp/>")), 12)
	assert.True(t, SameContent([]byte("a"), []byte("a")))
	assert.False(t, SameContent([]byte("a"), []byte("b")))
}

func TestValidateManifestURL(t *testing.T) {
	tests := []struct {
		url   string
		valid bool
	}{
		{"https://ex.optivise.app/manifest.xml", true},
		{"http://127.0.0.1:9000/manifest.xml", true},
		{"", false},
		{"   ", false},
		{"ex.optivise.app/manifest.xml", false},
		{"ftp://ex.optivise.app/manifest.xml", false},
		{"https:///manifest.xml", false},
		{"://bad", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := ValidateManifestURL(tt.url)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
