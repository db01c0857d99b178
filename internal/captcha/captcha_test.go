package captcha

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCodeAlphabet(t *testing.T) {
	for i := 0; i < 200; i++ {
		code := NewCode()
		require.Len(t, code, CodeLength)
		for _, ch := range code {
			assert.Contains(t, Alphabet, string(ch))
		}
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "O")
	}
}

func TestGenerateImageMode(t *testing.T) {
	g := NewGenerator(true)
	ch := g.Generate()

	require.Len(t, ch.Code, CodeLength)
	require.NotEmpty(t, ch.ImagePNG)

	img, err := png.Decode(bytes.NewReader(ch.ImagePNG))
	require.NoError(t, err)
	assert.Equal(t, imgWidth, img.Bounds().Dx())
	assert.Equal(t, imgHeight, img.Bounds().Dy())

	assert.True(t, strings.HasPrefix(ch.DataURL(), "data:image/png;base64,"))
}

func TestGenerateTextMode(t *testing.T) {
	g := NewGenerator(false)
	ch := g.Generate()

	require.Len(t, ch.Code, CodeLength)
	assert.Nil(t, ch.ImagePNG)
	assert.Empty(t, ch.DataURL())
}

func TestGenerateCodesVary(t *testing.T) {
	// 34^4 possible codes; 20 draws colliding into one value would mean a
	// broken random source.
	seen := map[string]bool{}
	g := NewGenerator(false)
	for i := 0; i < 20; i++ {
		seen[g.Generate().Code] = true
	}
	assert.Greater(t, len(seen), 1)
}
