package captcha

import (
	"bytes"
	crand "crypto/rand"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"math/rand"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Alphabet excludes visually ambiguous characters: no O (confusable with 0)
// and no 0. Digits start at 1.
const Alphabet = "ABCDEFGHIJKLMNPQRSTUVWXYZ123456789"

// CodeLength is the number of characters in a challenge code.
const CodeLength = 4

const (
	imgWidth  = 120
	imgHeight = 50

	glyphScale = 2
	lineCount  = 5
	noiseCount = 50
)

// Challenge is one generated human-verification challenge. ImagePNG is nil
// when the generator runs in text mode (or rendering failed), in which case
// the plaintext code itself is the presentation.
type Challenge struct {
	Code     string
	ImagePNG []byte
}

// DataURL returns the rendered image as a data URL, or "" when there is no
// image.
func (c Challenge) DataURL() string {
	if len(c.ImagePNG) == 0 {
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(c.ImagePNG)
}

// Generator produces challenge codes and, when enabled, distorted raster
// images of them. Whether images are rendered is decided once at
// construction, not per call.
type Generator struct {
	renderImages bool
}

// NewGenerator creates a Generator. renderImages selects the image
// presentation mode; when false every challenge is plaintext-only.
func NewGenerator(renderImages bool) *Generator {
	return &Generator{renderImages: renderImages}
}

// Generate produces a fresh challenge. Storing the code against a session is
// the caller's responsibility.
func (g *Generator) Generate() Challenge {
	code := NewCode()
	ch := Challenge{Code: code}
	if g.renderImages {
		if img, err := render(code); err == nil {
			ch.ImagePNG = img
		}
	}
	return ch
}

// NewCode returns CodeLength characters drawn independently and uniformly
// from Alphabet, using a cryptographic random source.
func NewCode() string {
	// Rejection-sample to keep the per-position distribution uniform.
	limit := byte(256 - 256%len(Alphabet))
	out := make([]byte, 0, CodeLength)
	buf := make([]byte, 1)
	for len(out) < CodeLength {
		if _, err := crand.Read(buf); err != nil {
			// crypto/rand never fails on supported platforms
			panic(err)
		}
		if buf[0] < limit {
			out = append(out, Alphabet[int(buf[0])%len(Alphabet)])
		}
	}
	return string(out)
}

// render draws the code onto a white canvas with per-character color and
// positional jitter, then overlays distractor lines and pixel noise.
func render(code string) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, imgWidth, imgHeight))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	for i, ch := range code {
		glyph := renderGlyph(ch, color.RGBA{
			R: uint8(rand.Intn(101)),
			G: uint8(rand.Intn(101)),
			B: uint8(rand.Intn(101)),
			A: 255,
		})
		x := 20 + i*20 + rand.Intn(11) - 5
		y := 10 + rand.Intn(11) - 5
		w := glyph.Bounds().Dx() * glyphScale
		h := glyph.Bounds().Dy() * glyphScale
		dst := image.Rect(x, y, x+w, y+h)
		xdraw.NearestNeighbor.Scale(img, dst, glyph, glyph.Bounds(), xdraw.Over, nil)
	}

	for i := 0; i < lineCount; i++ {
		c := color.RGBA{
			R: uint8(100 + rand.Intn(101)),
			G: uint8(100 + rand.Intn(101)),
			B: uint8(100 + rand.Intn(101)),
			A: 255,
		}
		drawLine(img, rand.Intn(imgWidth), rand.Intn(imgHeight), rand.Intn(imgWidth), rand.Intn(imgHeight), c)
	}

	for i := 0; i < noiseCount; i++ {
		img.Set(rand.Intn(imgWidth), rand.Intn(imgHeight), color.RGBA{
			R: uint8(rand.Intn(256)),
			G: uint8(rand.Intn(256)),
			B: uint8(rand.Intn(256)),
			A: 255,
		})
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderGlyph draws one character into a transparent glyph-sized image.
func renderGlyph(ch rune, c color.Color) *image.RGBA {
	face := basicfont.Face7x13
	glyph := image.NewRGBA(image.Rect(0, 0, face.Advance, face.Height))
	d := font.Drawer{
		Dst:  glyph,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(string(ch))
	return glyph
}

// drawLine rasterizes a straight line segment by stepping whichever axis
// spans more pixels.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.Color) {
	dx, dy := x1-x0, y1-y0
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		img.Set(x0, y0, c)
		return
	}
	for i := 0; i <= steps; i++ {
		x := x0 + dx*i/steps
		y := y0 + dy*i/steps
		img.Set(x, y, c)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
