// Package fonts provides the font used to measure and draw labels.
//
// The Go font family from golang.org/x/image is compiled into the binary, so
// text measurement in pkg/textmeasure, the PNG and PDF sinks, and SVG output
// with an embedded @font-face all agree on glyph widths without depending on
// fonts installed on the host.
package fonts

import (
	"encoding/base64"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family name for the embedded font.
const FontFamily = "Go"

// FallbackFontFamily lists fallbacks for viewers that ignore @font-face.
const FallbackFontFamily = `'Go', Helvetica, Arial, sans-serif`

// RegularTTF returns the regular weight as TrueType data.
func RegularTTF() []byte { return goregular.TTF }

// BoldTTF returns the bold weight as TrueType data.
func BoldTTF() []byte { return gobold.TTF }

// Cache for the base64-encoded regular weight (computed once on first access).
var (
	regularBase64     string
	regularBase64Once sync.Once
)

// RegularTTFBase64 returns the regular weight as a base64 string, suitable for
// an SVG @font-face data URI. The result is cached after first computation.
func RegularTTFBase64() string {
	regularBase64Once.Do(func() {
		regularBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return regularBase64
}
