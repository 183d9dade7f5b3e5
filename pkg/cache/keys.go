package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey identifies a computed layout for an input hash.
	LayoutKey(inputHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies a rendered artifact for an input hash.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds the options that change a layout.
type LayoutKeyOpts struct {
	VizType     string  `json:"viz_type"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Padding     float64 `json:"padding"`
	MinSweep    float64 `json:"min_sweep"`
	PadAngle    float64 `json:"pad_angle"`
	StartAngle  float64 `json:"start_angle"`
	SortByValue bool    `json:"sort_by_value"`
}

// ArtifactKeyOpts holds the layout options plus everything that changes the
// rendered bytes.
type ArtifactKeyOpts struct {
	Layout    LayoutKeyOpts `json:"layout"`
	Format    string        `json:"format"`
	Style     string        `json:"style"`
	Labels    bool          `json:"labels"`
	FontSize  float64       `json:"font_size"`
	Measure   string        `json:"measure"`
	Title     string        `json:"title"`
	EmbedFont bool          `json:"embed_font"`
	Scale     float64       `json:"scale"`
	Detailed  bool          `json:"detailed"`
}

// DefaultKeyer produces keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout:"+opts.VizType, inputHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, inputHash, opts)
}

var _ Keyer = DefaultKeyer{}

// ScopedKeyer prefixes every key of an inner Keyer, so the server and the CLI
// can share one backend without colliding.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (DefaultKeyer when nil) with prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey implements Keyer.
func (k ScopedKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(inputHash, opts)
}

// ArtifactKey implements Keyer.
func (k ScopedKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(inputHash, opts)
}

var _ Keyer = ScopedKeyer{}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns "kind:" followed by the hash of parts in Go syntax. %#v
// spells every float exactly, NaN and infinities included, so distinct parts
// never share a key.
func hashKey(kind string, parts ...any) string {
	h := sha256.New()
	fmt.Fprintf(h, "%#v", parts)
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}
