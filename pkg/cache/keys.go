package cache

// Keyer generates cache keys.
type Keyer interface {
	// LayoutKey identifies a computed layout.
	LayoutKey(opts LayoutKeyOpts) string
	// ArtifactKey identifies a rendered output for a payload.
	ArtifactKey(payloadHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds every input of a layout computation.
type LayoutKeyOpts struct {
	Depth       int     `json:"depth"`
	Radius      float64 `json:"radius"`
	LevelHeight float64 `json:"level_height"`
	Spacing     string  `json:"spacing"`
	RootX       float64 `json:"root_x"`
	RootY       float64 `json:"root_y"`
}

// ArtifactKeyOpts holds the render inputs beyond the payload.
type ArtifactKeyOpts struct {
	Layout LayoutKeyOpts `json:"layout"`
	Format string        `json:"format"`
	Style  string        `json:"style"` // hash of the style settings
	Margin float64       `json:"margin"`
	Scale  float64       `json:"scale,omitempty"`
}

// DefaultKeyer hashes the options into "layout:<sha256>" and
// "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(opts LayoutKeyOpts) string {
	return hashKey("layout", opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(payloadHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", payloadHash, opts)
}
