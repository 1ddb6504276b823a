package cache

// ScopedKeyer prefixes the keys of another Keyer, so several deployments
// can share one Redis or MongoDB backend. The CLI builds one from the
// [cache] namespace config setting.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer returns a keyer that prepends prefix to inner's keys. A nil
// inner means the DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) LayoutKey(opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(opts)
}

func (k *ScopedKeyer) ArtifactKey(payloadHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(payloadHash, opts)
}
