package cache

// ScopedKeyer wraps a Keyer with a prefix, giving each board its own key
// namespace so that clearing one board's renders leaves the others alone.
//
//	boardKeyer := NewScopedKeyer(NewDefaultKeyer(), "board:ops:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}

// TraceKey generates a prefixed trace key.
func (k *ScopedKeyer) TraceKey(layoutHash, scriptHash, format string) string {
	return k.prefix + k.inner.TraceKey(layoutHash, scriptHash, format)
}
