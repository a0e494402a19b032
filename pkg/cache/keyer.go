package cache

// Keyer builds cache keys from content hashes.
type Keyer interface {
	// ArtifactKey identifies one generated output of a project.
	ArtifactKey(projectHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts is everything besides the project that changes an
// artifact's bytes.
type ArtifactKeyOpts struct {
	Format         string  `json:"format"`
	ViewportWidth  float64 `json:"viewport_width,omitempty"`
	ViewportHeight float64 `json:"viewport_height,omitempty"`
}

// DefaultKeyer produces "artifact:<sha256>" keys.
type DefaultKeyer struct{}

func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) ArtifactKey(projectHash string, opts ArtifactKeyOpts) string {
	return key("artifact", projectHash, opts)
}

// NewScopedKeyer prefixes every key of inner, so several deployments or API
// versions can share one backend. A nil inner uses DefaultKeyer. [Kind]
// still reports the unprefixed namespace of a scoped key.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return scopedKeyer{inner: inner, prefix: prefix}
}

type scopedKeyer struct {
	inner  Keyer
	prefix string
}

func (k scopedKeyer) ArtifactKey(projectHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(projectHash, opts)
}

var (
	_ Keyer = DefaultKeyer{}
	_ Keyer = scopedKeyer{}
)
