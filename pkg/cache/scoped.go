package cache

// ScopedKeyer prefixes every key of an inner Keyer, giving callers that
// share one backend their own namespace:
//
//	keyer := cache.NewScopedKeyer(nil, "dutyflow:")
//	keyer.PlanKey(hash, opts) // "dutyflow:plan:<sha256>"
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or a DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return ScopedKeyer{inner: inner, prefix: prefix}
}

// PlanKey returns the inner key behind the prefix.
func (k ScopedKeyer) PlanKey(inputHash string, opts PlanKeyOpts) string {
	return k.prefix + k.inner.PlanKey(inputHash, opts)
}
