// Package cache stores solved plans keyed by a hash of their inputs.
//
// A solve is a pure function of its people, teams, locks, analysis date and
// cost weights, so a plan computed once can be served again for identical
// input. The [Cache] interface has four backends:
//
//   - [NullCache]: stores nothing, for --no-cache and tests
//   - [MemoryCache]: concurrent in-process map, for the HTTP server
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for several server instances
//
// Keys come from a [Keyer]. [DefaultKeyer] hashes the canonical JSON of the
// input together with the solve options; [ScopedKeyer] adds a namespace
// prefix, for example per workspace.
//
// # Usage
//
//	c, err := cache.Open(ctx, cfg.Cache)
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	key := cache.NewDefaultKeyer().PlanKey(cache.InputHash(in), cache.PlanKeyOpts{
//	    Weights: cfg.Weights,
//	})
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    // decode plan
//	}
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/matzehuels/dutyflow/pkg/cost"
)

// TTLPlan is how long a solved plan stays cached by default.
const TTLPlan = 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// reported as ok == false with a nil error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// PlanKey returns the key of the plan solved from the input with the
	// given hash under opts.
	PlanKey(inputHash string, opts PlanKeyOpts) string
}

// PlanKeyOpts are the solve options that change a plan.
type PlanKeyOpts struct {
	Weights       cost.Weights `json:"weights"`
	MaxIterations int          `json:"max_iterations,omitempty"`
}

// DefaultKeyer builds keys of the form "plan:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PlanKey hashes the input hash and opts.
func (DefaultKeyer) PlanKey(inputHash string, opts PlanKeyOpts) string {
	data, _ := json.Marshal(struct {
		Input string      `json:"input"`
		Opts  PlanKeyOpts `json:"opts"`
	}{inputHash, opts})
	return "plan:" + Hash(data)
}

// InputHash returns the hash of v's JSON encoding. Struct fields encode in
// declaration order and map keys sorted, so equal inputs hash equally.
func InputHash(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return Hash(data)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
