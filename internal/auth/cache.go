// Package auth obtains and caches one bearer credential per carrier. Tokens
// live in the shared redis cache so every worker polling a carrier reuses the
// same issuance; concurrent refreshes are harmless redundant work (issuance is
// idempotent, cache overwrite is last-write-wins).
package auth

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// ErrIssuance marks credential issuance failures. Callers abort the poll for
// the shipment with no status mutation.
var ErrIssuance = errors.New("credential issuance failed")

// expiryMargin is subtracted from the provider-reported TTL so a token never
// expires mid-request.
const expiryMargin = 300 * time.Second

type BytesCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Issuer produces a fresh credential for one carrier. ttl == 0 means the
// credential does not expire (static API keys).
type Issuer interface {
	Carrier() string
	Issue(ctx context.Context) (token string, ttl time.Duration, err error)
}

type Cache struct {
	cache   BytesCache
	issuers map[string]Issuer
}

func New(cache BytesCache, issuers ...Issuer) *Cache {
	m := make(map[string]Issuer, len(issuers))
	for _, is := range issuers {
		m[is.Carrier()] = is
	}
	return &Cache{cache: cache, issuers: m}
}

func tokenKey(carrier string) string { return "parcel:token:" + carrier }

// Token returns a cached credential for the carrier, issuing a new one on a
// cache miss or after expiry.
func (c *Cache) Token(ctx context.Context, carrier string) (string, error) {
	is, ok := c.issuers[carrier]
	if !ok {
		return "", errors.Wrapf(ErrIssuance, "no issuer for carrier %s", carrier)
	}

	if b, ok, err := c.cache.Get(ctx, tokenKey(carrier)); err == nil && ok && len(b) > 0 {
		return string(b), nil
	}

	token, ttl, err := is.Issue(ctx)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", errors.Wrapf(ErrIssuance, "carrier %s returned empty token", carrier)
	}

	if ttl > 0 {
		ttl -= expiryMargin
		if ttl <= 0 {
			// Provider TTL shorter than the margin: use it as-is rather than
			// caching a token forever.
			ttl = time.Second
		}
	}
	if err := c.cache.Set(ctx, tokenKey(carrier), []byte(token), ttl); err != nil {
		// Cache write failure is not fatal: the freshly issued token is valid.
		return token, nil
	}
	return token, nil
}
