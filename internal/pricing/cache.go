package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/MrJamesThe3rd/folio/internal/calendar"
	"github.com/MrJamesThe3rd/folio/internal/holding"
)

// DefaultProvisionalTTL bounds how long a carry-forward answer or a miss is
// reused. Another process may store a closer close at any time.
const DefaultProvisionalTTL = 30 * time.Second

// CachedService memoizes lookups. A close dated on the requested day never
// changes, so it is kept for the full TTL. Carry-forward answers and misses
// are provisional and expire after the provisional TTL. Recording new closes
// through this service flushes everything.
type CachedService struct {
	*Service
	cache       *cache.Cache
	provisional time.Duration
}

type miss struct{}

func NewCachedService(svc *Service, ttl, provisional time.Duration) *CachedService {
	if provisional <= 0 || provisional > ttl {
		provisional = min(ttl, DefaultProvisionalTTL)
	}

	return &CachedService{
		Service:     svc,
		cache:       cache.New(ttl, 2*ttl),
		provisional: provisional,
	}
}

func (c *CachedService) PriceOnOrBefore(ctx context.Context, instrument string, date time.Time) (*Close, error) {
	date = calendar.Day(date)
	key := fmt.Sprintf("close-%s-%s", holding.NormalizeSymbol(instrument), calendar.Format(date))

	if v, found := c.cache.Get(key); found {
		if cl, ok := v.(*Close); ok {
			cp := *cl
			return &cp, nil
		}

		return nil, ErrNotFound
	}

	cl, err := c.Service.PriceOnOrBefore(ctx, instrument, date)
	switch {
	case err == nil:
		cp := *cl

		ttl := cache.DefaultExpiration
		if calendar.Day(cl.Date).Before(date) {
			ttl = c.provisional
		}

		c.cache.Set(key, &cp, ttl)
	case errors.Is(err, ErrNotFound):
		c.cache.Set(key, miss{}, c.provisional)
	}

	return cl, err
}

func (c *CachedService) Record(ctx context.Context, closes []Close) (int, error) {
	n, err := c.Service.Record(ctx, closes)
	if err != nil {
		return 0, err
	}

	if n > 0 {
		c.cache.Flush()
	}

	return n, nil
}
