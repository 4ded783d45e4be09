package oracle

import (
	"context"
	"time"

	"lending/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
	"golang.org/x/sync/singleflight"
)

// Cache caches prices of oracle for exp. Concurrent lookups of the same
// asset share one upstream call.
func Cache(oracle core.IPriceOracle, exp time.Duration) core.IPriceOracle {
	return &cachePriceOracle{
		IPriceOracle: oracle,
		cache:        gcache.New(512).LRU().Expiration(exp).Build(),
		sf:           &singleflight.Group{},
	}
}

type cachePriceOracle struct {
	core.IPriceOracle
	cache gcache.Cache
	sf    *singleflight.Group
}

func (o *cachePriceOracle) GetAssetPrice(ctx context.Context, asset string) (*uint256.Int, error) {
	if v, err := o.cache.Get(asset); err == nil {
		if price, ok := v.(*uint256.Int); ok {
			return new(uint256.Int).Set(price), nil
		}
	}

	v, err, _ := o.sf.Do(asset, func() (interface{}, error) {
		price, err := o.IPriceOracle.GetAssetPrice(ctx, asset)
		if err != nil {
			return nil, err
		}

		if err := o.cache.Set(asset, price); err != nil {
			logger.FromContext(ctx).WithError(err).Warnln("cache price", asset)
		}

		return price, nil
	})
	if err != nil {
		return nil, err
	}

	return new(uint256.Int).Set(v.(*uint256.Int)), nil
}
