package oracle

import (
	"context"
	"fmt"
	"strings"

	"lending/core"
	"lending/pkg/id"
	"lending/pkg/resthttp"
	"lending/pkg/wadray"

	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// PriceTicker price quote returned by the price service
type PriceTicker struct {
	Asset    string          `json:"asset_id"`
	Provider string          `json:"provider"`
	Price    decimal.Decimal `json:"price"`
}

type httpPriceOracle struct {
	endpoint string
}

// NewHTTPPriceOracle price oracle backed by a ticker service at endpoint
func NewHTTPPriceOracle(endpoint string) core.IPriceOracle {
	return &httpPriceOracle{
		endpoint: strings.TrimSuffix(endpoint, "/"),
	}
}

func (o *httpPriceOracle) GetAssetPrice(ctx context.Context, asset string) (*uint256.Int, error) {
	url := fmt.Sprintf("%s/api/v2/tickers/%s", o.endpoint, asset)

	traceID := id.GenTraceID()
	log := logger.FromContext(ctx).WithField("trace", traceID)

	var ticker PriceTicker
	if _, err := resthttp.Execute(resthttp.WithRequestID(ctx, traceID), "GET", url, nil, &ticker); err != nil {
		log.WithError(err).Errorln("pull price ticker", url)
		return nil, err
	}

	if !ticker.Price.IsPositive() {
		return nil, errors.Wrapf(core.ErrInvalidPrice, "%s price %s", asset, ticker.Price)
	}

	return wadray.FromDecimal(ticker.Price, wadray.WadDecimals)
}
