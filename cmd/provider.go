package cmd

import (
	"time"

	"lending/core"
	"lending/pkg/wadray"
	"lending/service/account"
	"lending/service/event"
	"lending/service/oracle"
	"lending/service/reserve"
	reservestore "lending/store/reserve"
	"lending/store/userconfig"

	"github.com/facebookgo/clock"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func provideClock() clock.Clock {
	return clock.New()
}

func provideLocation() *time.Location {
	l, err := time.LoadLocation(mustConfig().App.Location)
	if err != nil {
		logrus.WithError(err).Warnln("invalid location, use UTC")
		return time.UTC
	}

	return l
}

// ---------------store-----------------------------------------

func provideReserveStore() core.IReserveStore {
	return reservestore.New()
}

func provideUserConfigurationStore() core.IUserConfigurationStore {
	return userconfig.New()
}

// ------------------service------------------------------------

func provideEventSink() core.IEventSink {
	return event.New()
}

func provideReserveService(reserves core.IReserveStore, clk clock.Clock) core.IReserveService {
	return reserve.New(reserves, clk, provideEventSink(), mustConfig().App.Treasury)
}

func providePriceOracle() core.IPriceOracle {
	c := mustConfig()
	ttl := time.Duration(c.PriceOracle.CacheTTL) * time.Second

	if c.PriceOracle.EndPoint != "" {
		return oracle.Cache(oracle.NewHTTPPriceOracle(c.PriceOracle.EndPoint), ttl)
	}

	prices := oracle.NewStaticPriceOracle()
	for _, r := range c.Reserves {
		if r.Price == "" {
			continue
		}

		price, err := parseDecimal(r.Price, wadray.WadDecimals)
		if err != nil {
			logrus.WithError(err).Fatalln("invalid price of", r.Asset)
		}

		prices.SetAssetPrice(r.Asset, price)
	}

	return prices
}

func provideLendingRateOracle() *oracle.LendingRateOracle {
	rates := oracle.NewLendingRateOracle()
	for _, r := range mustConfig().Reserves {
		rate, err := parseDecimal(r.MarketBorrowRate, wadray.RayDecimals)
		if err != nil {
			logrus.WithError(err).Fatalln("invalid market borrow rate of", r.Asset)
		}

		rates.SetMarketBorrowRate(r.Asset, rate)
	}

	return rates
}

func provideAccountService(reserves core.IReserveStore, prices core.IPriceOracle) core.IAccountService {
	return account.New(reserves, prices)
}

// parseDecimal human readable decimal to a fixed point integer, empty is zero
func parseDecimal(s string, decimals int32) (*uint256.Int, error) {
	if s == "" {
		return wadray.Zero(), nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}

	return wadray.FromDecimal(d, decimals)
}
