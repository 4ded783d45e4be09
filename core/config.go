package core

// Config lending core config
type Config struct {
	App         App             `json:"app"`
	Server      Server          `json:"server"`
	PriceOracle PriceOracle     `json:"price_oracle"`
	Keeper      Keeper          `json:"keeper"`
	Reserves    []ReserveConfig `json:"reserves"`
}

// App app config
type App struct {
	Location string `json:"location"`
	// Treasury receives the reserve factor share of accrued interest
	Treasury string `json:"treasury" valid:"required"`
}

// Server api server config
type Server struct {
	Port int `json:"port"`
}

// PriceOracle price oracle config. Without an endpoint the configured
// reserve prices are used.
type PriceOracle struct {
	EndPoint string `json:"end_point" valid:"url,optional"`
	// CacheTTL seconds
	CacheTTL int64 `json:"cache_ttl"`
}

// Keeper periodic accrual config
type Keeper struct {
	// Spec cron spec, "@every 15s"
	Spec string `json:"spec"`
}

// ReserveConfig listing parameters of a reserve.
// Ratios and rates are human readable decimals: "0.8" is 80%.
type ReserveConfig struct {
	Asset                   string `json:"asset" valid:"required"`
	Symbol                  string `json:"symbol" valid:"required"`
	Decimals                uint64 `json:"decimals"`
	LTV                     uint64 `json:"ltv"`
	LiquidationThreshold    uint64 `json:"liquidation_threshold"`
	LiquidationBonus        uint64 `json:"liquidation_bonus"`
	ReserveFactor           uint64 `json:"reserve_factor"`
	BorrowingEnabled        bool   `json:"borrowing_enabled"`
	StableBorrowRateEnabled bool   `json:"stable_borrow_rate_enabled"`

	OptimalUtilization     string `json:"optimal_utilization" valid:"required"`
	BaseVariableBorrowRate string `json:"base_variable_borrow_rate"`
	VariableRateSlope1     string `json:"variable_rate_slope1"`
	VariableRateSlope2     string `json:"variable_rate_slope2"`
	StableRateSlope1       string `json:"stable_rate_slope1"`
	StableRateSlope2       string `json:"stable_rate_slope2"`
	MarketBorrowRate       string `json:"market_borrow_rate"`

	// Price in the common unit
	Price string `json:"price"`
	// InitialLiquidity underlying seeded into the pool
	InitialLiquidity string `json:"initial_liquidity"`
}

// Configuration risk parameters of the reserve
func (r ReserveConfig) Configuration() ReserveConfiguration {
	return ReserveConfiguration{
		LTV:                     r.LTV,
		LiquidationThreshold:    r.LiquidationThreshold,
		LiquidationBonus:        r.LiquidationBonus,
		Decimals:                r.Decimals,
		Active:                  true,
		BorrowingEnabled:        r.BorrowingEnabled,
		StableBorrowRateEnabled: r.StableBorrowRateEnabled,
		ReserveFactor:           r.ReserveFactor,
	}
}
