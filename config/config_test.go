package config

import (
	"os"
	"path/filepath"
	"testing"

	"lending/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
app:
  treasury: treasury-account
price_oracle:
  end_point: https://oracle.example.com
reserves:
  - asset: eth
    symbol: ETH
    ltv: 8000
    liquidation_threshold: 8250
    liquidation_bonus: 10500
    reserve_factor: 1000
    borrowing_enabled: true
    variable_rate_slope1: "0.04"
    variable_rate_slope2: "0.75"
    price: "2000"
  - asset: usdc
    symbol: USDC
    decimals: 6
    optimal_utilization: "0.9"
`

func TestLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "lending.yaml")
	require.Nil(t, os.WriteFile(file, []byte(sample), 0o600))

	var cfg core.Config
	require.Nil(t, Load(file, &cfg))

	assert.Equal(t, "treasury-account", cfg.App.Treasury)
	assert.Equal(t, defaultPort, cfg.Server.Port)
	assert.Equal(t, defaultKeeperSpec, cfg.Keeper.Spec)
	assert.Equal(t, int64(defaultCacheTTL), cfg.PriceOracle.CacheTTL)
	require.Len(t, cfg.Reserves, 2)

	eth := cfg.Reserves[0]
	assert.Equal(t, uint64(18), eth.Decimals)
	assert.Equal(t, defaultOptimalUsage, eth.OptimalUtilization)
	assert.Equal(t, "0.75", eth.VariableRateSlope2)

	c := eth.Configuration()
	assert.True(t, c.Active)
	assert.True(t, c.BorrowingEnabled)
	assert.Equal(t, uint64(1000), c.ReserveFactor)

	usdc := cfg.Reserves[1]
	assert.Equal(t, uint64(6), usdc.Decimals)
	assert.Equal(t, "0.9", usdc.OptimalUtilization)
}

func TestLoadRequiresTreasury(t *testing.T) {
	file := filepath.Join(t.TempDir(), "lending.yaml")
	require.Nil(t, os.WriteFile(file, []byte("server:\n  port: 80\n"), 0o600))

	var cfg core.Config
	assert.NotNil(t, Load(file, &cfg))
}
