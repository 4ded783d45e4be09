package core

import (
	"context"

	"github.com/holiman/uint256"
)

// AccountData aggregated position of a user in the common price unit
type AccountData struct {
	TotalCollateral *uint256.Int `json:"total_collateral"`
	TotalDebt       *uint256.Int `json:"total_debt"`
	// AvgLTV bps, weighted by collateral value
	AvgLTV *uint256.Int `json:"avg_ltv"`
	// AvgLiquidationThreshold bps, weighted by collateral value
	AvgLiquidationThreshold *uint256.Int `json:"avg_liquidation_threshold"`
	// HealthFactor wad; MaxUint256 when there is no debt
	HealthFactor     *uint256.Int `json:"health_factor"`
	AvailableBorrows *uint256.Int `json:"available_borrows"`
}

// IUserConfigurationStore bitmaps maintained by the collateral/borrow flows
type IUserConfigurationStore interface {
	Find(ctx context.Context, user string) (UserConfiguration, error)
	Save(ctx context.Context, user string, config UserConfiguration) error
}

// IAccountService account risk aggregator
type IAccountService interface {
	CalculateUserAccountData(ctx context.Context, user string, config UserConfiguration) (*AccountData, error)
	CalculateAvailableBorrows(totalCollateral, totalDebt, ltv *uint256.Int) (*uint256.Int, error)
	BalanceDecreaseAllowed(ctx context.Context, asset, user string, amount *uint256.Int, config UserConfiguration) (bool, error)
}
