package compound

import (
	"lending/core"
	"lending/pkg/wadray"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

func elapsed(lastUpdate, now uint64) (uint64, error) {
	if now < lastUpdate {
		return 0, errors.Wrapf(core.ErrTimestampInPast, "now %d, last update %d", now, lastUpdate)
	}

	return now - lastUpdate, nil
}

// CalculateLinearInterest interest factor accumulated with a linear model,
// RAY + rate * (now - lastUpdate) / SECONDS_PER_YEAR. The time fraction is
// floored.
func CalculateLinearInterest(rate *uint256.Int, lastUpdate, now uint64) (*uint256.Int, error) {
	dt, err := elapsed(lastUpdate, now)
	if err != nil {
		return nil, err
	}

	interest, err := wadray.Mul(rate, uint256.NewInt(dt))
	if err != nil {
		return nil, err
	}

	interest.Div(interest, wadray.SecondsPerYear)
	return wadray.Add(interest, wadray.RAY)
}

// CalculateCompoundedInterest approximates (1 + rate/SECONDS_PER_YEAR)^n with
// the binomial expansion truncated after the second order term:
//
//	RAY + rps*n + rps^2 * n*(n-1)/2
//
// where rps is the per second rate (floored) and n the elapsed seconds. The
// truncation slightly undercounts interest; for bounded per second rates the
// difference is negligible.
func CalculateCompoundedInterest(rate *uint256.Int, lastUpdate, now uint64) (*uint256.Int, error) {
	n, err := elapsed(lastUpdate, now)
	if err != nil {
		return nil, err
	}

	if n == 0 {
		return wadray.Ray(), nil
	}

	ratePerSecond := new(uint256.Int).Div(rate, wadray.SecondsPerYear)

	firstTerm, err := wadray.Mul(ratePerSecond, uint256.NewInt(n))
	if err != nil {
		return nil, err
	}

	basePowerTwo, err := wadray.RayMul(ratePerSecond, ratePerSecond)
	if err != nil {
		return nil, err
	}

	// n*(n-1) fits in 128 bits for any 64 bit n
	pairs := new(uint256.Int).Mul(uint256.NewInt(n), uint256.NewInt(n-1))
	secondTerm, err := wadray.Mul(pairs, basePowerTwo)
	if err != nil {
		return nil, err
	}
	secondTerm.Rsh(secondTerm, 1)

	result, err := wadray.Add(wadray.RAY, firstTerm)
	if err != nil {
		return nil, err
	}

	return wadray.Add(result, secondTerm)
}
