package codes

import (
	"net/http"

	"lending/core"
	"lending/pkg/wadray"

	"github.com/pkg/errors"
)

const (
	// InvalidArguments invalid arguments
	InvalidArguments = 100001
	// NotFound route or resource not found
	NotFound = 100004
	// Internal unexpected failure
	Internal = int(core.ErrUnknown)
)

// Get http status and error code of err
func Get(err error) (int, int) {
	var code core.ErrorCode
	if errors.As(err, &code) {
		switch code {
		case core.ErrReserveNotFound:
			return http.StatusNotFound, int(code)
		case core.ErrInvalidReserveIndex, core.ErrInvalidConfigurationValue, core.ErrInvalidReserveFactor,
			core.ErrInsufficientLiquidity, core.ErrCollateralUnderflow:
			return http.StatusBadRequest, int(code)
		default:
			return http.StatusInternalServerError, int(code)
		}
	}

	switch errors.Cause(err) {
	case wadray.ErrMultiplicationOverflow, wadray.ErrAdditionOverflow, wadray.ErrSubtractionUnderflow, wadray.ErrDivisionByZero, wadray.ErrNegativeValue:
		return http.StatusBadRequest, InvalidArguments
	}

	return http.StatusInternalServerError, Internal
}
