package token

import (
	"lending/core"
	"lending/pkg/wadray"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// ledger scaled balances, the amount divided by the index at the time of
// the movement
type ledger struct {
	balances map[string]*uint256.Int
	total    *uint256.Int
}

func newLedger() ledger {
	return ledger{
		balances: make(map[string]*uint256.Int),
		total:    wadray.Zero(),
	}
}

func (l *ledger) balanceOf(user string) *uint256.Int {
	if b, ok := l.balances[user]; ok {
		return new(uint256.Int).Set(b)
	}

	return wadray.Zero()
}

func (l *ledger) totalSupply() *uint256.Int {
	return new(uint256.Int).Set(l.total)
}

func (l *ledger) mint(user string, scaled *uint256.Int) error {
	balance, err := wadray.Add(l.balanceOf(user), scaled)
	if err != nil {
		return err
	}

	total, err := wadray.Add(l.total, scaled)
	if err != nil {
		return err
	}

	l.balances[user] = balance
	l.total = total
	return nil
}

func (l *ledger) burn(user string, scaled *uint256.Int) error {
	current := l.balanceOf(user)
	if current.Lt(scaled) {
		return errors.Wrapf(core.ErrInsufficientBalance, "user %s has %s, burn %s", user, current, scaled)
	}

	current.Sub(current, scaled)
	if current.IsZero() {
		delete(l.balances, user)
	} else {
		l.balances[user] = current
	}

	l.total = new(uint256.Int).Sub(l.total, scaled)
	return nil
}
