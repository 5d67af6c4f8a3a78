// Package economy implements the balance ledger: reads, updates,
// gambling and player-to-player transfers, all persisted through the
// state store.
package economy

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	mrand "math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/Yizzii/fishbot/internal/store"
)

// Rejections are signaled as sentinel errors; each one leaves every
// balance exactly as it was.
var (
	ErrNoFunds           = errors.New("no funds to gamble")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidPercent    = errors.New("invalid percentage")
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSelfTransfer      = errors.New("cannot give money to yourself")
	ErrRecipientNotFound = errors.New("recipient not found")
)

type Ledger struct {
	store *store.Store
	rng   *mrand.Rand
}

func NewLedger(st *store.Store, rng *mrand.Rand) *Ledger {
	if rng == nil {
		var b [8]byte
		if _, err := rand.Read(b[:]); err != nil {
			rng = mrand.New(mrand.NewSource(time.Now().UnixNano()))
		} else {
			rng = mrand.New(mrand.NewSource(int64(binary.LittleEndian.Uint64(b[:]))))
		}
	}
	return &Ledger{store: st, rng: rng}
}

// Balance returns 0 for a never-seen username without creating a
// record. This asymmetry with UpdateBalance (which does create) is
// inherited behavior and deliberate.
func (l *Ledger) Balance(username string) (float64, error) {
	players, err := l.store.LoadPlayers()
	if err != nil {
		return 0, err
	}
	if rec, ok := players.Get(username); ok {
		return rec.Balance, nil
	}
	return 0, nil
}

// UpdateBalance applies delta (may be negative) and returns the new
// balance, creating a defaulted record on first write. No floor is
// enforced here; callers validate sufficiency first.
func (l *Ledger) UpdateBalance(username string, delta float64) (float64, error) {
	players, err := l.store.LoadPlayers()
	if err != nil {
		return 0, err
	}
	rec := players.Ensure(username)
	rec.Balance += delta
	if err := l.store.SavePlayers(players); err != nil {
		return 0, err
	}
	return rec.Balance, nil
}

type GambleResult struct {
	Amount     float64
	Won        bool
	NewBalance float64
}

// ParseAmount resolves an amount spec — a positive number, the token
// "all", or a percentage "N%" with N in [1,100] — against the given
// balance.
func ParseAmount(spec string, balance float64) (float64, error) {
	if strings.HasSuffix(spec, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(spec, "%"), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidPercent, spec)
		}
		// NaN compares false against both bounds, so check it
		// explicitly.
		if math.IsNaN(pct) || pct < 1 || pct > 100 {
			return 0, fmt.Errorf("%w: %v", ErrInvalidPercent, pct)
		}
		return (pct / 100) * balance, nil
	}
	if strings.EqualFold(spec, "all") {
		return balance, nil
	}
	amount, err := strconv.ParseFloat(spec, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, spec)
	}
	// ParseFloat accepts "NaN" and "Inf" spellings; NaN would also
	// slip past the positivity and sufficiency checks downstream.
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, spec)
	}
	return amount, nil
}

// Gamble risks the resolved amount on a fair coin flip. Rejection
// order: zero balance, amount parse, positivity, sufficiency. Any
// rejection leaves the balance untouched.
func (l *Ledger) Gamble(username, amountSpec string) (GambleResult, error) {
	balance, err := l.Balance(username)
	if err != nil {
		return GambleResult{}, err
	}
	if balance <= 0 {
		return GambleResult{}, ErrNoFunds
	}

	amount, err := ParseAmount(amountSpec, balance)
	if err != nil {
		return GambleResult{}, err
	}
	if amount <= 0 {
		return GambleResult{}, ErrNonPositiveAmount
	}
	if amount > balance {
		return GambleResult{}, ErrInsufficientFunds
	}

	won := l.rng.Float64() < 0.5
	delta := amount
	if !won {
		delta = -amount
	}
	newBalance, err := l.UpdateBalance(username, delta)
	if err != nil {
		return GambleResult{}, err
	}
	return GambleResult{Amount: amount, Won: won, NewBalance: newBalance}, nil
}

type Transfer struct {
	Amount        float64
	SenderBalance float64
}

// GiveMoney moves amount from username to an existing recipient.
// The debit and credit are two sequential persisted writes, not one
// atomic update: a crash between them loses the credit. Known gap,
// kept to match the original ledger's behavior.
func (l *Ledger) GiveMoney(username, recipient string, amount float64) (Transfer, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return Transfer{}, ErrNonPositiveAmount
	}
	if store.Key(username) == store.Key(recipient) {
		return Transfer{}, ErrSelfTransfer
	}

	players, err := l.store.LoadPlayers()
	if err != nil {
		return Transfer{}, err
	}
	if _, ok := players.Get(recipient); !ok {
		return Transfer{}, fmt.Errorf("%w: %q", ErrRecipientNotFound, recipient)
	}

	balance, err := l.Balance(username)
	if err != nil {
		return Transfer{}, err
	}
	if balance < amount {
		return Transfer{}, ErrInsufficientFunds
	}

	senderBalance, err := l.UpdateBalance(username, -amount)
	if err != nil {
		return Transfer{}, err
	}
	if _, err := l.UpdateBalance(recipient, amount); err != nil {
		return Transfer{}, err
	}
	return Transfer{Amount: amount, SenderBalance: senderBalance}, nil
}
