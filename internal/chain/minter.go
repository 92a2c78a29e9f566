// Package chain settles reward claims against the token ledger.
package chain

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/sha3"
)

const DefaultExplorerTxURL = "https://testnet.bscscan.com/tx/"

var (
	ErrInvalidWallet = errors.New("invalid wallet address")
	ErrInvalidAmount = errors.New("amount must be positive")

	walletPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
)

type Receipt struct {
	TransactionHash string          `json:"transactionHash"`
	ExplorerURL     string          `json:"explorerUrl"`
	WalletAddress   string          `json:"walletAddress"`
	Amount          decimal.Decimal `json:"amount"`
	Simulated       bool            `json:"simulated"`
}

// Minter transfers reward tokens to a wallet.
type Minter interface {
	Mint(ctx context.Context, wallet string, amount decimal.Decimal) (*Receipt, error)
}

// ValidWallet reports whether addr is a 0x-prefixed 20-byte hex address.
func ValidWallet(addr string) bool {
	return walletPattern.MatchString(addr)
}

// Simulated never talks to a network. It derives a transaction hash from
// the claim so receipts look like the real thing.
type Simulated struct {
	ExplorerURL string
}

func NewSimulated(explorerURL string) *Simulated {
	if explorerURL == "" {
		explorerURL = DefaultExplorerTxURL
	}
	return &Simulated{ExplorerURL: explorerURL}
}

func (s *Simulated) Mint(ctx context.Context, wallet string, amount decimal.Decimal) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ValidWallet(wallet) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWallet, wallet)
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(strings.ToLower(wallet)))
	h.Write([]byte(amount.String()))
	h.Write([]byte(uuid.NewString()))
	hash := "0x" + hex.EncodeToString(h.Sum(nil))

	return &Receipt{
		TransactionHash: hash,
		ExplorerURL:     s.ExplorerURL + hash,
		WalletAddress:   wallet,
		Amount:          amount,
		Simulated:       true,
	}, nil
}

var _ Minter = (*Simulated)(nil)
