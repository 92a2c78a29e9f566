package chain

import (
	"context"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wallet = "0x52908400098527886E0F7030069857D2E4169EE7"

func TestValidWallet(t *testing.T) {
	assert.True(t, ValidWallet(wallet))
	assert.True(t, ValidWallet("0xde709f2102306220921060314715629080e2fb77"))
	assert.False(t, ValidWallet("52908400098527886E0F7030069857D2E4169EE7"))
	assert.False(t, ValidWallet("0x52908400098527886E0F7030069857D2E4169EE"))
	assert.False(t, ValidWallet("0xZZ908400098527886E0F7030069857D2E4169EE7"))
	assert.False(t, ValidWallet(""))
}

func TestSimulatedMint(t *testing.T) {
	m := NewSimulated("")
	r, err := m.Mint(context.Background(), wallet, decimal.NewFromInt(43))
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^0x[0-9a-f]{64}$`), r.TransactionHash)
	assert.Equal(t, DefaultExplorerTxURL+r.TransactionHash, r.ExplorerURL)
	assert.True(t, r.Simulated)
	assert.Equal(t, "43", r.Amount.String())

	again, err := m.Mint(context.Background(), wallet, decimal.NewFromInt(43))
	require.NoError(t, err)
	assert.NotEqual(t, r.TransactionHash, again.TransactionHash)
}

func TestSimulatedMintRejectsBadInput(t *testing.T) {
	m := NewSimulated("https://explorer.example/tx/")

	_, err := m.Mint(context.Background(), "0x123", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrInvalidWallet)

	_, err = m.Mint(context.Background(), wallet, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = m.Mint(context.Background(), wallet, decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.Mint(ctx, wallet, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, context.Canceled)
}
