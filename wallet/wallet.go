package wallet

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sisu-network/lib/log"
	"github.com/sisu-network/thortx/chains"
	"github.com/sisu-network/thortx/chains/thor"
	"github.com/sisu-network/thortx/chains/thor/crypto"
	"github.com/sisu-network/thortx/chains/thor/tx"
	"github.com/sisu-network/thortx/client"
	"github.com/sisu-network/thortx/config"
	"github.com/sisu-network/thortx/types"
	"github.com/tyler-smith/go-bip39"
)

type Token string

const (
	TokenVET  Token = "VET"
	TokenVTHO Token = "VTHO"

	// Gas of the energy contract call on top of the intrinsic gas of its clause.
	VthoTransferGas = 30_000

	erc20Abi = `[{"name":"transfer","type":"function","inputs":[{"name":"_to","type":"address"},{"name":"_amount","type":"uint256"}],"outputs":[{"name":"success","type":"bool"}]}]`
)

var (
	// The energy (VTHO) built-in contract.
	EnergyAddress = common.HexToAddress("0x0000000000000000000000000000456e65726779")
)

type Transfer struct {
	To     common.Address
	Amount *big.Int
}

// Wallet funds accounts from keys derived from a mnemonic.
type Wallet struct {
	cfg        config.Chain
	client     thor.ThorClient
	dispatcher chains.Dispatcher
	delegator  client.DelegatorClient
	fees       *thor.GasCalculator

	seed  []byte
	erc20 abi.ABI
}

// NewWallet creates a wallet. delegator may be nil when no tx is delegated.
func NewWallet(cfg config.Chain, mnemonic string, thorClient thor.ThorClient, dispatcher chains.Dispatcher,
	delegator client.DelegatorClient) (*Wallet, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, err
	}

	erc20, err := abi.JSON(strings.NewReader(erc20Abi))
	if err != nil {
		return nil, err
	}

	return &Wallet{
		cfg:        cfg,
		client:     thorClient,
		dispatcher: dispatcher,
		delegator:  delegator,
		fees:       thor.NewGasCalculator(cfg, thorClient),
		seed:       seed,
		erc20:      erc20,
	}, nil
}

// NewMnemonic returns a new 12 words mnemonic.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return "", err
	}

	return bip39.NewMnemonic(entropy)
}

// Key returns the private key of the account at index.
func (w *Wallet) Key(index uint32) ([]byte, error) {
	return derive(w.seed, AccountPath(index))
}

func (w *Wallet) Address(index uint32) (common.Address, error) {
	key, err := w.Key(index)
	if err != nil {
		return common.Address{}, err
	}

	return crypto.AddressFromKey(key)
}

func (w *Wallet) clause(token Token, transfer Transfer) (tx.Clause, error) {
	switch token {
	case TokenVET:
		to := transfer.To
		return tx.Clause{To: &to, Value: new(big.Int).Set(transfer.Amount)}, nil

	case TokenVTHO:
		data, err := w.erc20.Pack("transfer", transfer.To, transfer.Amount)
		if err != nil {
			return tx.Clause{}, err
		}
		to := EnergyAddress
		return tx.Clause{To: &to, Value: new(big.Int), Data: data}, nil
	}

	return tx.Clause{}, fmt.Errorf("unknown token %s", token)
}

func (w *Wallet) chainTag(ctx context.Context) (uint8, error) {
	if w.cfg.ChainTag >= 0 {
		return uint8(w.cfg.ChainTag), nil
	}

	return w.client.ChainTag(ctx)
}

// BuildTransfer builds an unsigned dynamic fee tx with one clause per transfer.
func (w *Wallet) BuildTransfer(ctx context.Context, token Token, transfers []Transfer, delegated bool) (*tx.Transaction, error) {
	if len(transfers) == 0 {
		return nil, fmt.Errorf("no transfer")
	}

	clauses := make([]tx.Clause, 0, len(transfers))
	for _, transfer := range transfers {
		if transfer.Amount == nil || transfer.Amount.Sign() <= 0 {
			return nil, fmt.Errorf("invalid amount for %s", transfer.To.Hex())
		}

		c, err := w.clause(token, transfer)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, c)
	}

	gas, err := tx.IntrinsicGas(clauses...)
	if err != nil {
		return nil, err
	}
	if token == TokenVTHO {
		gas += uint64(len(clauses)) * VthoTransferGas
	}

	chainTag, err := w.chainTag(ctx)
	if err != nil {
		return nil, err
	}

	best, err := w.client.BestBlock(ctx)
	if err != nil {
		return nil, err
	}
	w.fees.AddNewBlock(best)
	maxFee, tip := w.fees.SuggestFees()

	nonce, err := randomNonce()
	if err != nil {
		return nil, err
	}

	body := &tx.Body{
		Type:                 tx.TypeDynamicFee,
		ChainTag:             chainTag,
		BlockRef:             tx.BlockRefFromID(best.Id),
		Expiration:           w.cfg.Expiration,
		Clauses:              clauses,
		MaxFeePerGas:         maxFee,
		MaxPriorityFeePerGas: tip,
		Gas:                  gas,
		Nonce:                nonce,
	}
	if delegated {
		body.Reserved = &tx.Reserved{Features: tx.DelegationFeature}
	}

	return tx.NewTransaction(body)
}

// Sign signs t with the key at index. A delegated tx gets its gas payer signature from the
// delegator server.
func (w *Wallet) Sign(t *tx.Transaction, index uint32) (*tx.Transaction, error) {
	key, err := w.Key(index)
	if err != nil {
		return nil, err
	}

	if !t.IsDelegated() {
		return t.Sign(key)
	}

	if w.delegator == nil {
		return nil, fmt.Errorf("delegated tx needs a delegator server")
	}

	senderSigned, err := t.SignAsSender(key)
	if err != nil {
		return nil, err
	}

	origin, err := crypto.AddressFromKey(key)
	if err != nil {
		return nil, err
	}

	raw, err := senderSigned.EncodeUnsigned()
	if err != nil {
		return nil, err
	}

	payerSig, err := w.delegator.SignAsGasPayer(origin, raw)
	if err != nil {
		return nil, err
	}

	return senderSigned.WithGasPayerSignature(payerSig)
}

// Fund sends token from the account at index to every transfer destination in a single tx.
func (w *Wallet) Fund(ctx context.Context, index uint32, token Token, transfers []Transfer, delegated bool) (*types.DispatchedTxResult, error) {
	unsigned, err := w.BuildTransfer(ctx, token, transfers, delegated)
	if err != nil {
		return nil, err
	}

	signed, err := w.Sign(unsigned, index)
	if err != nil {
		return nil, err
	}

	raw, err := signed.Encoded()
	if err != nil {
		return nil, err
	}

	id, err := signed.ID()
	if err != nil {
		return nil, err
	}

	log.Info("Funding ", len(transfers), " accounts with ", token, ", tx id = ", id.Hex())

	return w.dispatcher.Dispatch(&types.DispatchedTxRequest{
		Chain:  w.cfg.Chain,
		Tx:     raw,
		TxHash: id.Hex(),
	}), nil
}

func randomNonce() (uint64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint64(buf[:]), nil
}
