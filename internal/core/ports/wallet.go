package ports

//go:generate mockgen -source=wallet.go -destination=mocks/mock_wallet.go -package=mocks

import (
	"context"
	"errors"
	"math/big"

	"crosschain-donation/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Provider error conditions. Adapters wrap their native errors with these so
// services can branch with errors.Is.
var (
	// ErrNoProvider means no wallet is available in this process.
	ErrNoProvider = errors.New("no wallet provider")
	// ErrUserRejected is EIP-1193 code 4001.
	ErrUserRejected = errors.New("user rejected the request")
	// ErrUnknownNetwork is EIP-1193 code 4902: the wallet does not know the chain.
	ErrUnknownNetwork = errors.New("unrecognized chain id")
	// ErrExecutionReverted means the EVM reverted a call or gas estimate.
	ErrExecutionReverted = errors.New("execution reverted")
	// ErrRPCUnavailable covers transport failures talking to a node.
	ErrRPCUnavailable = errors.New("rpc unavailable")
)

// RevertError carries the decoded revert reason, when there is one.
type RevertError struct {
	Reason string
	Err    error
}

func (e *RevertError) Error() string {
	if e.Reason == "" {
		return ErrExecutionReverted.Error()
	}
	return ErrExecutionReverted.Error() + ": " + e.Reason
}

func (e *RevertError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrExecutionReverted) match any revert.
func (e *RevertError) Is(target error) bool {
	return target == ErrExecutionReverted
}

// TxRequest is an unsigned contract call the wallet should sign and send.
type TxRequest struct {
	To    common.Address
	Data  []byte
	Value *big.Int
}

// WalletProvider is the user's wallet: account access, network control and
// transaction signing. Implementations must be safe for concurrent use.
type WalletProvider interface {
	// RequestAccounts prompts for account access.
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	// Accounts returns already-authorized accounts without prompting.
	Accounts(ctx context.Context) ([]common.Address, error)
	CurrentNetwork(ctx context.Context) (domain.ChainID, error)
	// SwitchNetwork returns ErrUnknownNetwork when the wallet has no entry for id.
	SwitchNetwork(ctx context.Context, id domain.ChainID) error
	AddNetwork(ctx context.Context, desc domain.NetworkDescriptor) error
	// Call runs a read-only call on the wallet's active network.
	Call(ctx context.Context, to common.Address, data []byte) ([]byte, error)
	SendTransaction(ctx context.Context, tx TxRequest) (common.Hash, error)
	// WaitReceipt blocks until the transaction is mined or ctx ends.
	WaitReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
	// Subscribe returns the account-change and network-change notification streams.
	Subscribe() (<-chan []common.Address, <-chan domain.ChainID)
}

// ContractCaller runs read-only calls against one fixed chain.
type ContractCaller interface {
	CallContract(ctx context.Context, to common.Address, data []byte) ([]byte, error)
}
