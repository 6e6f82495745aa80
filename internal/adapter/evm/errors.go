package evm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"crosschain-donation/internal/contracts"
	"crosschain-donation/internal/core/ports"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// EIP-1193 provider error codes.
const (
	codeUserRejected   = 4001
	codeUnknownNetwork = 4902
)

// classify maps a go-ethereum error onto the ports sentinels. Errors that fit
// none of them are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		switch rpcErr.ErrorCode() {
		case codeUserRejected:
			return fmt.Errorf("%w: %w", ports.ErrUserRejected, err)
		case codeUnknownNetwork:
			return fmt.Errorf("%w: %w", ports.ErrUnknownNetwork, err)
		}
	}

	if rev := revertFrom(err); rev != nil {
		return rev
	}

	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.StatusCode >= http.StatusInternalServerError || httpErr.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("%w: %w", ports.ErrRPCUnavailable, err)
		}
		return err
	}

	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", ports.ErrRPCUnavailable, err)
	}
	return err
}

// revertFrom recognizes execution reverts, decoding Error(string) data when
// the node returns it.
func revertFrom(err error) *ports.RevertError {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if raw, ok := dataErr.ErrorData().(string); ok {
			if data, decErr := hexutil.Decode(raw); decErr == nil {
				if reason, ok := contracts.UnpackRevertReason(data); ok {
					return &ports.RevertError{Reason: reason, Err: err}
				}
			}
		}
	}

	msg := err.Error()
	idx := strings.Index(msg, "execution reverted")
	if idx < 0 {
		return nil
	}
	reason := strings.TrimSpace(strings.TrimPrefix(msg[idx+len("execution reverted"):], ":"))
	return &ports.RevertError{Reason: reason, Err: err}
}
