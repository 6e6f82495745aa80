package service

import (
	"errors"

	"crosschain-donation/internal/core/domain"
	"crosschain-donation/internal/core/ports"
	"crosschain-donation/pkg/apperror"
)

// walletError maps a provider error onto the coded error taxonomy.
// Errors that are already coded pass through unchanged.
func walletError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ports.ErrNoProvider):
		return apperror.ErrNoProviderFound()
	case errors.Is(err, ports.ErrUserRejected):
		return apperror.ErrUserRejected(err)
	case errors.Is(err, ports.ErrUnknownNetwork):
		return apperror.ErrUnknownNetwork(err)
	case errors.Is(err, ports.ErrExecutionReverted):
		return apperror.ErrOnChainCallReverted(revertReason(err), err)
	case errors.Is(err, ports.ErrRPCUnavailable):
		return apperror.ErrRPCUnavailable(err)
	default:
		return apperror.ErrProviderFailure(err)
	}
}

// errorKind classifies err for the donation lifecycle record.
func errorKind(err error) domain.ErrorKind {
	switch {
	case errors.Is(err, ports.ErrUserRejected):
		return domain.ErrorKindUserRejected
	case errors.Is(err, ports.ErrExecutionReverted):
		return domain.ErrorKindOnChainCallReverted
	case errors.Is(err, ports.ErrRPCUnavailable):
		return domain.ErrorKindRPCUnavailable
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrTooManyDecimals):
		return domain.ErrorKindInvalidAmount
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case apperror.ErrUserRejected(nil).Code:
			return domain.ErrorKindUserRejected
		case apperror.ErrOnChainCallReverted("", nil).Code:
			return domain.ErrorKindOnChainCallReverted
		case apperror.ErrRPCUnavailable(nil).Code:
			return domain.ErrorKindRPCUnavailable
		case apperror.ErrStillPending(nil).Code:
			return domain.ErrorKindStillPending
		case apperror.ErrInvalidAmount(nil).Code:
			return domain.ErrorKindInvalidAmount
		}
	}
	return domain.ErrorKindProviderFailure
}

func revertReason(err error) string {
	var rev *ports.RevertError
	if errors.As(err, &rev) {
		return rev.Reason
	}
	return ""
}
