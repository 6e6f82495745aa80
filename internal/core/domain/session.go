package domain

import "github.com/ethereum/go-ethereum/common"

// ConnectionState is the wallet session's connection lifecycle.
type ConnectionState string

const (
	ConnectionDisconnected ConnectionState = "DISCONNECTED"
	ConnectionConnecting   ConnectionState = "CONNECTING"
	ConnectionConnected    ConnectionState = "CONNECTED"
)

// WalletSession is the process-wide view of the user's wallet.
// Address is set iff State is ConnectionConnected.
type WalletSession struct {
	Address   *common.Address `json:"address,omitempty"`
	NetworkID ChainID         `json:"network_id"`
	State     ConnectionState `json:"state"`
}

// DisconnectedSession returns the initial session value.
func DisconnectedSession() WalletSession {
	return WalletSession{State: ConnectionDisconnected}
}

// IsConnected returns true when an account is available for signing.
func (s WalletSession) IsConnected() bool {
	return s.State == ConnectionConnected && s.Address != nil
}

// OnNetwork reports whether the wallet's active network is id.
func (s WalletSession) OnNetwork(id ChainID) bool {
	return s.NetworkID.IsKnown() && s.NetworkID == id
}

// Account returns the connected address, or the zero address.
func (s WalletSession) Account() common.Address {
	if s.Address == nil {
		return common.Address{}
	}
	return *s.Address
}

// Clone returns a copy that shares no pointers with s.
func (s WalletSession) Clone() WalletSession {
	out := s
	if s.Address != nil {
		addr := *s.Address
		out.Address = &addr
	}
	return out
}
