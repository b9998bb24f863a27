package chain

import "context"

// TransferRequest describes a native token transfer to be assembled for
// client-side signing. Addresses are base58 public keys.
type TransferRequest struct {
	From     string
	To       string
	Lamports uint64
}

// Chain assembles unsigned transactions for the wallet to sign and
// submit. Implementations must not sign or broadcast anything.
type Chain interface {
	BuildTransfer(ctx context.Context, req TransferRequest) (string, error)
}
