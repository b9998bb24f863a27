package chain

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
)

type solanaChain struct {
	client *rpc.Client
}

func NewSolana(endpoint string) Chain {
	return &solanaChain{client: rpc.New(endpoint)}
}

// BuildTransfer returns a base64-serialized SystemProgram transfer with
// the sender as fee payer. The transaction carries no signatures; the
// wallet signs it client-side.
func (s *solanaChain) BuildTransfer(ctx context.Context, req TransferRequest) (string, error) {
	from, err := solana.PublicKeyFromBase58(req.From)
	if err != nil {
		return "", fmt.Errorf("parse sender: %w", err)
	}
	to, err := solana.PublicKeyFromBase58(req.To)
	if err != nil {
		return "", fmt.Errorf("parse recipient: %w", err)
	}
	if req.Lamports == 0 {
		return "", fmt.Errorf("transfer amount must be positive")
	}

	recent, err := s.client.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return "", fmt.Errorf("fetch blockhash: %w", err)
	}

	ix := system.NewTransferInstruction(req.Lamports, from, to).Build()
	tx, err := solana.NewTransaction(
		[]solana.Instruction{ix},
		recent.Value.Blockhash,
		solana.TransactionPayer(from),
	)
	if err != nil {
		return "", fmt.Errorf("build transaction: %w", err)
	}
	raw, err := tx.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("serialize transaction: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
