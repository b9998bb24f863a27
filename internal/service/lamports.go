package service

import (
	"math"

	appErr "github.com/ansh808s/cause-drop/internal/pkg/errors"
)

const lamportsPerSOL = 1_000_000_000

// minimum donation/goal size, 0.001 SOL
const minLamports = lamportsPerSOL / 1000

func solToLamports(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, appErr.ErrInvalid
	}
	lamports := int64(math.Round(amount * lamportsPerSOL))
	if lamports <= 0 {
		return 0, appErr.ErrInvalid
	}
	return lamports, nil
}

func lamportsToSOL(lamports int64) float64 {
	return float64(lamports) / lamportsPerSOL
}
