// Package finance records transactions against a savings account through
// one of several payment processors.
package finance

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/registers/pkg/types"
)

// Payment methods accepted by ProcessorFor.
const (
	MethodMobile = "mobile"
	MethodBank   = "bank"
	MethodCrypto = "crypto"
)

// Receipt identifies one processed payment.
type Receipt struct {
	Reference string
	Method    string
}

// Processor handles the payment side of a transaction.
type Processor interface {
	Process(w io.Writer, tx types.Transaction) (Receipt, error)
}

// MobileMoney processes mobile money payments.
type MobileMoney struct{}

func (MobileMoney) Process(w io.Writer, tx types.Transaction) (Receipt, error) {
	return process(w, MethodMobile, "mobile money", tx)
}

// BankTransfer processes bank transfers.
type BankTransfer struct{}

func (BankTransfer) Process(w io.Writer, tx types.Transaction) (Receipt, error) {
	return process(w, MethodBank, "bank transfer", tx)
}

// CryptoWallet processes crypto wallet payments.
type CryptoWallet struct{}

func (CryptoWallet) Process(w io.Writer, tx types.Transaction) (Receipt, error) {
	return process(w, MethodCrypto, "crypto payment", tx)
}

// ProcessorFor returns the processor for method.
func ProcessorFor(method string) (Processor, error) {
	switch method {
	case MethodMobile:
		return MobileMoney{}, nil
	case MethodBank:
		return BankTransfer{}, nil
	case MethodCrypto:
		return CryptoWallet{}, nil
	default:
		return nil, fmt.Errorf("%q: %w", method, types.ErrUnknownProcessor)
	}
}

func process(w io.Writer, method, label string, tx types.Transaction) (Receipt, error) {
	ref, err := uuid.NewV7()
	if err != nil {
		return Receipt{}, fmt.Errorf("generating receipt reference: %w", err)
	}
	if _, err := fmt.Fprintf(w, "Processing %s: $%.2f for %s\n", label, tx.Amount, tx.Category); err != nil {
		return Receipt{}, err
	}
	return Receipt{Reference: ref.String(), Method: method}, nil
}
