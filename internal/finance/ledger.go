package finance

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mesh-intelligence/registers/internal/persist"
	"github.com/mesh-intelligence/registers/pkg/store"
	"github.com/mesh-intelligence/registers/pkg/types"
)

// accountID is the ID of the single savings account a ledger tracks.
const accountID = 1

// ErrNoAccount is returned when recording before an account was opened.
var ErrNoAccount = fmt.Errorf("no account opened: %w", types.ErrNotFound)

// Backends holds the persistence backend of each store.
type Backends struct {
	Transactions persist.Backend[types.Transaction]
	Accounts     persist.Backend[types.Account]
}

// ApplyTransaction deducts tx from the account. The balance is unchanged
// when the amount is not positive or exceeds the balance.
func ApplyTransaction(account types.Account, tx types.Transaction) (types.Account, error) {
	if tx.Amount <= 0 {
		return account, fmt.Errorf("amount must be positive, got %.2f: %w", tx.Amount, types.ErrInvalidValue)
	}
	if tx.Amount > account.Balance {
		return account, fmt.Errorf("amount %.2f exceeds balance %.2f: %w", tx.Amount, account.Balance, types.ErrInsufficientFunds)
	}
	account.Balance -= tx.Amount
	return account, nil
}

// Ledger holds the savings account and its transaction history.
type Ledger struct {
	transactions *store.Store[types.Transaction]
	accounts     *store.Store[types.Account]
	backends     Backends
	nextID       int
}

// NewLedger returns a ledger without an account.
func NewLedger(backends Backends) *Ledger {
	return &Ledger{
		transactions: store.New[types.Transaction](),
		accounts:     store.New[types.Account](),
		backends:     backends,
		nextID:       1,
	}
}

// Open creates the savings account. Returns ErrDuplicateKey if one exists.
func (l *Ledger) Open(number string, initialBalance float64) (types.Account, error) {
	if initialBalance <= 0 {
		return types.Account{}, fmt.Errorf("initial balance must be positive, got %.2f: %w", initialBalance, types.ErrInvalidValue)
	}
	account := types.Account{ID: accountID, Number: number, Balance: initialBalance}
	if err := l.accounts.Add(account); err != nil {
		return types.Account{}, fmt.Errorf("opening account: %w", err)
	}
	return account, nil
}

// Account returns the savings account or ErrNoAccount.
func (l *Ledger) Account() (types.Account, error) {
	account, err := l.accounts.Get(accountID)
	if err != nil {
		return types.Account{}, ErrNoAccount
	}
	return account, nil
}

// Record processes a payment through method, applies it to the account and
// stores the transaction. Nothing is stored when any step fails.
func (l *Ledger) Record(w io.Writer, category string, amount float64, method string, now time.Time) (types.Transaction, Receipt, error) {
	processor, err := ProcessorFor(method)
	if err != nil {
		return types.Transaction{}, Receipt{}, err
	}
	account, err := l.Account()
	if err != nil {
		return types.Transaction{}, Receipt{}, err
	}

	tx := types.Transaction{ID: l.nextID, Date: now, Amount: amount, Category: category}
	if err := tx.Validate(); err != nil {
		return types.Transaction{}, Receipt{}, err
	}
	updated, err := ApplyTransaction(account, tx)
	if err != nil {
		return types.Transaction{}, Receipt{}, err
	}
	receipt, err := processor.Process(w, tx)
	if err != nil {
		return types.Transaction{}, Receipt{}, fmt.Errorf("processing transaction: %w", err)
	}

	if err := l.setAccount(updated); err != nil {
		return types.Transaction{}, Receipt{}, fmt.Errorf("updating balance: %w", err)
	}
	if err := l.transactions.Add(tx); err != nil {
		if restoreErr := l.setAccount(account); restoreErr != nil {
			err = errors.Join(err, fmt.Errorf("restoring balance: %w", restoreErr))
		}
		return types.Transaction{}, Receipt{}, fmt.Errorf("recording transaction: %w", err)
	}
	l.nextID++
	return tx, receipt, nil
}

func (l *Ledger) setAccount(account types.Account) error {
	return l.accounts.Update(accountID, func(types.Account) (types.Account, error) {
		return account, nil
	})
}

// History returns the recorded transactions sorted by ID.
func (l *Ledger) History() []types.Transaction {
	return l.transactions.List()
}

// Save writes the transactions and the account.
func (l *Ledger) Save() error {
	if err := persist.SaveStore(l.transactions, l.backends.Transactions); err != nil {
		return fmt.Errorf("saving transactions: %w", err)
	}
	if err := persist.SaveStore(l.accounts, l.backends.Accounts); err != nil {
		return fmt.Errorf("saving account: %w", err)
	}
	return nil
}

// Load replaces the transactions and the account from the backends.
func (l *Ledger) Load() error {
	if err := persist.LoadStore(l.transactions, l.backends.Transactions); err != nil {
		return fmt.Errorf("loading transactions: %w", err)
	}
	if err := persist.LoadStore(l.accounts, l.backends.Accounts); err != nil {
		return fmt.Errorf("loading account: %w", err)
	}
	l.nextID = l.transactions.MaxID() + 1
	return nil
}
