package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/registers/internal/finance"
	"github.com/mesh-intelligence/registers/pkg/types"
)

func newFinanceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finance",
		Short: "Record transactions against a savings account",
	}
	cmd.AddCommand(
		newFinanceOpenCmd(a),
		newFinanceRecordCmd(a),
		newFinanceHistoryCmd(a),
	)
	return cmd
}

func openLedger(ws *workspace, readOnly bool) (*finance.Ledger, error) {
	transactions, err := backendFor[types.Transaction](ws, types.KindTransactions)
	if err != nil {
		return nil, err
	}
	accounts, err := backendFor[types.Account](ws, types.KindAccounts)
	if err != nil {
		return nil, err
	}
	l := finance.NewLedger(finance.Backends{Transactions: transactions, Accounts: accounts})
	if readOnly {
		err = ws.loadForRead(l.Load)
	} else {
		err = l.Load()
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func newFinanceOpenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "open <account-number> <initial-balance>",
		Short: "Open the savings account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			balance, err := parseAmount("initial balance", args[1])
			if err != nil {
				return err
			}
			return a.withWorkspace(cmd, func(ws *workspace) error {
				l, err := openLedger(ws, false)
				if err != nil {
					return err
				}
				account, err := l.Open(args[0], balance)
				if err != nil {
					return err
				}
				if err := l.Save(); err != nil {
					return err
				}
				return a.output(cmd, account,
					fmt.Sprintf("Opened account %s with balance $%.2f", account.Number, account.Balance))
			})
		},
	}
}

func newFinanceRecordCmd(a *app) *cobra.Command {
	var method string
	cmd := &cobra.Command{
		Use:   "record <category> <amount>",
		Short: "Record a transaction and deduct it from the balance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount("amount", args[1])
			if err != nil {
				return err
			}
			return a.withWorkspace(cmd, func(ws *workspace) error {
				l, err := openLedger(ws, false)
				if err != nil {
					return err
				}
				// Keep stdout pure JSON in --json mode.
				progress := cmd.OutOrStdout()
				if a.jsonMode {
					progress = cmd.ErrOrStderr()
				}
				tx, receipt, err := l.Record(progress, args[0], amount, method, a.now())
				if err != nil {
					return err
				}
				if err := l.Save(); err != nil {
					return err
				}
				account, err := l.Account()
				if err != nil {
					return err
				}
				return a.output(cmd, map[string]any{
					"transaction": tx,
					"receipt":     receipt.Reference,
					"balance":     account.Balance,
				}, fmt.Sprintf("Recorded: %s\nReceipt: %s\nBalance: $%.2f", tx, receipt.Reference, account.Balance))
			})
		},
	}
	cmd.Flags().StringVarP(&method, "method", "m", finance.MethodBank, "payment method: mobile, bank or crypto")
	return cmd
}

func newFinanceHistoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List recorded transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(cmd, func(ws *workspace) error {
				l, err := openLedger(ws, true)
				if err != nil {
					return err
				}
				return listOutput(a, cmd, l.History(), "No transactions recorded.")
			})
		},
	}
}
