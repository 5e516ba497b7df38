package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/registers/internal/inventory"
	"github.com/mesh-intelligence/registers/pkg/types"
)

func newInventoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Manage the inventory log",
	}
	cmd.AddCommand(
		newInventoryAddCmd(a),
		newInventoryListCmd(a),
		newInventoryUpdateCmd(a),
		newInventoryRemoveCmd(a),
		newInventoryClearCmd(a),
	)
	return cmd
}

// openInventory loads the inventory log of ws. Read-only callers tolerate
// I/O failures.
func openInventory(ws *workspace, readOnly bool) (*inventory.Log, error) {
	backend, err := backendFor[types.InventoryItem](ws, types.KindInventory)
	if err != nil {
		return nil, err
	}
	l := inventory.NewLog(backend)
	if readOnly {
		err = ws.loadForRead(l.Load)
	} else {
		err = l.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading inventory: %w", err)
	}
	return l, nil
}

func newInventoryAddCmd(a *app) *cobra.Command {
	var quantity int
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an item to the inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(cmd, func(ws *workspace) error {
				l, err := openInventory(ws, false)
				if err != nil {
					return err
				}
				item, err := l.Add(args[0], quantity, a.now())
				if err != nil {
					return err
				}
				if err := l.Save(); err != nil {
					return err
				}
				return a.output(cmd, item, "Added: "+item.String())
			})
		},
	}
	cmd.Flags().IntVarP(&quantity, "quantity", "q", 0, "quantity on hand")
	return cmd
}

func newInventoryListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List inventory items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(cmd, func(ws *workspace) error {
				l, err := openInventory(ws, true)
				if err != nil {
					return err
				}
				return listOutput(a, cmd, l.All(), "No items in inventory.")
			})
		},
	}
}

func newInventoryUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update-quantity <id> <quantity>",
		Short: "Set the quantity of an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseInt("id", args[0])
			if err != nil {
				return err
			}
			quantity, err := parseInt("quantity", args[1])
			if err != nil {
				return err
			}
			return a.withWorkspace(cmd, func(ws *workspace) error {
				l, err := openInventory(ws, false)
				if err != nil {
					return err
				}
				if err := l.UpdateQuantity(id, quantity); err != nil {
					return err
				}
				if err := l.Save(); err != nil {
					return err
				}
				item, err := l.Get(id)
				if err != nil {
					return err
				}
				return a.output(cmd, item, "Updated: "+item.String())
			})
		},
	}
}

func newInventoryRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an item from the inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseInt("id", args[0])
			if err != nil {
				return err
			}
			return a.withWorkspace(cmd, func(ws *workspace) error {
				l, err := openInventory(ws, false)
				if err != nil {
					return err
				}
				if err := l.Remove(id); err != nil {
					return err
				}
				if err := l.Save(); err != nil {
					return err
				}
				return a.output(cmd, map[string]int{"removed": id}, fmt.Sprintf("Removed item %d", id))
			})
		},
	}
}

func newInventoryClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every item and restart IDs at 1",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(cmd, func(ws *workspace) error {
				backend, err := backendFor[types.InventoryItem](ws, types.KindInventory)
				if err != nil {
					return err
				}
				l := inventory.NewLog(backend)
				l.Clear()
				if err := l.Save(); err != nil {
					return err
				}
				return a.output(cmd, map[string]bool{"cleared": true}, "Inventory cleared.")
			})
		},
	}
}
