package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/registers/internal/warehouse"
	"github.com/mesh-intelligence/registers/pkg/types"
)

func newWarehouseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "warehouse",
		Short: "Manage electronic and grocery stock",
	}
	cmd.AddCommand(
		newWarehouseAddElectronicCmd(a),
		newWarehouseAddGroceryCmd(a),
		newWarehouseUpdateCmd(a),
		newWarehouseRemoveCmd(a),
		newWarehouseListCmd(a),
	)
	return cmd
}

func openWarehouse(ws *workspace, readOnly bool) (*warehouse.Manager, error) {
	electronics, err := backendFor[types.ElectronicItem](ws, types.KindElectronics)
	if err != nil {
		return nil, err
	}
	groceries, err := backendFor[types.GroceryItem](ws, types.KindGroceries)
	if err != nil {
		return nil, err
	}
	m := warehouse.NewManager(warehouse.Backends{Electronics: electronics, Groceries: groceries})
	if readOnly {
		err = ws.loadForRead(m.Load)
	} else {
		err = m.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading warehouse: %w", err)
	}
	return m, nil
}

// mutateWarehouse loads the warehouse, applies fn and saves both kinds.
func (a *app) mutateWarehouse(cmd *cobra.Command, fn func(m *warehouse.Manager) error) error {
	return a.withWorkspace(cmd, func(ws *workspace) error {
		m, err := openWarehouse(ws, false)
		if err != nil {
			return err
		}
		if err := fn(m); err != nil {
			return err
		}
		return m.Save()
	})
}

func newWarehouseAddElectronicCmd(a *app) *cobra.Command {
	var (
		quantity int
		brand    string
		warranty int
	)
	cmd := &cobra.Command{
		Use:   "add-electronic <name>",
		Short: "Add an electronic item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var item types.ElectronicItem
			err := a.mutateWarehouse(cmd, func(m *warehouse.Manager) error {
				var err error
				item, err = m.AddElectronic(args[0], quantity, brand, warranty)
				return err
			})
			if err != nil {
				return err
			}
			return a.output(cmd, item, "Added: "+item.String())
		},
	}
	cmd.Flags().IntVarP(&quantity, "quantity", "q", 0, "quantity on hand")
	cmd.Flags().StringVar(&brand, "brand", "", "brand name")
	cmd.Flags().IntVar(&warranty, "warranty", 0, "warranty period in months")
	return cmd
}

func newWarehouseAddGroceryCmd(a *app) *cobra.Command {
	var quantity, days int
	cmd := &cobra.Command{
		Use:   "add-grocery <name>",
		Short: "Add a grocery item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var item types.GroceryItem
			err := a.mutateWarehouse(cmd, func(m *warehouse.Manager) error {
				var err error
				item, err = m.AddGrocery(args[0], quantity, days, a.now())
				return err
			})
			if err != nil {
				return err
			}
			return a.output(cmd, item, "Added: "+item.String())
		},
	}
	cmd.Flags().IntVarP(&quantity, "quantity", "q", 0, "quantity on hand")
	cmd.Flags().IntVar(&days, "days", 7, "days until expiry")
	return cmd
}

func newWarehouseUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update-quantity <electronic|grocery> <id> <quantity>",
		Short: "Set the quantity of an item",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseInt("id", args[1])
			if err != nil {
				return err
			}
			quantity, err := parseInt("quantity", args[2])
			if err != nil {
				return err
			}
			err = a.mutateWarehouse(cmd, func(m *warehouse.Manager) error {
				return m.UpdateQuantity(args[0], id, quantity)
			})
			if err != nil {
				return err
			}
			return a.output(cmd, map[string]any{"kind": args[0], "id": id, "quantity": quantity},
				fmt.Sprintf("Updated %s item %d: quantity %d", args[0], id, quantity))
		},
	}
}

func newWarehouseRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <electronic|grocery> <id>",
		Short: "Remove an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseInt("id", args[1])
			if err != nil {
				return err
			}
			err = a.mutateWarehouse(cmd, func(m *warehouse.Manager) error {
				return m.Remove(args[0], id)
			})
			if err != nil {
				return err
			}
			return a.output(cmd, map[string]any{"kind": args[0], "removed": id},
				fmt.Sprintf("Removed %s item %d", args[0], id))
		},
	}
}

func newWarehouseListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List electronic and grocery items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(cmd, func(ws *workspace) error {
				m, err := openWarehouse(ws, true)
				if err != nil {
					return err
				}
				electronics, groceries := m.Electronics(), m.Groceries()
				if a.jsonMode {
					if electronics == nil {
						electronics = []types.ElectronicItem{}
					}
					if groceries == nil {
						groceries = []types.GroceryItem{}
					}
					return writeJSON(cmd.OutOrStdout(), map[string]any{
						"electronics": electronics,
						"groceries":   groceries,
					})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "Electronics:")
				if err := listOutput(a, cmd, electronics, "  (none)"); err != nil {
					return err
				}
				fmt.Fprintln(out, "Groceries:")
				return listOutput(a, cmd, groceries, "  (none)")
			})
		},
	}
}
