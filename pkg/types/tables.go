package types

// Store kinds. Each kind is persisted under its own file name or SQLite
// partition.
const (
	KindPatients      = "patients"
	KindPrescriptions = "prescriptions"
	KindInventory     = "inventory"
	KindElectronics   = "electronics"
	KindGroceries     = "groceries"
	KindStudents      = "students"
	KindTransactions  = "transactions"
	KindAccounts      = "accounts"
)

// StandardKinds lists all store kinds for enumeration.
var StandardKinds = []string{
	KindPatients,
	KindPrescriptions,
	KindInventory,
	KindElectronics,
	KindGroceries,
	KindStudents,
	KindTransactions,
	KindAccounts,
}
