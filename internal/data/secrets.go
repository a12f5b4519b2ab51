package data

type Secrets interface {
	Insert(Secret) (Secret, error)
	GetByOrder(orderID int64) (*Secret, error)
}

// Secret is the revealed preimage unlocking both escrow legs.
// Exactly one row per successfully settled order.
type Secret struct {
	ID       int64  `structs:"-" db:"id" json:"id"`
	OrderID  int64  `structs:"order_id" db:"order_id" json:"orderId"`
	EscrowID int64  `structs:"escrow_id" db:"escrow_id" json:"escrowId"`
	Secret   string `structs:"secret" db:"secret" json:"secret"`
}
