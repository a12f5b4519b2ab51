package data

type EscrowSide string

const (
	EscrowSideSrc EscrowSide = "SRC"
	EscrowSideDst EscrowSide = "DST"
)

type EscrowStatus string

const (
	EscrowCreated        EscrowStatus = "CREATED"
	EscrowSecretReceived EscrowStatus = "SECRET_RECEIVED"
)

type Escrows interface {
	Insert(Escrow) (Escrow, error)
	GetBySide(orderID int64, side EscrowSide) (*Escrow, error)
	SelectByOrder(orderID int64) ([]Escrow, error)
	UpdateStatus(id int64, status EscrowStatus) error
}

type Escrow struct {
	ID      int64      `structs:"-" db:"id" json:"id"`
	OrderID int64      `structs:"order_id" db:"order_id" json:"orderId"`
	Side    EscrowSide `structs:"side" db:"side" json:"side"`
	Chain   Chain      `structs:"chain" db:"chain" json:"chain"`

	EscrowAddress string `structs:"escrow_address" db:"escrow_address" json:"escrowAddress"`
	EscrowTxHash  string `structs:"escrow_tx_hash" db:"escrow_tx_hash" json:"escrowTxHash"`

	// Hashlock is the 0x-prefixed keccak256 commitment shared by both legs
	Hashlock  string `structs:"hashlock" db:"hashlock" json:"hashlock"`
	OrderHash string `structs:"order_hash" db:"order_hash" json:"orderHash"`

	// Timelocks is the packed 256-bit stage schedule as a decimal string
	Timelocks string `structs:"timelocks" db:"timelocks" json:"timelocks"`
	// DeployedAt is the on-chain deployment timestamp, unix seconds
	DeployedAt uint64 `structs:"deployed_at" db:"deployed_at" json:"deployedAt"`

	Status EscrowStatus `structs:"status" db:"status" json:"status"`
}
