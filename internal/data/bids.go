package data

import "time"

type BidStatus string

const (
	BidPlaced BidStatus = "PLACED"
	BidWon    BidStatus = "WON"
	BidLost   BidStatus = "LOST"
)

type Bids interface {
	Insert(Bid) (Bid, error)
	SelectByOrder(orderID int64) ([]Bid, error)
	MarkWon(id int64, filledAmount string) error
	// MarkLost flips every remaining PLACED bid of the order to LOST,
	// skipping the given winner ids. Runs on every auction close.
	MarkLost(orderID int64, exceptIDs []int64) error
}

type Bid struct {
	ID       int64  `structs:"-" db:"id" json:"id"`
	OrderID  int64  `structs:"order_id" db:"order_id" json:"orderId"`
	Resolver string `structs:"resolver" db:"resolver" json:"resolver"`

	// BidAmount is a decimal string in destination token units
	BidAmount string    `structs:"bid_amount" db:"bid_amount" json:"bidAmount"`
	Expiry    time.Time `structs:"expiry" db:"expiry" json:"expiry"`

	Status       BidStatus `structs:"status" db:"status" json:"status"`
	FilledAmount string    `structs:"filled_amount" db:"filled_amount" json:"filledAmount"`
}
