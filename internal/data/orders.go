package data

import "time"

type OrderStatus string

const (
	OrderAuctionOpen      OrderStatus = "AUCTION_OPEN"
	OrderAuctionClosed    OrderStatus = "AUCTION_CLOSED"
	OrderSrcEscrowCreated OrderStatus = "SRC_ESCROW_CREATED"
	OrderDstEscrowCreated OrderStatus = "DST_ESCROW_CREATED"
	OrderSecretRevealed   OrderStatus = "SECRET_REVEALED"
)

type Orders interface {
	Insert(Order) (Order, error)
	Get(id int64) (*Order, error)
	SelectByStatus(statuses ...OrderStatus) ([]Order, error)
	UpdateStatus(id int64, status OrderStatus) error
}

type Order struct {
	ID int64 `structs:"-" db:"id" json:"id"`

	SourceChain      Chain `structs:"src_chain" db:"src_chain" json:"sourceChain"`
	DestinationChain Chain `structs:"dest_chain" db:"dest_chain" json:"destinationChain"`

	SourceUserAddress       string `structs:"src_user" db:"src_user" json:"sourceUserAddress"`
	DestinationUserAddress  string `structs:"dest_user" db:"dest_user" json:"destinationUserAddress"`
	SourceTokenAddress      string `structs:"src_token" db:"src_token" json:"sourceTokenAddress"`
	DestinationTokenAddress string `structs:"dest_token" db:"dest_token" json:"destinationTokenAddress"`

	// Amounts are stored as decimal strings, they do not fit into DB integers
	SourceTokenAmount      string `structs:"src_amount" db:"src_amount" json:"sourceTokenAmount"`
	DestinationTokenAmount string `structs:"dest_amount" db:"dest_amount" json:"destinationTokenAmount"`

	AuctionStartTime time.Time `structs:"auction_start" db:"auction_start" json:"auctionStartTime"`
	// AuctionDuration is in seconds
	AuctionDuration int64 `structs:"auction_duration" db:"auction_duration" json:"auctionDuration"`

	Status OrderStatus `structs:"status" db:"status" json:"status"`
}
