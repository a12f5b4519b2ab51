package postgres

import (
	"github.com/Masterminds/squirrel"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/data"
	"github.com/fatih/structs"
	"gitlab.com/distributed_lab/kit/pgdb"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

const bidsTable = "bids"

type bids struct {
	db *pgdb.DB
}

func (q bids) Insert(bid data.Bid) (data.Bid, error) {
	var result data.Bid
	stmt := squirrel.Insert(bidsTable).SetMap(structs.Map(bid)).Suffix("RETURNING *")
	err := q.db.Get(&result, stmt)
	return result, errors.Wrap(err, "failed to insert bid")
}

func (q bids) SelectByOrder(orderID int64) ([]data.Bid, error) {
	var result []data.Bid
	stmt := squirrel.Select("*").From(bidsTable).
		Where(squirrel.Eq{"order_id": orderID}).
		OrderBy("id")
	err := q.db.Select(&result, stmt)
	return result, errors.Wrap(err, "failed to select bids of order")
}

func (q bids) MarkWon(id int64, filledAmount string) error {
	stmt := squirrel.Update(bidsTable).
		SetMap(map[string]interface{}{"status": data.BidWon, "filled_amount": filledAmount}).
		Where(squirrel.Eq{"id": id})
	err := q.db.Exec(stmt)
	return errors.Wrap(err, "failed to mark bid won")
}

func (q bids) MarkLost(orderID int64, exceptIDs []int64) error {
	stmt := squirrel.Update(bidsTable).
		SetMap(map[string]interface{}{"status": data.BidLost, "filled_amount": "0"}).
		Where(squirrel.Eq{"order_id": orderID, "status": data.BidPlaced})
	if len(exceptIDs) > 0 {
		stmt = stmt.Where(squirrel.NotEq{"id": exceptIDs})
	}
	err := q.db.Exec(stmt)
	return errors.Wrap(err, "failed to mark losing bids")
}
