package postgres

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/data"
	"github.com/fatih/structs"
	"gitlab.com/distributed_lab/kit/pgdb"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

const escrowsTable = "escrows"

type escrows struct {
	db *pgdb.DB
}

func (q escrows) Insert(escrow data.Escrow) (data.Escrow, error) {
	var result data.Escrow
	stmt := squirrel.Insert(escrowsTable).SetMap(structs.Map(escrow)).Suffix("RETURNING *")
	err := q.db.Get(&result, stmt)
	return result, errors.Wrap(err, "failed to insert escrow")
}

func (q escrows) GetBySide(orderID int64, side data.EscrowSide) (*data.Escrow, error) {
	var result data.Escrow
	stmt := squirrel.Select("*").From(escrowsTable).
		Where(squirrel.Eq{"order_id": orderID, "side": side})

	if err := q.db.Get(&result, stmt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to select escrow")
	}

	return &result, nil
}

func (q escrows) SelectByOrder(orderID int64) ([]data.Escrow, error) {
	var result []data.Escrow
	stmt := squirrel.Select("*").From(escrowsTable).
		Where(squirrel.Eq{"order_id": orderID}).
		OrderBy("id")
	err := q.db.Select(&result, stmt)
	return result, errors.Wrap(err, "failed to select escrows of order")
}

func (q escrows) UpdateStatus(id int64, status data.EscrowStatus) error {
	stmt := squirrel.Update(escrowsTable).Set("status", status).Where(squirrel.Eq{"id": id})
	err := q.db.Exec(stmt)
	return errors.Wrap(err, "failed to update escrow status")
}
