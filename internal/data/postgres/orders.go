package postgres

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/data"
	"github.com/fatih/structs"
	"gitlab.com/distributed_lab/kit/pgdb"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

const ordersTable = "orders"

type orders struct {
	db *pgdb.DB
}

func (q orders) Insert(order data.Order) (data.Order, error) {
	var result data.Order
	stmt := squirrel.Insert(ordersTable).SetMap(structs.Map(order)).Suffix("RETURNING *")
	err := q.db.Get(&result, stmt)
	return result, errors.Wrap(err, "failed to insert order")
}

func (q orders) Get(id int64) (*data.Order, error) {
	var result data.Order
	stmt := squirrel.Select("*").From(ordersTable).Where(squirrel.Eq{"id": id})

	if err := q.db.Get(&result, stmt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to select order")
	}

	return &result, nil
}

func (q orders) SelectByStatus(statuses ...data.OrderStatus) ([]data.Order, error) {
	var result []data.Order
	stmt := squirrel.Select("*").From(ordersTable).
		Where(squirrel.Eq{"status": statuses}).
		OrderBy("id")
	err := q.db.Select(&result, stmt)
	return result, errors.Wrap(err, "failed to select orders by status")
}

func (q orders) UpdateStatus(id int64, status data.OrderStatus) error {
	stmt := squirrel.Update(ordersTable).Set("status", status).Where(squirrel.Eq{"id": id})
	err := q.db.Exec(stmt)
	return errors.Wrap(err, "failed to update order status")
}
