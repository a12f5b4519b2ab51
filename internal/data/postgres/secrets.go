package postgres

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/data"
	"github.com/fatih/structs"
	"gitlab.com/distributed_lab/kit/pgdb"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

const secretsTable = "secrets"

type secrets struct {
	db *pgdb.DB
}

func (q secrets) Insert(secret data.Secret) (data.Secret, error) {
	var result data.Secret
	stmt := squirrel.Insert(secretsTable).SetMap(structs.Map(secret)).Suffix("RETURNING *")
	err := q.db.Get(&result, stmt)
	return result, errors.Wrap(err, "failed to insert secret")
}

func (q secrets) GetByOrder(orderID int64) (*data.Secret, error) {
	var result data.Secret
	stmt := squirrel.Select("*").From(secretsTable).Where(squirrel.Eq{"order_id": orderID})

	if err := q.db.Get(&result, stmt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to select secret")
	}

	return &result, nil
}
