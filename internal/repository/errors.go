package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrDuplicate marks a unique-constraint violation. Claim, badge, like and
// notification writers treat it as "already done", not a failure.
var ErrDuplicate = errors.New("duplicate_entry")

func translateDuplicate(err error) error {
	if err == nil {
		return nil
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == 1062 {
		return ErrDuplicate
	}
	return err
}
