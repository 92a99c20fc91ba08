package sqlxrepos

import (
	"database/sql"
	"strconv"

	"github.com/pkg/errors"
)

func itoa(i int) string {
	return strconv.Itoa(i)
}

// trapNoRowsErrAs maps psql "no rows" err to the domain's not-found error.
func trapNoRowsErrAs(err, notFound error, msg string) error {
	if err == sql.ErrNoRows {
		return notFound
	}
	return errors.Wrap(err, msg)
}
