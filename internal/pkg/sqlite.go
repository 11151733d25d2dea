package pkg

import (
	"database/sql/driver"
	"strings"
	"sync"

	gosqlite "github.com/glebarez/go-sqlite"
)

// sqliteFoldFunc lowers text with Unicode case mapping. The built-in LOWER
// only maps ASCII letters.
const sqliteFoldFunc = "unicode_lower"

var (
	sqliteOnce sync.Once
	sqliteErr  error
)

// RegisterSQLiteFunctions installs the SQL functions the Where scope relies
// on into the sqlite driver. Only connections opened afterwards see them,
// so call it before opening the database. Safe to call more than once.
func RegisterSQLiteFunctions() error {
	sqliteOnce.Do(func() {
		sqliteErr = gosqlite.RegisterDeterministicScalarFunction(sqliteFoldFunc, 1, unicodeLower)
	})
	return sqliteErr
}

func unicodeLower(_ *gosqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}
