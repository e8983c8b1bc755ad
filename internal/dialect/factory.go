package dialect

import "fmt"

// GetDialect returns the Dialect implementation for a configured driver name.
func GetDialect(driver string) (Dialect, error) {
	switch driver {
	case "duckdb", "":
		return &DuckDBDialect{}, nil
	case "postgres":
		return &PostgresDialect{}, nil
	case "mysql":
		return &MysqlDialect{}, nil
	case "sqlserver", "mssql":
		return &MSSQLDialect{}, nil
	case "oracle":
		return &OracleDialect{}, nil
	case "sqlite":
		return &SQLiteDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported source driver %q", driver)
	}
}

// Ensure interface implementation
var _ Dialect = (*DuckDBDialect)(nil)
var _ Dialect = (*MysqlDialect)(nil)
var _ Dialect = (*PostgresDialect)(nil)
var _ Dialect = (*MSSQLDialect)(nil)
var _ Dialect = (*OracleDialect)(nil)
var _ Dialect = (*SQLiteDialect)(nil)
