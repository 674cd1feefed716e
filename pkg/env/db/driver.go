package db

import "fmt"

const (
	driverMySQL      = "mysql"
	driverPostgreSQL = "pgx"

	driverMySQLPort      = 3306
	driverPostgreSQLPort = 5432

	driverMySQLFormat      = `%s:%s@tcp(%s:%d)/%s`
	driverPostgreSQLFormat = `postgres://%s:%s@%s:%d/%s`
)

// DriverType is the user-facing driver name; Name returns the name
// registered with database/sql.
type DriverType string

func (t DriverType) String() string {
	return t.Name()
}

func (t DriverType) Name() string {
	switch t {
	case "mysql":
		return driverMySQL
	case "postgresql", "postgres", "pgx":
		return driverPostgreSQL
	default:
		return ""
	}
}

func (t DriverType) Port() int {
	switch t.Name() {
	case driverMySQL:
		return driverMySQLPort
	case driverPostgreSQL:
		return driverPostgreSQLPort
	default:
		return 0
	}
}

func (t DriverType) DSN(user, password, host string, port int, name string) string {
	switch t.Name() {
	case driverMySQL:
		return fmt.Sprintf(driverMySQLFormat, user, password, host, port, name)
	case driverPostgreSQL:
		return fmt.Sprintf(driverPostgreSQLFormat, user, password, host, port, name)
	default:
		return ""
	}
}

func (t DriverType) IsValid() bool {
	return t.Name() != ""
}
