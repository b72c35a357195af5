// Package dialect provides SQL fragment helpers for SQLite/PostgreSQL portability.
package dialect

const (
	SQLite3 = "sqlite3"
	PGX     = "pgx"
)

// IsPostgres returns true if the driver is PostgreSQL (pgx).
func IsPostgres(driver string) bool {
	return driver == PGX
}

// Timestamp returns the column type used for timestamps.
func Timestamp(driver string) string {
	if IsPostgres(driver) {
		return "TIMESTAMPTZ"
	}
	return "TIMESTAMP"
}

// Now returns the SQL expression for the current timestamp.
func Now(driver string) string {
	if IsPostgres(driver) {
		return "NOW()"
	}
	return "datetime('now')"
}

// DateOf returns the SQL expression extracting the calendar date of a
// timestamp column.
func DateOf(driver, column string) string {
	if IsPostgres(driver) {
		return "(" + column + ")::date"
	}
	return "date(" + column + ")"
}

// CurrentDate returns the SQL expression for the current calendar date.
func CurrentDate(driver string) string {
	if IsPostgres(driver) {
		return "CURRENT_DATE"
	}
	return "date('now')"
}
