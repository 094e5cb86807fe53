package gorm

import "strings"

// Postgres SQLSTATE 23505 (unique_violation) and 23503 (foreign_key_violation)
// surface through gorm as driver errors; match on the code rather than the
// message wording.

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}

func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23503")
}
