package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the repositories care about.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidTextRep      = "22P02"
)

func pgCode(err error) (string, *pgconn.PgError) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr
	}
	return "", nil
}

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	code, pgErr := pgCode(err)
	return code == codeUniqueViolation && pgErr.ConstraintName == constraintName
}

// IsForeignKeyViolation reports whether err is a foreign key violation (23503).
func IsForeignKeyViolation(err error) bool {
	code, _ := pgCode(err)
	return code == codeForeignKeyViolation
}

// ForeignKeyConstraint returns the violated constraint name, or "" when err
// is not a foreign key violation.
func ForeignKeyConstraint(err error) string {
	code, pgErr := pgCode(err)
	if code != codeForeignKeyViolation {
		return ""
	}
	return pgErr.ConstraintName
}

// IsInvalidEnumValue reports whether err is an invalid enum/text representation (22P02).
func IsInvalidEnumValue(err error) bool {
	code, _ := pgCode(err)
	return code == codeInvalidTextRep
}
