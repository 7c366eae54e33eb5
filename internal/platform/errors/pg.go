package errors

import (
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgCodes maps the SQLSTATEs the claim repos can hit; the rest fall back by class
var pgCodes = map[string]ErrorCode{
	"23505": ErrorCodeConflict,        // unique_violation
	"23503": ErrorCodeInvalidArgument, // foreign_key_violation
	"22001": ErrorCodeInvalidArgument, // string_data_right_truncation
	"22P02": ErrorCodeInvalidArgument, // invalid_text_representation
	"25006": ErrorCodeUnavailable,     // read_only_sql_transaction
	"57P03": ErrorCodeUnavailable,     // cannot_connect_now
}

var pgClasses = map[string]ErrorCode{
	"08": ErrorCodeUnavailable, // connection exception
	"23": ErrorCodeValidation,  // integrity constraint
	"40": ErrorCodeUnavailable, // transaction rollback, safe to retry
	"53": ErrorCodeUnavailable, // insufficient resources
}

// PgCode classifies a postgres error; ok is false when err carries no *pgconn.PgError
func PgCode(err error) (code ErrorCode, ok bool) {
	var pe *pgconn.PgError
	if !stderrs.As(err, &pe) {
		return ErrorCodeUnknown, false
	}
	if c, ok := pgCodes[pe.Code]; ok {
		return c, true
	}
	if len(pe.Code) >= 2 {
		if c, ok := pgClasses[pe.Code[:2]]; ok {
			return c, true
		}
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps a pgx error under msg with its classified code
// Errors already coded keep their code, other foreign errors become DB; nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := PgCode(err)
	if !ok {
		code = ErrorCodeDB
		if prev := find(err); prev != nil {
			code = prev.code
		}
	}
	e := &Error{code: code, msg: msg, cause: err}
	var pe *pgconn.PgError
	if stderrs.As(err, &pe) && pe.ColumnName != "" {
		e.field = pe.ColumnName
	}
	return e
}
