package postgres

import (
	"errors"

	"github.com/lib/pq"
)

// PostgreSQL のエラーコード
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidText         = "22P02"
	codeNumericOutOfRange   = "22003"
)

func pqError(err error) (*pq.Error, bool) {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func isUniqueViolation(err error) bool {
	pgErr, ok := pqError(err)
	return ok && pgErr.Code == codeUniqueViolation
}

// foreignKeyConstraint は外部キー違反であれば制約名を返す
func foreignKeyConstraint(err error) (string, bool) {
	pgErr, ok := pqError(err)
	if !ok || pgErr.Code != codeForeignKeyViolation {
		return "", false
	}
	return pgErr.Constraint, true
}

// isInvalidID は UUID 列に不正な文字列が渡された場合に true を返す
// 該当行が存在しない場合と同じ扱いにする
func isInvalidID(err error) bool {
	pgErr, ok := pqError(err)
	return ok && pgErr.Code == codeInvalidText
}

// isOutOfRange は数値が列の型の範囲外の場合に true を返す
func isOutOfRange(err error) bool {
	pgErr, ok := pqError(err)
	return ok && pgErr.Code == codeNumericOutOfRange
}
