package api

import (
	"sort"
	"strings"
)

// ValidationError はフィールド単位の検証エラー（422）
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError は空の ValidationError を作成する
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

// NewFieldError は1フィールドの検証エラーを作成する
func NewFieldError(field, message string) *ValidationError {
	return NewValidationError().Add(field, message)
}

// Add はフィールドにメッセージを追加する
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

// HasErrors はエラーが1件以上あるかを返す
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "入力値が不正です: " + strings.Join(fields, ", ")
}
