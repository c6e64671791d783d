package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-event-management-api/internal/api"
	"github.com/sanosuguru/go-event-management-api/internal/domain/booking"
	"github.com/sanosuguru/go-event-management-api/internal/domain/event"
	"github.com/sanosuguru/go-event-management-api/internal/domain/user"
	"github.com/sanosuguru/go-event-management-api/internal/pkg/auth"
)

var (
	errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	errForbidden    = echo.NewHTTPError(http.StatusForbidden, "Forbidden")
	errBadRequest   = echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
)

// domainFieldErrors はドメインの検証エラーとレスポンスのフィールドの対応
var domainFieldErrors = []struct {
	target  error
	field   string
	message string
}{
	{user.ErrNameRequired, "name", "The name field is required."},
	{user.ErrEmailRequired, "email", "The email field is required."},
	{user.ErrPasswordRequired, "password", "The password field is required."},
	{event.ErrTitleRequired, "title", "The title field is required."},
	{event.ErrLocationRequired, "location", "The location field is required."},
	{event.ErrStartTimeRequired, "start_time", "The start_time field is required."},
	{event.ErrInvalidEventTime, "end_time", "The end_time must be a date after or equal to start_time."},
	{event.ErrInvalidCapacity, "capacity", "The capacity must be at least 1."},
	{booking.ErrEventIDRequired, "event_id", "The event_id field is required."},
	{booking.ErrInvalidSeats, "seats", "The seats must be at least 1."},
	{booking.ErrInvalidStatus, "status", "The selected status is invalid."},
	{booking.ErrInsufficientCapacity, "seats", "The seats exceed the remaining capacity of the event."},
}

// commonError はハンドラー共通のエラー変換を行う
// 該当しない場合は err をそのまま返す（エラーハンドラーで500になる）
func commonError(err error) error {
	if errors.Is(err, auth.ErrForbidden) {
		return errForbidden
	}
	for _, fe := range domainFieldErrors {
		if errors.Is(err, fe.target) {
			return api.NewFieldError(fe.field, fe.message)
		}
	}
	return err
}

func notFound(message string) error {
	return echo.NewHTTPError(http.StatusNotFound, message)
}

// bindRequest はクエリ文字列と JSON ボディの両方から値を読み込む（ボディ優先）
// 型が合わない値は該当フィールドの検証エラー（422）にする
func bindRequest(c echo.Context, req interface{}) error {
	binder := &echo.DefaultBinder{}
	if err := binder.BindQueryParams(c, req); err != nil {
		return bindError(err, func(value string) string { return queryKeyOf(c, value) })
	}
	if err := binder.BindBody(c, req); err != nil {
		return bindError(err, nil)
	}
	return nil
}

// bindError はバインド失敗を検証エラーに変換する。フィールドを特定できなければ400
func bindError(err error, fieldOf func(value string) string) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return api.NewFieldError(typeErr.Field, typeMessage(typeErr.Field, typeErr.Type))
	}
	var numErr *strconv.NumError
	if fieldOf != nil && errors.As(err, &numErr) {
		if field := fieldOf(numErr.Num); field != "" {
			return api.NewFieldError(field, fmt.Sprintf("The %s must be an integer.", field))
		}
	}
	return errBadRequest
}

var jsonNumberType = reflect.TypeOf(json.Number(""))

func typeMessage(field string, typ reflect.Type) string {
	if typ == jsonNumberType {
		return fmt.Sprintf("The %s must be a number.", field)
	}
	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprintf("The %s must be an integer.", field)
	case reflect.String:
		return fmt.Sprintf("The %s must be a string.", field)
	}
	return fmt.Sprintf("The %s is invalid.", field)
}

// queryKeyOf は value を値に持つクエリパラメータ名を返す
func queryKeyOf(c echo.Context, value string) string {
	for key, values := range c.QueryParams() {
		for _, v := range values {
			if v == value {
				return key
			}
		}
	}
	return ""
}

// validateRequest は c.Validate の結果を *api.ValidationError として返す
// 検証エラーがなければ空の ValidationError を返す
func validateRequest(c echo.Context, req interface{}) (*api.ValidationError, error) {
	err := c.Validate(req)
	if err == nil {
		return api.NewValidationError(), nil
	}
	var ve *api.ValidationError
	if errors.As(err, &ve) {
		return ve, nil
	}
	return nil, err
}
