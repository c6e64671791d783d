package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-event-management-api/internal/pkg/logger"
)

// ErrorResponse はエラーレスポンスの統一フォーマット
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code,omitempty"`
}

// ValidationErrorResponse は検証エラーのレスポンス
type ValidationErrorResponse struct {
	Errors map[string][]string `json:"errors"`
	Code   int                 `json:"code"`
}

// CustomHTTPErrorHandler はカスタムエラーハンドラー
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		respond(c, http.StatusUnprocessableEntity, ValidationErrorResponse{
			Errors: ve.Fields,
			Code:   http.StatusUnprocessableEntity,
		})
		return
	}

	var (
		code    = http.StatusInternalServerError
		message = http.StatusText(http.StatusInternalServerError)
	)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}

	// 5xx は原因をログに残し、レスポンスには詳細を含めない
	if code >= 500 {
		logger.Error("サーバーエラー",
			zap.Int("status", code),
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
		message = http.StatusText(code)
	}

	if c.Request().Method == http.MethodHead {
		if err := c.NoContent(code); err != nil {
			logger.Error("エラーレスポンス送信失敗", zap.Error(err))
		}
		return
	}
	respond(c, code, ErrorResponse{Error: message, Code: code})
}

func respond(c echo.Context, code int, body interface{}) {
	if err := c.JSON(code, body); err != nil {
		logger.Error("エラーレスポンス送信失敗", zap.Error(err))
	}
}
