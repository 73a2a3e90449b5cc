package router

import (
	"errors"
	"net/http"

	"github.com/battlezone-labs/backend/pkg/errorx"
	"github.com/gin-gonic/gin"
)

type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{Code: 0, Data: data}
}

func writeError(ginCtx *gin.Context, err error) {
	errx := errorx.Error{}
	if !errors.As(err, &errx) {
		errx = errorx.Unknown
	}

	ginCtx.JSON(httpStatus(errx.Code), response{
		Code:  int64(errx.Code),
		Error: errx.Message,
	})
}

func httpStatus(code errorx.Code) int {
	switch code {
	case errorx.BadRequest, errorx.AlreadyExists,
		errorx.InsufficientBalance, errorx.DailyCapExceeded:
		return http.StatusBadRequest
	case errorx.Unauthenticated:
		return http.StatusUnauthorized
	case errorx.PermissionDenied:
		return http.StatusForbidden
	case errorx.NotFound:
		return http.StatusNotFound
	case errorx.TooManyRequests:
		return http.StatusTooManyRequests
	case errorx.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
