package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	Err        error  `json:"-"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	ErrorText  string `json:"error,omitempty"`
}

func RenderErr(ctx *gin.Context, e *Err) {
	ctx.AbortWithStatusJSON(e.StatusCode, e)
}

func newErr(status int, err error) *Err {
	e := &Err{
		Err:        err,
		StatusCode: status,
		Message:    http.StatusText(status),
	}
	if err != nil {
		e.ErrorText = err.Error()
	}
	return e
}

func ErrBadRequest(err error) *Err {
	return newErr(http.StatusBadRequest, err)
}

func ErrUnauthorized(err error) *Err {
	return newErr(http.StatusUnauthorized, err)
}

func ErrWrongCredentials(err error) *Err {
	e := newErr(http.StatusUnauthorized, err)
	e.Message = "wrong credentials"
	return e
}

func ErrPermissionDenied(err error) *Err {
	return newErr(http.StatusForbidden, err)
}

func ErrNotFound(resource, key string, value any) *Err {
	return newErr(http.StatusNotFound, fmt.Errorf("%v with %v %v not found", resource, key, value))
}

// ErrMissing is a not-found reported by a lower layer rather than by a lookup here.
func ErrMissing(err error, message string) *Err {
	e := newErr(http.StatusNotFound, err)
	if message != "" {
		e.Message = message
	}
	return e
}

// ErrBadGateway reports a failure answered by the remote API. message is shown to the user.
func ErrBadGateway(err error, message string) *Err {
	e := newErr(http.StatusBadGateway, err)
	if message != "" {
		e.Message = message
	}
	return e
}

func ErrInternalServerError(err error) *Err {
	zap.L().Error("internal server error", zap.Error(err))

	e := newErr(http.StatusInternalServerError, err)
	e.ErrorText = ""
	return e
}
