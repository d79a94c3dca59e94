// Package response serializes every outcome through the standard envelope:
// success: {ok: true, data, meta: {request_id, paging?}}
// error:   {ok: false, error: {code, message, detail?}, meta: {request_id}}
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/labs-polaris/Polaris-Back-Web/internal/apperr"
	"github.com/labs-polaris/Polaris-Back-Web/internal/types"
)

type Paging struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	HasNext  bool  `json:"has_next"`
}

type Meta struct {
	RequestID string  `json:"request_id"`
	Paging    *Paging `json:"paging,omitempty"`
}

type errorBody struct {
	Code    apperr.Code `json:"code"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

type successEnvelope struct {
	OK   bool        `json:"ok"`
	Data interface{} `json:"data"`
	Meta Meta        `json:"meta"`
}

type errorEnvelope struct {
	OK    bool      `json:"ok"`
	Error errorBody `json:"error"`
	Meta  Meta      `json:"meta"`
}

func NewPaging(total int64, page, pageSize int) *Paging {
	return &Paging{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		HasNext:  int64(page*pageSize) < total,
	}
}

func OK(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, successEnvelope{
		OK:   true,
		Data: data,
		Meta: Meta{RequestID: requestID(ctx)},
	})
}

func Paged(ctx *gin.Context, data interface{}, paging *Paging) {
	ctx.JSON(http.StatusOK, successEnvelope{
		OK:   true,
		Data: data,
		Meta: Meta{RequestID: requestID(ctx), Paging: paging},
	})
}

func Fail(ctx *gin.Context, err *apperr.Error) {
	ctx.JSON(err.Status, errorEnvelope{
		OK: false,
		Error: errorBody{
			Code:    err.Code,
			Message: err.Message,
			Detail:  err.Detail,
		},
		Meta: Meta{RequestID: requestID(ctx)},
	})
}

// AbortFail is Fail for middleware, stopping the remaining chain.
func AbortFail(ctx *gin.Context, err *apperr.Error) {
	Fail(ctx, err)
	ctx.Abort()
}

func requestID(ctx *gin.Context) string {
	return ctx.GetString(types.ContextRequestIDKey)
}
