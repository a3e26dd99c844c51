package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"iris-draft-api/internal/interfaces/http/dto"
	apperrors "iris-draft-api/pkg/errors"
	"iris-draft-api/pkg/logger"
)

// respondBindError 请求体或参数校验失败，返回 422
func respondBindError(c *gin.Context, err error) {
	msg := "request validation failed"
	if errors.Is(err, io.EOF) {
		msg = "request body is required"
	}
	dto.UnprocessableEntity(c, msg, &dto.ErrorDetail{
		ErrorCode: string(apperrors.CodeValidationFailed),
		Details:   err.Error(),
	})
}

// respondAppError 按 AppError 的状态码返回，消息附带底层原因
func respondAppError(c *gin.Context, err error) {
	appErr := apperrors.AsAppError(err)
	dto.ErrorWithDetail(c, appErr.HTTPStatus, appErr.PublicMessage(), &dto.ErrorDetail{
		ErrorCode: string(appErr.Code),
		Details:   appErr.Detail,
	})
}

// respondStorageError 读取存储失败
func respondStorageError(c *gin.Context, what string, err error) {
	logger.Error(c.Request.Context(), "failed to read "+what, err)
	dto.ErrorWithDetail(c, http.StatusInternalServerError, fmt.Sprintf("failed to read %s", what), &dto.ErrorDetail{
		ErrorCode: string(apperrors.CodeStorageError),
	})
}
