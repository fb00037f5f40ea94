package e

import (
	"errors"
	"fmt"
)

// AppError 业务错误 携带错误码和底层错误
// service层返回 handler层统一映射到HTTP响应
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (a *AppError) Error() string {
	if a.Err != nil {
		return fmt.Sprintf("%s: %v", a.Message, a.Err)
	}
	return a.Message
}

func (a *AppError) Unwrap() error {
	return a.Err
}

// New 按错误码构造业务错误
func New(code int) *AppError {
	return &AppError{Code: code, Message: GetMsg(code)}
}

// NewMsg 按错误码构造业务错误 覆盖默认消息
func NewMsg(code int, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}

// Wrap 包装底层错误（数据库等） 对外消息仍取自错误码表
func Wrap(code int, err error) *AppError {
	return &AppError{Code: code, Message: GetMsg(code), Err: err}
}

// From 任意error转AppError 非业务错误一律归为ERROR
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(ERROR, err)
}
