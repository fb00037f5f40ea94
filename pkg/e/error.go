package e

import "net/http"

// 错误码定义
const (
	SUCCESS        = 0
	ERROR          = 1
	INVALID_PARAMS = 2

	ERROR_AUTH_CHECK_TOKEN_FAIL    = 10001
	ERROR_AUTH_CHECK_TOKEN_TIMEOUT = 10002
	ERROR_AUTH_TOKEN               = 10003
	ERROR_AUTH                     = 10004
	ERROR_FORBIDDEN                = 10005

	ERROR_USER_EXISTS     = 20001
	ERROR_USER_NOT_EXISTS = 20002
	ERROR_PASSWORD        = 20003
	ERROR_EMAIL_IN_USE    = 20004
	ERROR_WEAK_PASSWORD   = 20005

	ERROR_PRODUCT_NOT_EXISTS = 30001
	ERROR_PRODUCT_ID_EXISTS  = 30002

	ERROR_ORDER_NOT_EXISTS        = 40001
	ERROR_ORDER_STATUS            = 40002
	ERROR_ORDER_STATUS_TRANSITION = 40003
	ERROR_ORDER_ID_DUPLICATE      = 40004
	ERROR_ORDER_PRODUCT_INVALID   = 40005

	ERROR_INQUIRY_NOT_EXISTS = 50001
	ERROR_INQUIRY_STATUS     = 50002
)

var MsgFlags = map[int]string{
	SUCCESS:        "Success",
	ERROR:          "Internal server error",
	INVALID_PARAMS: "Invalid request parameters",

	ERROR_AUTH_CHECK_TOKEN_FAIL:    "Invalid token",
	ERROR_AUTH_CHECK_TOKEN_TIMEOUT: "Token expired",
	ERROR_AUTH_TOKEN:               "Failed to generate token",
	ERROR_AUTH:                     "Invalid credentials",
	ERROR_FORBIDDEN:                "Permission denied",

	ERROR_USER_EXISTS:     "User already exists",
	ERROR_USER_NOT_EXISTS: "User not found",
	ERROR_PASSWORD:        "Current password is incorrect",
	ERROR_EMAIL_IN_USE:    "Email already in use",
	ERROR_WEAK_PASSWORD:   "Password must be at least 8 characters",

	ERROR_PRODUCT_NOT_EXISTS: "Product not found",
	ERROR_PRODUCT_ID_EXISTS:  "Product ID already exists",

	ERROR_ORDER_NOT_EXISTS:        "Order not found",
	ERROR_ORDER_STATUS:            "Invalid status",
	ERROR_ORDER_STATUS_TRANSITION: "Status transition not allowed",
	ERROR_ORDER_ID_DUPLICATE:      "Order ID already exists. Please try again.",
	ERROR_ORDER_PRODUCT_INVALID:   "Product not found",

	ERROR_INQUIRY_NOT_EXISTS: "Inquiry not found",
	ERROR_INQUIRY_STATUS:     "Invalid inquiry status",
}

func GetMsg(code int) string {
	msg, ok := MsgFlags[code]
	if ok {
		return msg
	}
	return MsgFlags[ERROR]
}

// statusFlags 错误码到HTTP状态码的映射
// 未列出的业务错误码一律400
var statusFlags = map[int]int{
	SUCCESS:        http.StatusOK,
	ERROR:          http.StatusInternalServerError,
	INVALID_PARAMS: http.StatusBadRequest,

	ERROR_AUTH_CHECK_TOKEN_FAIL:    http.StatusUnauthorized,
	ERROR_AUTH_CHECK_TOKEN_TIMEOUT: http.StatusUnauthorized,
	ERROR_AUTH_TOKEN:               http.StatusInternalServerError,
	ERROR_AUTH:                     http.StatusUnauthorized,
	ERROR_FORBIDDEN:                http.StatusForbidden,

	ERROR_USER_NOT_EXISTS:    http.StatusNotFound,
	ERROR_PASSWORD:           http.StatusUnauthorized,
	ERROR_ORDER_NOT_EXISTS:   http.StatusNotFound,
	ERROR_PRODUCT_NOT_EXISTS: http.StatusNotFound,
	ERROR_INQUIRY_NOT_EXISTS: http.StatusNotFound,

	ERROR_ORDER_ID_DUPLICATE: http.StatusConflict,
	ERROR_PRODUCT_ID_EXISTS:  http.StatusConflict,
}

// GetStatusCode 返回错误码对应的HTTP状态码
func GetStatusCode(code int) int {
	if status, ok := statusFlags[code]; ok {
		return status
	}
	return http.StatusBadRequest
}
