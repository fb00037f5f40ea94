package v1

import (
	"strconv"

	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/e"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// OK 成功响应 payload合并进统一信封
func OK(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// Fail 失败响应 业务错误映射HTTP状态码
// 系统错误对外只给通用消息 细节进日志 debug模式才回显
func Fail(c *gin.Context, err error) {
	appErr := e.From(err)

	if appErr.Code == e.ERROR {
		logger.ErrorContext(c.Request.Context(), "request failed",
			"path", c.FullPath(),
			"request_id", c.GetString("request_id"),
			"err", appErr,
		)
	}

	body := gin.H{
		"success": false,
		"code":    appErr.Code,
		"message": appErr.Message,
	}
	if appErr.Err != nil && gin.Mode() == gin.DebugMode {
		body["error"] = appErr.Err.Error()
	}

	c.JSON(e.GetStatusCode(appErr.Code), body)
}

func toInt(s string) int {
	r, _ := strconv.Atoi(s)
	return r
}

// pathID 解析路径里的数字ID 非法时报400
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		Fail(c, e.NewMsg(e.INVALID_PARAMS, "Invalid id"))
		return 0, false
	}
	return id, true
}
