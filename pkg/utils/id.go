package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// GenerateOrderID 生成人类可读的订单编号
// 格式: ORD + 日期 + 毫秒时间戳后6位 + 3位随机数
// 多实例并发下碰撞概率极低 最终唯一性由数据库唯一索引兜底
func GenerateOrderID(now time.Time) string {
	millis := now.UnixMilli() % 1000000
	return fmt.Sprintf("ORD%s%06d%03d", now.Format("20060102"), millis, rand.Intn(1000))
}

// GenerateProductID 生成商品编号 格式 PROD + 4位随机数
func GenerateProductID() string {
	return fmt.Sprintf("PROD%04d", rand.Intn(10000))
}

// NormalizeMobile 归一化手机号 去掉空格和连字符
func NormalizeMobile(mobile string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, mobile)
}
