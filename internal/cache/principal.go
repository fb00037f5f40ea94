package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/model"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// PrincipalTTL 凭证缓存新鲜度窗口
// 窗口内允许读到旧值 数据源永远是MySQL
const PrincipalTTL = 5 * time.Minute

// PrincipalCache 按用户ID缓存账号信息 降低每次请求的数据库往返
// rdb 为 nil 时所有操作直接穿透 方便测试和无redis部署
type PrincipalCache struct {
	rdb redis.UniversalClient
}

func NewPrincipalCache(rdb redis.UniversalClient) *PrincipalCache {
	return &PrincipalCache{rdb: rdb}
}

func principalKey(userID int64) string {
	return fmt.Sprintf("principal:%d", userID)
}

// Get 命中返回缓存的用户 未命中或redis异常返回nil让调用方落库
func (c *PrincipalCache) Get(ctx context.Context, userID int64) *model.User {
	if c.rdb == nil {
		return nil
	}

	data, err := c.rdb.Get(ctx, principalKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.WarnContext(ctx, "principal cache read failed", "user_id", userID, "err", err)
		}
		return nil
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil
	}
	return &user
}

// Set 写缓存 失败只记日志 不影响主流程
func (c *PrincipalCache) Set(ctx context.Context, user *model.User) {
	if c.rdb == nil || user == nil {
		return
	}

	data, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, principalKey(user.ID), data, PrincipalTTL).Err(); err != nil {
		logger.WarnContext(ctx, "principal cache write failed", "user_id", user.ID, "err", err)
	}
}

// Invalidate 账号信息或密码变更后清缓存
// 并发失效竞争不加锁 最多读到一个TTL窗口内的旧值 可接受
func (c *PrincipalCache) Invalidate(ctx context.Context, userID int64) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, principalKey(userID)).Err(); err != nil {
		logger.WarnContext(ctx, "principal cache invalidate failed", "user_id", userID, "err", err)
	}
}
