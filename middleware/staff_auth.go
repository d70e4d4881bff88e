package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Xushengqwer/go-common/constants"
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Xushengqwer/foundation_service/myErrors"
	"github.com/Xushengqwer/foundation_service/workflow"
)

// ActorKey gin.Context 中保存当前后台账号的键
const ActorKey = "staffActor"

// StaffAuthenticator 校验令牌并加载账号当前角色，service.AuthService 实现了该接口
type StaffAuthenticator interface {
	ParseToken(token string) (uint64, error)
	ResolveActor(ctx context.Context, accountID uint64) (workflow.Actor, error)
}

// StaffAuth 校验 Authorization: Bearer <token>，通过后把账号 ID 与 Actor 写入上下文。
// 令牌缺失、无效或账号已停用时直接返回 401。
func StaffAuth(auth StaffAuthenticator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !found || token == "" {
			response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "缺少登录令牌")
			c.Abort()
			return
		}

		accountID, err := auth.ParseToken(token)
		if err != nil {
			logger.Debug("登录令牌校验失败", zap.Error(err))
			response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "登录令牌无效或已过期")
			c.Abort()
			return
		}

		actor, err := auth.ResolveActor(c.Request.Context(), accountID)
		if err != nil {
			if errors.Is(err, myErrors.ErrInvalidToken) {
				response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "账号不存在或已停用")
			} else {
				logger.Error("加载后台账号失败", zap.Uint64("accountID", accountID), zap.Error(err))
				response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "加载账号信息失败")
			}
			c.Abort()
			return
		}

		c.Set(string(constants.UserIDKey), strconv.FormatUint(actor.AccountID, 10))
		c.Set(ActorKey, actor)
		c.Next()
	}
}

// ActorFrom 取出 StaffAuth 写入的 Actor
func ActorFrom(c *gin.Context) (workflow.Actor, bool) {
	v, ok := c.Get(ActorKey)
	if !ok {
		return workflow.Actor{}, false
	}
	actor, ok := v.(workflow.Actor)
	return actor, ok
}
