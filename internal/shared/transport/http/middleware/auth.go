package middleware

import (
	"context"
	"net/http"
	"strings"

	"GeoPits/internal/shared/security"
	"GeoPits/internal/shared/transport"

	"github.com/gin-gonic/gin"
)

const ctxKeyGameID = "gid"

type gameIDKey struct{}

// Auth 校验 Bearer token；ws 握手带不了 header，允许放在 ?token= 里。
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			abortUnauthorized(c, "缺少 token")
			return
		}
		claims, err := security.ParseToken(token)
		if err != nil || claims.Gid <= 0 {
			transport.SetErrorReason(c.Request.Context(), "invalid token")
			abortUnauthorized(c, "token 无效")
			return
		}
		c.Set(ctxKeyGameID, claims.Gid)
		// ws 升级后拿不到 gin.Context，从 request context 里取
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), gameIDKey{}, claims.Gid))
		c.Next()
	}
}

// GameID 读取 Auth 写入的对局 id。
func GameID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ctxKeyGameID)
	if !ok {
		return 0, false
	}
	gid, ok := v.(int64)
	return gid, ok
}

// GameIDFromContext 读取 Auth 写入 request context 的对局 id。
func GameIDFromContext(ctx context.Context) (int64, bool) {
	gid, ok := ctx.Value(gameIDKey{}).(int64)
	return gid, ok
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code": transport.Unauthorized,
		"msg":  msg,
	})
}
