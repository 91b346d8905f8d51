package http

import (
	"context"
	"io"
	nethttp "net/http"

	"GeoPits/internal/shared/transport"
	"GeoPits/internal/shared/transport/http/middleware"
	"GeoPits/internal/world/app"
	"GeoPits/internal/world/interfaces/handler"
	"GeoPits/internal/world/interfaces/handler/http/dto"
	"GeoPits/modules/kit/logx"

	"github.com/gin-gonic/gin"
)

const maxMomentoBytes = 8 << 20

type HttpHandler struct {
	service *app.GameService
	ws      nethttp.Handler
	log     logx.Logger
}

// NewHttpHandler ws 为 nil 时不挂 /game/ws。
func NewHttpHandler(s *app.GameService, ws nethttp.Handler, log logx.Logger) *HttpHandler {
	return &HttpHandler{service: s, ws: ws, log: log}
}

func (h *HttpHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/game", h.Create)

	g := group.Group("/game", middleware.Auth())
	g.GET("", h.View)
	g.DELETE("", h.Delete)
	g.POST("/move", h.Move)
	g.POST("/locate", h.Locate)
	g.POST("/reset", h.Reset)
	g.GET("/pits", h.Pits)
	g.POST("/pits/:i/:j/collect", h.Collect)
	g.POST("/pits/:i/:j/deposit", h.Deposit)
	g.GET("/momento", h.ExportMomento)
	g.PUT("/momento", h.ImportMomento)
	g.DELETE("/momento", h.Wipe)
	if h.ws != nil {
		g.GET("/ws", gin.WrapH(h.ws))
	}
}

func (h *HttpHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	res, err := h.service.Create(ctx)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, res)
}

func (h *HttpHandler) View(c *gin.Context) {
	gid, ok := h.gameID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	view, err := h.service.View(ctx, gid)
	h.respond(ctx, c, view, err)
}

func (h *HttpHandler) Move(c *gin.Context) {
	gid, ok := h.gameID(c)
	if !ok {
		return
	}
	var req dto.MoveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}
	ctx := c.Request.Context()
	view, err := h.service.Move(ctx, gid, req.Direction)
	h.respond(ctx, c, view, err)
}

func (h *HttpHandler) Locate(c *gin.Context) {
	gid, ok := h.gameID(c)
	if !ok {
		return
	}
	var req dto.LocateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}
	ctx := c.Request.Context()
	view, err := h.service.Locate(ctx, gid, *req.Lat, *req.Lng)
	h.respond(ctx, c, view, err)
}

func (h *HttpHandler) Reset(c *gin.Context) {
	gid, ok := h.gameID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	view, err := h.service.Reset(ctx, gid)
	h.respond(ctx, c, view, err)
}

func (h *HttpHandler) Pits(c *gin.Context) {
	gid, ok := h.gameID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	res, err := h.service.Pits(ctx, gid)
	h.respond(ctx, c, res, err)
}

func (h *HttpHandler) Collect(c *gin.Context) {
	gid, ok := h.gameID(c)
	if !ok {
		return
	}
	var uri dto.PitURI
	var req dto.CollectReq
	if err := c.ShouldBindUri(&uri); err != nil {
		h.fail(c, transport.InvalidParam, "坐标有误")
		return
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}
	ctx := c.Request.Context()
	res, err := h.service.Collect(ctx, gid, *uri.I, *uri.J, req.Token)
	h.respond(ctx, c, res, err)
}

func (h *HttpHandler) Deposit(c *gin.Context) {
	gid, ok := h.gameID(c)
	if !ok {
		return
	}
	var uri dto.PitURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.fail(c, transport.InvalidParam, "坐标有误")
		return
	}
	ctx := c.Request.Context()
	res, err := h.service.Deposit(ctx, gid, *uri.I, *uri.J)
	h.respond(ctx, c, res, err)
}

// ExportMomento 直接返回 momento 本身，便于客户端原样保存。
func (h *HttpHandler) ExportMomento(c *gin.Context) {
	gid, ok := h.gameID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	raw, err := h.service.ExportMomento(ctx, gid)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	c.Data(nethttp.StatusOK, "application/json; charset=utf-8", raw)
}

func (h *HttpHandler) ImportMomento(c *gin.Context) {
	gid, ok := h.gameID(c)
	if !ok {
		return
	}
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxMomentoBytes))
	if err != nil || len(raw) == 0 {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}
	ctx := c.Request.Context()
	view, err := h.service.ImportMomento(ctx, gid, raw)
	h.respond(ctx, c, view, err)
}

func (h *HttpHandler) Wipe(c *gin.Context) {
	gid, ok := h.gameID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	view, err := h.service.Wipe(ctx, gid)
	h.respond(ctx, c, view, err)
}

// Delete 删档，data 为空。
func (h *HttpHandler) Delete(c *gin.Context) {
	gid, ok := h.gameID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	h.respond(ctx, c, nil, h.service.Delete(ctx, gid))
}

func (h *HttpHandler) gameID(c *gin.Context) (int64, bool) {
	gid, ok := middleware.GameID(c)
	if !ok {
		c.AbortWithStatusJSON(nethttp.StatusUnauthorized, dto.Error(transport.Unauthorized, "未登录"))
		return 0, false
	}
	return gid, true
}

func (h *HttpHandler) respond(ctx context.Context, c *gin.Context, data any, err error) {
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, data)
}

func (h *HttpHandler) ok(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, dto.Success(transport.OK, data))
}

func (h *HttpHandler) fail(c *gin.Context, code int, msg string) {
	c.JSON(nethttp.StatusOK, dto.Error(code, msg))
}

func (h *HttpHandler) error(ctx context.Context, c *gin.Context, err error) {
	code, msg := handler.HandleError(ctx, h.log, err)
	h.fail(c, code, msg)
}
