package push

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/leyanessantiago/activate-api/consts"
	"github.com/leyanessantiago/activate-api/pkg/ctxmeta"
	"github.com/leyanessantiago/activate-api/pkg/logger"
	"github.com/leyanessantiago/activate-api/pkg/result"
	"github.com/leyanessantiago/activate-api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// 来源校验交给前置网关，这里放开方便多端调试
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// Handler 处理 /ws 接入：鉴权、升级、维护连接生命周期。
// 连接只用于下行推送动态，上行只处理心跳。
type Handler struct {
	manager *Manager
}

// NewHandler 创建 WebSocket 入口
func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

// ServeWS 握手阶段还是普通 HTTP，鉴权失败按统一响应格式返回
// token 优先取 query（浏览器 WebSocket 无法自定义 header），其次取 Authorization
func (h *Handler) ServeWS(c *gin.Context) {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		token = strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
	}
	if token == "" {
		result.Fail(c, nil, consts.CodeUnauthorized)
		return
	}

	claims, err := util.ParseToken(token)
	if err != nil {
		if errors.Is(err, util.ErrTokenExpired) {
			result.Fail(c, nil, consts.CodeTokenExpired)
			return
		}
		result.Fail(c, nil, consts.CodeInvalidToken)
		return
	}

	connCtx := ctxmeta.WithUserUUID(ctxmeta.Propagate(ctxmeta.FromGin(c)), claims.UserUUID)

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn(connCtx, "WebSocket 升级失败", logger.ErrorField("error", err))
		return
	}

	h.handleConnection(connCtx, NewClient(conn, claims.UserUUID, util.NewUUID()))
}

func (h *Handler) handleConnection(ctx context.Context, client *Client) {
	if !h.manager.Register(client) {
		client.Close()
		return
	}

	logger.Info(ctx, "WebSocket 连接已建立",
		logger.String("conn_id", client.ConnID()),
		logger.Int("online_count", h.manager.Count()),
	)

	client.Run(ctx, func(raw []byte) {
		h.handleMessage(ctx, client, raw)
	}, func() {
		h.manager.Unregister(client)
		logger.Info(ctx, "WebSocket 连接已断开",
			logger.String("conn_id", client.ConnID()),
			logger.Int("online_count", h.manager.Count()),
		)
	})
}

func (h *Handler) handleMessage(ctx context.Context, client *Client, raw []byte) {
	env, err := ParseEnvelope(raw)
	if err != nil {
		h.sendError(ctx, client, wsInvalidFormatCode, "invalid frame format")
		return
	}

	switch env.Type {
	case FrameHeartbeat:
		ack, err := MarshalEnvelope(FrameHeartbeatAck, nil)
		if err != nil {
			logger.Warn(ctx, "心跳应答序列化失败", logger.ErrorField("error", err))
			return
		}
		if !client.Enqueue(ack) {
			client.Close()
		}
	default:
		h.sendError(ctx, client, wsUnsupportedCode, "unsupported message type")
	}
}

// sendError 写不进去说明连接已不可用，直接关闭
func (h *Handler) sendError(ctx context.Context, client *Client, code int, message string) {
	payload, err := MarshalEnvelope(FrameError, ErrorData{Code: code, Message: message})
	if err != nil {
		logger.Warn(ctx, "错误帧序列化失败",
			logger.Int("code", code),
			logger.ErrorField("error", err),
		)
		return
	}
	if !client.Enqueue(payload) {
		client.Close()
	}
}
