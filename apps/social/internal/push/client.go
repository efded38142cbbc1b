package push

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	defaultSendQueueSize = 64
	wsWriteTimeout       = 5 * time.Second
)

// MessageHandler 上行帧回调
type MessageHandler func(raw []byte)

// CloseHandler 连接关闭回调，读写循环退出后执行（例如从 Manager 注销）
type CloseHandler func()

// Client 封装单条 WebSocket 连接。
// 写操作只在 writeLoop 中进行，业务方通过 Enqueue 投递，慢连接不会阻塞 Kafka 消费。
type Client struct {
	conn     *websocket.Conn
	userUUID string
	connID   string
	send     chan []byte
	done     chan struct{}
	once     sync.Once
}

// NewClient 创建连接包装对象，connID 区分同一用户的多个终端
func NewClient(conn *websocket.Conn, userUUID, connID string) *Client {
	return &Client{
		conn:     conn,
		userUUID: userUUID,
		connID:   connID,
		send:     make(chan []byte, defaultSendQueueSize),
		done:     make(chan struct{}),
	}
}

func (c *Client) UserUUID() string { return c.userUUID }

func (c *Client) ConnID() string { return c.connID }

// Done 连接关闭信号
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Enqueue 投递待发送消息。
// 返回 false 表示连接已关闭或队列已满，调用方自行决定丢弃还是断开。
func (c *Client) Enqueue(msg []byte) bool {
	if len(msg) == 0 {
		return true
	}
	cloned := append([]byte(nil), msg...)
	select {
	case <-c.done:
		return false
	case c.send <- cloned:
		return true
	default:
		return false
	}
}

// Run 启动读写循环并阻塞到 readLoop 结束，退出时保证执行 Close 与 onClose
func (c *Client) Run(ctx context.Context, onMessage MessageHandler, onClose CloseHandler) {
	defer func() {
		c.Close()
		if onClose != nil {
			onClose()
		}
	}()

	go c.writeLoop(ctx)
	c.readLoop(ctx, onMessage)
}

// Close 幂等关闭
func (c *Client) Close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

func (c *Client) readLoop(ctx context.Context, onMessage MessageHandler) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		default:
		}

		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if onMessage != nil {
			onMessage(raw)
		}
	}
}

func (c *Client) writeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.Close()
				return
			}
		}
	}
}
