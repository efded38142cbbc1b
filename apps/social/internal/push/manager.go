package push

import (
	"sync"

	"github.com/leyanessantiago/activate-api/pkg/metrics"
)

// Manager 管理本实例上所有在线连接，按 user_uuid -> conn_id 索引。
// 一个用户可以同时在多个终端在线，动态推送给其全部连接。
type Manager struct {
	mu       sync.RWMutex
	byUser   map[string]map[string]*Client
	count    int
	shutdown bool
}

// NewManager 创建连接管理器
func NewManager() *Manager {
	return &Manager{byUser: make(map[string]map[string]*Client)}
}

// Register 注册连接，Shutdown 之后返回 false
func (m *Manager) Register(client *Client) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.shutdown {
		return false
	}

	conns, ok := m.byUser[client.UserUUID()]
	if !ok {
		conns = make(map[string]*Client)
		m.byUser[client.UserUUID()] = conns
	}
	if _, exists := conns[client.ConnID()]; !exists {
		m.count++
	}
	conns[client.ConnID()] = client
	metrics.SetPushConnections(m.count)
	return true
}

// Unregister 注销连接，只删除与入参完全一致的连接
func (m *Manager) Unregister(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	conns, ok := m.byUser[client.UserUUID()]
	if !ok || conns[client.ConnID()] != client {
		return
	}
	delete(conns, client.ConnID())
	if len(conns) == 0 {
		delete(m.byUser, client.UserUUID())
	}
	m.count--
	metrics.SetPushConnections(m.count)
}

// SendToUser 向用户的全部在线连接投递，返回成功入队的连接数
func (m *Manager) SendToUser(userUUID string, msg []byte) int {
	m.mu.RLock()
	conns := m.byUser[userUUID]
	clients := make([]*Client, 0, len(conns))
	for _, client := range conns {
		clients = append(clients, client)
	}
	m.mu.RUnlock()

	sent := 0
	for _, client := range clients {
		if client.Enqueue(msg) {
			sent++
		}
	}
	return sent
}

// Count 在线连接数
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.count
}

// Shutdown 关闭全部连接并拒绝后续注册（进程退出时调用）
func (m *Manager) Shutdown() {
	m.mu.Lock()
	if m.shutdown {
		m.mu.Unlock()
		return
	}
	m.shutdown = true

	clients := make([]*Client, 0, m.count)
	for _, conns := range m.byUser {
		for _, client := range conns {
			clients = append(clients, client)
		}
	}
	m.byUser = make(map[string]map[string]*Client)
	m.count = 0
	m.mu.Unlock()

	metrics.SetPushConnections(0)
	for _, client := range clients {
		client.Close()
	}
}
