package relation

// Action 状态迁移后需要对存储执行的写操作
type Action int8

const (
	ActionCreate Action = iota + 1
	ActionUpdate
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Op 对关系边的操作
type Op int8

const (
	OpSend Op = iota + 1
	OpAccept
	OpDecline
	OpMute
	OpUnmute
	OpBlock
	OpUnblock
	OpRemove
	OpFollow
)

func (o Op) String() string {
	switch o {
	case OpSend:
		return "send"
	case OpAccept:
		return "accept"
	case OpDecline:
		return "decline"
	case OpMute:
		return "mute"
	case OpUnmute:
		return "unmute"
	case OpBlock:
		return "block"
	case OpUnblock:
		return "unblock"
	case OpRemove:
		return "remove"
	case OpFollow:
		return "follow"
	default:
		return "unknown"
	}
}

var opByName = map[string]Op{
	"send":    OpSend,
	"accept":  OpAccept,
	"decline": OpDecline,
	"mute":    OpMute,
	"unmute":  OpUnmute,
	"block":   OpBlock,
	"unblock": OpUnblock,
	"remove":  OpRemove,
	"follow":  OpFollow,
}

// ParseOp 按名称解析操作（路由参数使用）
func ParseOp(name string) (Op, bool) {
	op, ok := opByName[name]
	return op, ok
}
