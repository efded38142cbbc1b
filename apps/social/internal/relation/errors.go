package relation

import "errors"

var (
	// ErrSelf 不能和自己建立关系
	ErrSelf = errors.New("relation: cannot relate to self")
	// ErrDuplicate 这对用户已存在关系边
	ErrDuplicate = errors.New("relation: duplicate relation")
	// ErrNotFound 这对用户不存在关系边
	ErrNotFound = errors.New("relation: edge not found")
	// ErrInvalidTransition 当前状态不满足操作前置条件
	ErrInvalidTransition = errors.New("relation: invalid transition")
)
