package rag

import (
	"sync"

	"github.com/google/uuid"

	"github.com/easyops/pgdocs-qa/pkg/core/message"
)

// ConversationState 对话状态
//
// 追加式的有序消息序列，由所属管道实例独占持有，
// 只被编排器修改。状态只存在于实例生命周期内，
// 不做持久化（进程重启丢失历史是有意为之）。
type ConversationState struct {
	mu    sync.RWMutex
	turns []message.Message
}

// NewConversationState 创建空的对话状态
func NewConversationState() *ConversationState {
	return &ConversationState{
		turns: make([]message.Message, 0),
	}
}

// Append 追加一条消息
func (s *ConversationState) Append(role message.Role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.append(role, content)
}

// AppendExchange 原子地追加一个问答轮次（用户 + 助手）
//
// 并发调用 AnswerQuestion 时，两个问答对不会交错。
func (s *ConversationState) AppendExchange(question, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.append(message.RoleUser, question)
	s.append(message.RoleAssistant, answer)
}

// append 追加消息；调用方需持有写锁
func (s *ConversationState) append(role message.Role, content string) {
	msg := message.NewMessage(role, content)
	msg.ID = uuid.New().String()
	s.turns = append(s.turns, msg)
}

// History 返回完整历史的副本
func (s *ConversationState) History() []message.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]message.Message, len(s.turns))
	copy(result, s.turns)
	return result
}

// Recent 返回最近 n 条消息的副本
func (s *ConversationState) Recent(n int) []message.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || n >= len(s.turns) {
		result := make([]message.Message, len(s.turns))
		copy(result, s.turns)
		return result
	}

	result := make([]message.Message, n)
	copy(result, s.turns[len(s.turns)-n:])
	return result
}

// Clear 清空历史
func (s *ConversationState) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = make([]message.Message, 0)
}

// Len 返回当前消息数量
func (s *ConversationState) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}
