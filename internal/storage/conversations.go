// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jeranaias/textkit/internal/reasoning"
	"github.com/jeranaias/textkit/internal/util"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is a persisted chat transcript.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Messages  []Message `json:"messages"`
}

// Message is one turn of a conversation. Content is stored raw, reasoning
// blocks included; readers strip them for display.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// New starts an empty conversation with a fresh ID.
func New(title, model string) *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        uuid.NewString(),
		Title:     title,
		Model:     model,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Append adds a message and returns it.
func (c *Conversation) Append(role, content string) Message {
	msg := Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = msg.Timestamp
	return msg
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// Preview returns the first user message without reasoning blocks, on one
// line and cut to width display columns.
func (c *Conversation) Preview(tags []reasoning.TagPair, width int) string {
	for _, msg := range c.Messages {
		if msg.Role != RoleUser {
			continue
		}
		text := reasoning.StripWith(msg.Content, tags)
		text = strings.Join(strings.Fields(text), " ")
		if text != "" {
			return util.TruncateWidth(text, width)
		}
	}
	return ""
}

// DisplayTitle returns the title, or a preview when the title is empty.
func (c *Conversation) DisplayTitle() string {
	if t := strings.TrimSpace(c.Title); t != "" {
		return util.RepairTrailingQuote(t)
	}
	if p := c.Preview(reasoning.DefaultTags(), 50); p != "" {
		return p
	}
	return "New conversation"
}

// =============================================================================
// FILE OPERATIONS
// =============================================================================

// LoadFile reads a conversation from a JSON file.
func LoadFile(path string) (*Conversation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrConversationNotFound)
		}
		return nil, err
	}

	var conv Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &conv, nil
}

// SaveFile writes conv to path as indented JSON, atomically. A missing ID or
// creation time is filled in.
func SaveFile(conv *Conversation, path string) error {
	if conv.ID == "" {
		conv.ID = uuid.NewString()
	}
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = time.Now()
	}
	if conv.UpdatedAt.Before(conv.CreatedAt) {
		conv.UpdatedAt = conv.CreatedAt
	}

	data, err := json.MarshalIndent(conv, "", "  ")
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(path, data, 0600)
}

// =============================================================================
// CONVERSATION STORE
// =============================================================================

// ConversationMeta is one row of List output. Title and Preview are
// display strings with reasoning removed.
type ConversationMeta struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Model        string    `json:"model"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
	Preview      string    `json:"preview"`
}

// Store keeps conversations as <id>.json files in one directory.
type Store struct {
	BaseDir string // ~/.textkit/conversations by default

	// MaxConversations caps the store; Save prunes the least recently
	// updated beyond it. 0 disables pruning.
	MaxConversations int
}

// DefaultStore opens the store under the user's home directory.
func DefaultStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewStore(filepath.Join(home, ".textkit", "conversations"))
}

// NewStore creates a store with a custom directory.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &Store{BaseDir: baseDir, MaxConversations: 100}, nil
}

// Save persists conv and returns its ID.
func (s *Store) Save(conv *Conversation) (string, error) {
	if err := SaveFile(conv, s.filePath(conv.ID)); err != nil {
		return "", err
	}
	if s.MaxConversations > 0 {
		s.enforceLimit()
	}
	return conv.ID, nil
}

// Load reads the conversation with the given ID.
func (s *Store) Load(id string) (*Conversation, error) {
	if !validID(id) {
		return nil, ErrConversationNotFound
	}
	return LoadFile(s.filePath(id))
}

// List returns all saved conversations, most recent first. Unreadable files
// are skipped.
func (s *Store) List() ([]ConversationMeta, error) {
	entries, err := os.ReadDir(s.BaseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []ConversationMeta{}, nil
		}
		return nil, err
	}

	metas := []ConversationMeta{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		conv, err := LoadFile(filepath.Join(s.BaseDir, entry.Name()))
		if err != nil {
			continue
		}
		metas = append(metas, ConversationMeta{
			ID:           conv.ID,
			Title:        conv.DisplayTitle(),
			Model:        conv.Model,
			UpdatedAt:    conv.UpdatedAt,
			MessageCount: conv.MessageCount(),
			Preview:      conv.Preview(reasoning.DefaultTags(), 80),
		})
	}

	slices.SortFunc(metas, func(a, b ConversationMeta) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return metas, nil
}

// Delete removes the conversation with the given ID.
func (s *Store) Delete(id string) error {
	if !validID(id) {
		return ErrConversationNotFound
	}
	if err := os.Remove(s.filePath(id)); err != nil {
		if os.IsNotExist(err) {
			return ErrConversationNotFound
		}
		return err
	}
	return nil
}

// enforceLimit removes the oldest conversations when over the limit.
func (s *Store) enforceLimit() {
	metas, err := s.List()
	if err != nil || len(metas) <= s.MaxConversations {
		return
	}
	for _, meta := range metas[s.MaxConversations:] {
		_ = s.Delete(meta.ID)
	}
}

func (s *Store) filePath(id string) string {
	return filepath.Join(s.BaseDir, id+".json")
}

// validID rejects IDs that would escape BaseDir.
func validID(id string) bool {
	return id != "" && !strings.ContainsAny(id, `/\`) && id != "." && id != ".."
}

// ErrConversationNotFound is returned, usually wrapped with the path, when
// a conversation file or ID does not exist.
var ErrConversationNotFound = errors.New("conversation not found")
