// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists conversations as JSON documents.
//
// # Key Types
//
//   - Conversation, Message: the transcript, content stored raw
//   - Store: a directory of <id>.json files
//   - ConversationMeta: lightweight metadata for listing
//
// # Usage
//
//	conv := storage.New("Physics questions", "llama3")
//	conv.Append(storage.RoleUser, "What is $$E=mc^2$$?")
//	err := storage.SaveFile(conv, "physics.json")
//
//	store, err := storage.DefaultStore()
//	id, err := store.Save(conv)
//
// # Storage Location
//
// The default store lives in ~/.textkit/conversations/.
package storage
