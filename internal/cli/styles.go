// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared lipgloss styles for command output.

package cli

import (
	"github.com/charmbracelet/lipgloss"
)

func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

var (
	// TitleStyle marks names: the program in version output, conversation
	// titles in list output.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

	// LabelStyle pads config keys into a column.
	LabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(28)

	// SuccessStyle colors inserted sentences.
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)

	// ErrorStyle colors errors and deleted sentences.
	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	// MarkupStyle labels markup spans in split output.
	MarkupStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))

	// DimStyle is for chunk headers, diff headers and hints.
	DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// RenderLabel renders a config key padded to the label column.
func RenderLabel(label string) string {
	return LabelStyle.Render(label)
}
