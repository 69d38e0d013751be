package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type CommonModel struct {
	Width  int
	Height int
}

// Session is the portfolio owner every screen acts for.
type Session struct {
	UserID   uuid.UUID
	Currency string
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}
