package testing

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyPress creates a key press message for printable input.
func KeyPress(key string) tea.KeyMsg {
	return tea.KeyMsg{
		Type:  tea.KeyRunes,
		Runes: []rune(key),
	}
}

// Key creates a message for a special key such as tea.KeyPgDown.
func Key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// KeyDown creates a down arrow key message.
func KeyDown() tea.KeyMsg { return Key(tea.KeyDown) }

// KeyUp creates an up arrow key message.
func KeyUp() tea.KeyMsg { return Key(tea.KeyUp) }

// KeyEnter creates an enter key message.
func KeyEnter() tea.KeyMsg { return Key(tea.KeyEnter) }

// KeyEsc creates an escape key message.
func KeyEsc() tea.KeyMsg { return Key(tea.KeyEsc) }

// KeyBackspace creates a backspace key message.
func KeyBackspace() tea.KeyMsg { return Key(tea.KeyBackspace) }

// WindowSize creates a window size message for testing responsive layouts.
func WindowSize(width, height int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{
		Width:  width,
		Height: height,
	}
}

// Type returns one key message per rune of text.
func Type(text string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(text))
	for _, r := range text {
		msgs = append(msgs, tea.KeyMsg{
			Type:  tea.KeyRunes,
			Runes: []rune{r},
		})
	}
	return msgs
}
