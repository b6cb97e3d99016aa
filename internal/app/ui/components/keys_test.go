package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func Test_DefaultScrollKeys(t *testing.T) {
	k := DefaultScrollKeys()

	assert.Equal(t, []string{"up", "k"}, k.Up.Keys())
	assert.Equal(t, []string{"down", "j"}, k.Down.Keys())
	assert.Equal(t, []string{"home", "g"}, k.Top.Keys())
	assert.Equal(t, []string{"end", "G"}, k.Bottom.Keys())
	assert.Equal(t, []string{"ctrl+c"}, k.ForceQuit.Keys())
	assert.Len(t, k.Bindings(), 6)
}

func Test_ScrollKeys_Scroll(t *testing.T) {
	content := strings.TrimSuffix(strings.Repeat("line\n", 50), "\n")

	tests := []struct {
		name            string
		msg             tea.KeyMsg
		start           int
		expectedHandled bool
		expectedOffset  int
	}{
		{name: "Down", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, start: 0, expectedHandled: true, expectedOffset: 1},
		{name: "Up", msg: tea.KeyMsg{Type: tea.KeyUp}, start: 5, expectedHandled: true, expectedOffset: 4},
		{name: "Top", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")}, start: 20, expectedHandled: true, expectedOffset: 0},
		{name: "Bottom", msg: tea.KeyMsg{Type: tea.KeyEnd}, start: 0, expectedHandled: true, expectedOffset: 40},
		{name: "Other key", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, start: 3, expectedHandled: false, expectedOffset: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp := viewport.New(20, 10)
			vp.SetContent(content)
			vp.SetYOffset(tt.start)

			handled := DefaultScrollKeys().Scroll(&vp, tt.msg)

			assert.Equal(t, tt.expectedHandled, handled)
			assert.Equal(t, tt.expectedOffset, vp.YOffset)
		})
	}
}
