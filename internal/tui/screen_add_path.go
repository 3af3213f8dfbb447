package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// updateAddPathScreen обрабатывает ввод путей к добавляемым файлам.
// Несколько путей разделяются запятыми.
func (m *model) updateAddPathScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEsc:
			m.pathInput.Blur()
			m.state = galleryScreen
			return m, tea.ClearScreen
		case keyEnter:
			paths := splitPaths(m.pathInput.Value())
			if len(paths) == 0 {
				return m.setStatusMessage("Путь не может быть пустым")
			}
			m.pathInput.Blur()
			// Чтение и декодирование — в фоне, UI не блокируется
			return m, ingestFilesCmd(paths)
		}
	}

	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

// splitPaths разбивает введенную строку на пути, отбрасывая пустые.
func splitPaths(raw string) []string {
	parts := strings.Split(raw, ",")
	paths := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// viewAddPathScreen отрисовывает экран ввода пути.
func (m *model) viewAddPathScreen() string {
	var sb strings.Builder
	sb.WriteString("Добавление изображений\n\n")
	sb.WriteString("Укажите путь к файлу (несколько — через запятую):\n\n")
	sb.WriteString(m.pathInput.View())
	return sb.String()
}
