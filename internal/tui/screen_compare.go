package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/imgkeeper/internal/preview"
)

// Шаг клавиатурного сдвига границы в процентах.
const boundaryNudgePercent = 2.0

// updateCompareScreen обрабатывает слайдер сравнения "до/после".
// Граница управляется мышью: нажатие внутри превью прыгает к курсору
// и начинает перетаскивание, перемещение двигает границу даже при
// выходе курсора за пределы превью, отпускание фиксирует позицию.
func (m *model) updateCompareScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		switch msg.Action {
		case tea.MouseActionPress:
			if msg.Button == tea.MouseButtonLeft {
				m.boundary.Press(msg.X)
			}
		case tea.MouseActionMotion:
			m.boundary.Move(msg.X)
		case tea.MouseActionRelease:
			m.boundary.Release()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case keyEsc:
			// Отмена во время перетаскивания тоже завершает его
			m.boundary.Release()
			m.state = editorScreen
			return m, tea.ClearScreen
		case "left":
			m.boundary.Nudge(-boundaryNudgePercent)
		case "right":
			m.boundary.Nudge(boundaryNudgePercent)
		}
	}
	return m, nil
}

// viewCompareScreen отрисовывает сравнение оригинала и текущего
// (или просматриваемого) содержимого с вертикальной границей.
func (m *model) viewCompareScreen() string {
	img := m.editingImage()
	if img == nil {
		return "Изображение не найдено"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Сравнение: %s\n", img.Name))

	cols, rows := m.previewSize()
	labels := compareLabels(cols, m.boundary.ShowBeforeLabel(), m.boundary.ShowAfterLabel())
	if labels != "" {
		sb.WriteString(labels)
	}
	sb.WriteString("\n")

	after := img.ActiveContent(m.viewingIndex)
	rendered, err := preview.RenderSplit(img.Original.Data, after.Data, cols, rows, m.boundary.Column())
	if err != nil {
		return sb.String() + fmt.Sprintf("\n(превью недоступно: %v)", err)
	}
	sb.WriteString(rendered)
	sb.WriteString(fmt.Sprintf("\n\nГраница: %.0f%%", m.boundary.Percent()))
	return sb.String()
}

// compareLabels формирует строку подписей "До"/"После" по краям превью.
// Подпись у края скрывается, когда граница подходит к нему вплотную.
func compareLabels(cols int, showBefore, showAfter bool) string {
	const beforeLabel = "До"
	const afterLabel = "После"

	left := ""
	if showBefore {
		left = beforeLabel
	}
	right := ""
	if showAfter {
		right = afterLabel
	}
	gap := cols - len([]rune(left)) - len([]rune(right))
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
