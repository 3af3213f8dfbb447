package tui

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/imgkeeper/internal/selection"
)

// selectionTitle формирует заголовок галереи в режиме выделения.
func selectionTitle(size int) string {
	return fmt.Sprintf("Выбор для бленда: %d из %d", size, selection.MaxSize)
}

// updateSelectionScreen обрабатывает сообщения для галереи в режиме
// мульти-выбора. Навигация остается обычной, пробел переключает отметку.
func (m *model) updateSelectionScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	m.galleryList, cmd = m.galleryList.Update(msg)
	cmds = append(cmds, cmd)

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEsc:
			// Выход из режима выделения всегда очищает набор
			m.sel.Exit()
			m.state = galleryScreen
			m.refreshGalleryItems()
			slog.Info("Режим выделения выключен")
			return m, tea.ClearScreen
		case keySpace:
			if item, isGalleryItem := m.galleryList.SelectedItem().(galleryItem); isGalleryItem {
				if errToggle := m.sel.Toggle(item.img.ID); errToggle != nil {
					// Превышение лимита — информационное сообщение, набор не меняется
					if errors.Is(errToggle, selection.ErrLimitExceeded) {
						return m.setStatusMessage(errToggle.Error())
					}
					return m.setStatusMessage(fmt.Sprintf("Ошибка выделения: %v", errToggle))
				}
				m.refreshGalleryItems()
			}
		case keyDel:
			// 'd' в строке фильтра — текст, а не команда удаления
			if m.galleryList.FilterState() != list.Unfiltered {
				break
			}
			if item, isGalleryItem := m.galleryList.SelectedItem().(galleryItem); isGalleryItem {
				return m.deleteImage(item.img.ID, item.img.Name)
			}
		case keyEnter:
			if !m.sel.BlendEligible() {
				return m.setStatusMessage(fmt.Sprintf(
					"Для бленда нужно от %d до %d изображений, выбрано %d",
					selection.MinBlendSize, selection.MaxSize, m.sel.Size()))
			}
			if m.blendInFlight {
				return m.setStatusMessage("Бленд уже выполняется, дождитесь результата")
			}
			m.blendPromptInput.SetValue("")
			m.blendPromptInput.Focus()
			m.state = blendPromptScreen
			slog.Info("Переход к вводу промпта бленда", "selected", m.sel.Size())
			return m, tea.ClearScreen
		}
	}
	return m, tea.Batch(cmds...)
}
