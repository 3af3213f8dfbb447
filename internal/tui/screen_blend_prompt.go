package tui

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/imgkeeper/internal/gallery"
)

// updateBlendPromptScreen обрабатывает ввод промпта мульти-блендинга.
// Пустой промпт допустим: тогда выполняется перенос стиля референса.
func (m *model) updateBlendPromptScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEsc:
			// Возврат к выбору, набор сохраняется
			m.blendPromptInput.Blur()
			m.state = selectionScreen
			return m, tea.ClearScreen
		case keyEnter:
			return m.dispatchBlend()
		}
	}

	m.blendPromptInput, cmd = m.blendPromptInput.Update(msg)
	return m, cmd
}

// dispatchBlend фиксирует упорядоченный набор содержимого и отправляет
// запрос бленда. Порядок — порядок отображения галереи, первым идет
// референсное изображение. Повторная отправка при запросе в полете
// блокируется: иначе применились бы оба результата.
func (m *model) dispatchBlend() (tea.Model, tea.Cmd) {
	if m.blendInFlight {
		return m.setStatusMessage("Бленд уже выполняется, дождитесь результата")
	}
	orderedIDs := m.sel.Ordered(m.galleryOrder())
	refs := make([]gallery.ContentRef, 0, len(orderedIDs))
	names := make([]string, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		img := m.store.Get(id)
		if img == nil {
			continue
		}
		refs = append(refs, img.Current)
		names = append(names, img.Name)
	}
	if len(refs) < 2 {
		// Набор успел опустеть (например, удаления во время выбора)
		return m.setStatusMessage("Набор для бленда неполон, выберите изображения заново")
	}

	prompt := m.blendPromptInput.Value()
	m.blendPromptInput.Blur()
	m.blendInFlight = true
	slog.Info("Запуск мульти-блендинга", "images", names, "prompt", prompt)

	newM, statusCmd := m.setStatusMessage(fmt.Sprintf("Бленд %d изображений...", len(refs)))
	return newM, tea.Batch(statusCmd, m.makeBlendCmd(refs, prompt))
}

// viewBlendPromptScreen отрисовывает экран промпта бленда.
func (m *model) viewBlendPromptScreen() string {
	var sb strings.Builder
	sb.WriteString("Мульти-блендинг\n\n")
	sb.WriteString("Изображения (первое — референс стиля):\n")
	for i, id := range m.sel.Ordered(m.galleryOrder()) {
		img := m.store.Get(id)
		if img == nil {
			continue
		}
		marker := "  "
		if i == 0 {
			marker = "★ "
		}
		sb.WriteString(fmt.Sprintf("  %s%s\n", marker, img.Name))
	}
	sb.WriteString("\nПромпт (пусто = перенос стиля референса):\n\n")
	sb.WriteString(m.blendPromptInput.View())
	if m.blendInFlight {
		sb.WriteString("\n\nВыполняется бленд...")
	}
	return sb.String()
}
