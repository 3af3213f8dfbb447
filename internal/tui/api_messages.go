package tui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// handleEditResultMsg применяет результат одиночного редактирования.
// Результат с устаревшим токеном поколения отбрасывается: изображение
// успело отправить более новый запрос или было удалено.
func (m *model) handleEditResultMsg(msg editResultMsg) (tea.Model, tea.Cmd) {
	if !m.store.FinishRequest(msg.imageID, msg.generation) {
		slog.Info("Результат редактирования отброшен как устаревший",
			"image_id", msg.imageID, "generation", msg.generation)
		m.refreshGalleryItems()
		return m, nil
	}

	// История и текущее содержимое обновляются вместе, частичного
	// обновления не бывает.
	m.store.AppendVersion(msg.imageID, msg.content, msg.prompt)

	// Если результат пришел для открытого редактора — показываем
	// свежую версию, а не застрявший индекс просмотра.
	if m.editingID == msg.imageID {
		m.viewingIndex = nil
	}

	m.refreshGalleryItems()
	return m.setStatusMessage("Редактирование применено")
}

// handleEditErrorMsg обрабатывает ошибку редактирования: флаг обработки
// снимается и при ошибке, повторная отправка остается за пользователем.
func (m *model) handleEditErrorMsg(msg editErrorMsg) (tea.Model, tea.Cmd) {
	m.store.FinishRequest(msg.imageID, msg.generation)
	m.refreshGalleryItems()
	slog.Error("Ошибка редактирования изображения", "image_id", msg.imageID, "error", msg.err)
	return m.setStatusMessage(fmt.Sprintf("Ошибка редактирования: %v", msg.err))
}

// handleBlendResultMsg добавляет результат бленда как новое изображение
// и выходит из режима выделения, очищая набор.
func (m *model) handleBlendResultMsg(msg blendResultMsg) (tea.Model, tea.Cmd) {
	m.blendInFlight = false
	m.blendCounter++
	label := fmt.Sprintf("Бленд %d", m.blendCounter)

	m.store.AddGeneratedImage(msg.content, label)
	m.sel.Exit()
	m.state = galleryScreen
	m.refreshGalleryItems()

	newM, statusCmd := m.setStatusMessage(fmt.Sprintf("Готово: %s добавлен в галерею", label))
	return newM, tea.Batch(statusCmd, tea.ClearScreen)
}

// handleBlendErrorMsg обрабатывает ошибку бленда: выделение сохраняется,
// пользователь может запустить бленд повторно.
func (m *model) handleBlendErrorMsg(msg blendErrorMsg) (tea.Model, tea.Cmd) {
	m.blendInFlight = false
	slog.Error("Ошибка мульти-блендинга", "error", msg.err)
	return m.setStatusMessage(fmt.Sprintf("Ошибка бленда: %v", msg.err))
}

// handleFilesIngestedMsg добавляет успешно декодированные файлы в галерею.
// Ошибка одного файла не мешает остальным.
func (m *model) handleFilesIngestedMsg(msg filesIngestedMsg) (tea.Model, tea.Cmd) {
	added := 0
	failed := 0
	for _, res := range msg.results {
		if res.Err != nil {
			failed++
			continue
		}
		m.store.AddImage(res.Content, res.Name)
		added++
	}
	m.refreshGalleryItems()
	m.state = galleryScreen
	m.pathInput.SetValue("")
	m.pathInput.Blur()

	status := fmt.Sprintf("Добавлено изображений: %d", added)
	if failed > 0 {
		status += fmt.Sprintf(", с ошибками: %d", failed)
	}
	newM, statusCmd := m.setStatusMessage(status)
	return newM, tea.Batch(statusCmd, tea.ClearScreen)
}
