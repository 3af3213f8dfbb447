package tui

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/imgkeeper/internal/compare"
	"github.com/maynagashev/imgkeeper/internal/gallery"
	"github.com/maynagashev/imgkeeper/internal/preview"
)

// updateEditorScreen обрабатывает сообщения редактора одного изображения.
//
// Поле промпта по умолчанию не в фокусе: горячие клавиши (f, b, c,
// стрелки) работают, пока ввод не активирован по Enter. В фокусе
// Enter отправляет промпт, Esc снимает фокус.
func (m *model) updateEditorScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	img := m.editingImage()
	if img == nil {
		// Изображение удалили, пока редактор был открыт
		m.state = galleryScreen
		return m, tea.ClearScreen
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m.handleEditorMouse(msg)
	case tea.KeyMsg:
		if m.promptInput.Focused() {
			return m.handleEditorPromptKey(msg)
		}
		return m.handleEditorKey(msg)
	}

	var cmd tea.Cmd
	m.promptInput, cmd = m.promptInput.Update(msg)
	return m, cmd
}

// handleEditorMouse реализует режим удержания: пока кнопка мыши зажата
// на изображении, показывается оригинал, отпускание возвращает
// отредактированный вид.
func (m *model) handleEditorMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.peeking = true
			m.boundary.PeekPress()
		}
	case tea.MouseActionRelease:
		m.peeking = false
		m.boundary.PeekRelease()
	case tea.MouseActionMotion:
		// Перемещение в режиме удержания ничего не меняет
	}
	return m, nil
}

// handleEditorPromptKey обрабатывает клавиши при активном поле промпта.
func (m *model) handleEditorPromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		m.promptInput.Blur()
		return m, nil
	case keyEnter:
		return m.dispatchEdit()
	}
	var cmd tea.Cmd
	m.promptInput, cmd = m.promptInput.Update(msg)
	return m, cmd
}

// handleEditorKey обрабатывает горячие клавиши редактора.
func (m *model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	img := m.editingImage()
	switch msg.String() {
	case keyEsc:
		m.state = galleryScreen
		m.refreshGalleryItems()
		return m, tea.ClearScreen
	case keyEnter:
		m.promptInput.Focus()
		return m, nil
	case "f":
		m.preserveFaces = !m.preserveFaces
		if m.preserveFaces {
			return m.setStatusMessage("Сохранение лиц: включено")
		}
		return m.setStatusMessage("Сохранение лиц: выключено")
	case "b":
		if img.Current.Equal(img.Original) {
			return m.setStatusMessage("Изображение и так в исходном виде")
		}
		// История сохраняется, версия-запись не создается
		m.store.Revert(img.ID)
		m.viewingIndex = nil
		return m.setStatusMessage(revertStatusLabel)
	case "up":
		return m.browseOlderVersion()
	case "down":
		return m.browseNewerVersion()
	case "c":
		if len(img.Versions) == 0 {
			return m.setStatusMessage("Нет отредактированных версий для сравнения")
		}
		m.boundary = compare.New()
		cols, _ := m.previewSize()
		m.boundary.SetContainer(docStyleMarginHorizontal, cols)
		m.state = compareScreen
		slog.Info("Переход к сравнению до/после", "image_id", img.ID)
		return m, tea.ClearScreen
	}
	return m, nil
}

// browseOlderVersion сдвигает просмотр истории на версию старше.
// Из режима Current первый шаг идет к последней версии.
func (m *model) browseOlderVersion() (tea.Model, tea.Cmd) {
	img := m.editingImage()
	if len(img.Versions) == 0 {
		return m.setStatusMessage("История версий пуста")
	}
	if m.viewingIndex == nil {
		idx := len(img.Versions) - 1
		m.viewingIndex = &idx
		return m, nil
	}
	if *m.viewingIndex > 0 {
		*m.viewingIndex--
	}
	return m, nil
}

// browseNewerVersion сдвигает просмотр на версию новее; шаг за последнюю
// версию возвращает просмотр Current.
func (m *model) browseNewerVersion() (tea.Model, tea.Cmd) {
	img := m.editingImage()
	if m.viewingIndex == nil {
		return m, nil
	}
	if *m.viewingIndex >= len(img.Versions)-1 {
		m.viewingIndex = nil
		return m, nil
	}
	*m.viewingIndex++
	return m, nil
}

// dispatchEdit отправляет промпт редактирования. Содержимое и токен
// поколения фиксируются сейчас: более новая отправка обесценит ответ
// этой. Редактируется отображаемое содержимое, включая просматриваемую
// старую версию.
func (m *model) dispatchEdit() (tea.Model, tea.Cmd) {
	img := m.editingImage()
	prompt := strings.TrimSpace(m.promptInput.Value())
	if prompt == "" {
		return m.setStatusMessage("Промпт не может быть пустым")
	}

	// Предыдущий запрос не отменяется, но его ответ устареет:
	// пользователя стоит об этом предупредить.
	superseding := img.Processing()
	generation := m.store.BeginRequest(img.ID)
	if generation == 0 {
		return m.setStatusMessage("Изображение не найдено")
	}
	content := img.ActiveContent(m.viewingIndex)

	m.promptInput.SetValue("")
	m.promptInput.Blur()
	m.refreshGalleryItems()
	slog.Info("Отправка промпта редактирования",
		"image_id", img.ID,
		"generation", generation,
		"preserve_faces", m.preserveFaces,
	)

	status := "Редактирование отправлено..."
	if superseding {
		status = "Редактирование отправлено, предыдущий запрос будет отброшен"
	}
	newM, statusCmd := m.setStatusMessage(status)
	return newM, tea.Batch(statusCmd, m.makeEditCmd(img.ID, content, prompt, m.preserveFaces, generation))
}

// viewEditorScreen отрисовывает редактор изображения.
func (m *model) viewEditorScreen() string {
	img := m.editingImage()
	if img == nil {
		return "Изображение не найдено"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Редактор: %s\n", img.Name))
	sb.WriteString(m.editorVersionLine(img))
	sb.WriteString("\n\n")
	sb.WriteString(m.editorPreview(img))
	sb.WriteString("\n\n")

	flags := make([]string, 0, 2)
	if m.preserveFaces {
		flags = append(flags, "[лица сохраняются]")
	}
	if img.Processing() {
		flags = append(flags, "[обработка...]")
	}
	if len(flags) > 0 {
		sb.WriteString(strings.Join(flags, " "))
		sb.WriteString("\n")
	}
	sb.WriteString(m.promptInput.View())
	return sb.String()
}

// editorVersionLine описывает, что сейчас показано: Current, оригинал
// после отката или конкретная версия истории.
func (m *model) editorVersionLine(img *gallery.Image) string {
	if m.peeking {
		return "Показан оригинал (удержание)"
	}
	if m.viewingIndex != nil && *m.viewingIndex < len(img.Versions) {
		v := img.Versions[*m.viewingIndex]
		return fmt.Sprintf("Версия %d из %d: %q", *m.viewingIndex+1, len(img.Versions), v.Prompt)
	}
	if len(img.Versions) > 0 && img.Current.Equal(img.Original) {
		return fmt.Sprintf("Оригинал (после отката), версий в истории: %d", len(img.Versions))
	}
	return fmt.Sprintf("Текущее состояние, версий: %d", len(img.Versions))
}

// editorPreview отрисовывает превью отображаемого содержимого.
// В режиме удержания показывается оригинал.
func (m *model) editorPreview(img *gallery.Image) string {
	content := img.ActiveContent(m.viewingIndex)
	if m.peeking {
		content = img.Original
	}
	cols, rows := m.previewSize()
	rendered, err := preview.Render(content.Data, cols, rows)
	if err != nil {
		return fmt.Sprintf("(превью недоступно: %v)", err)
	}
	return rendered
}
