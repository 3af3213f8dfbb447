package tui

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gofrs/flock"

	"github.com/maynagashev/imgkeeper/internal/api"
)

const (
	statusMessageTimeout     = 3 * time.Second // Время отображения статусных сообщений
	helpStatusHeightOffset   = 2               // Высота строки помощи и статуса
	docStyleMarginVertical   = 1
	docStyleMarginHorizontal = 2

	// Размеры превью изображений в текстовых ячейках.
	maxPreviewCols      = 72
	maxPreviewRows      = 20
	defaultPreviewRows  = 16
	previewHeightOffset = 8 // Высота промпта, справки и статуса вокруг превью
)

// Init - команда, выполняемая при запуске приложения.
func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

// setStatusMessage устанавливает статусное сообщение и запускает
// команду для его очистки через таймаут.
func (m *model) setStatusMessage(status string) (tea.Model, tea.Cmd) {
	m.statusMessage = status
	return m, clearStatusCmd(statusMessageTimeout)
}

// getMainContentView возвращает основное содержимое для текущего состояния.
func (m *model) getMainContentView() string {
	switch m.state {
	case galleryScreen, selectionScreen:
		return m.viewGalleryScreen()
	case addPathScreen:
		return m.viewAddPathScreen()
	case blendPromptScreen:
		return m.viewBlendPromptScreen()
	case editorScreen:
		return m.viewEditorScreen()
	case compareScreen:
		return m.viewCompareScreen()
	default:
		return "Неизвестное состояние!"
	}
}

// getDebugInfoString генерирует отладочную информацию.
func (m *model) getDebugInfoString() string {
	var debugInfo strings.Builder
	debugInfo.WriteString(fmt.Sprintf(" [State: %s]\n", m.state.String()))
	debugInfo.WriteString(fmt.Sprintf(" [Images: %d]\n", m.store.Len()))
	debugInfo.WriteString(fmt.Sprintf(" [Selection: %d, active=%t]\n", m.sel.Size(), m.sel.Active()))
	debugInfo.WriteString(fmt.Sprintf(" [Boundary: %.1f%%, dragging=%t]\n", m.boundary.Percent(), m.boundary.Dragging()))
	if img := m.editingImage(); img != nil {
		debugInfo.WriteString(fmt.Sprintf(" [Editing: %s, versions=%d, pending=%t]\n",
			img.Name, len(img.Versions), img.Processing()))
	}
	return debugInfo.String()
}

// View отрисовывает пользовательский интерфейс.
func (m *model) View() string {
	mainContent := m.getMainContentView()
	help, ok := m.helpTextMap[m.state]
	if !ok {
		help = "Unknown state"
	}

	// --- Формируем подвал (статус + отладка) --- //
	var footer strings.Builder
	if m.statusMessage != "" {
		footer.WriteString("\n")
		footer.WriteString(m.statusMessage)
	}
	if m.debugMode {
		footer.WriteString("\n\n---\nОтладка:\n")
		footer.WriteString(m.getDebugInfoString())
	}

	styledContent := m.docStyle.Render(mainContent)
	return fmt.Sprintf("%s\n%s%s", styledContent, help, footer.String())
}

// Start запускает TUI приложение.
func Start(apiClient api.Client, lockPath string, debugMode bool) {
	m := initModel(apiClient, debugMode)

	// --- Блокировка единственного экземпляра ---
	// Два экземпляра дерутся за лог-файл и режим мыши терминала.
	fileLock := flock.New(lockPath)
	lockAcquired, flockErr := fileLock.TryLock()
	if flockErr != nil {
		slog.Error("Критическая ошибка при попытке блокировки", "lockPath", lockPath, "error", flockErr)
		fmt.Fprintf(os.Stderr, "Ошибка блокировки файла %s: %v\n", lockPath, flockErr)
		os.Exit(1)
	}
	if lockAcquired {
		slog.Info("Эксклюзивная блокировка получена.", "lockPath", lockPath)
		defer func() {
			if errUnlock := fileLock.Unlock(); errUnlock != nil {
				slog.Error("Ошибка при снятии блокировки", "lockPath", lockPath, "error", errUnlock)
			}
		}()
	} else {
		slog.Warn("Блокировка не получена: похоже, запущен другой экземпляр.", "lockPath", lockPath)
	}

	// Мышь нужна для слайдера сравнения и режима удержания:
	// cell motion дает события перемещения при зажатой кнопке.
	p := tea.NewProgram(&m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, errRun := p.Run(); errRun != nil {
		slog.Error("Ошибка при запуске TUI", "error", errRun)
		os.Exit(1)
	}
}
