package tui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/imgkeeper/internal/gallery"
	"github.com/maynagashev/imgkeeper/internal/ingest"
)

// --- Сообщения и команды для API --- //

// editResultMsg несет результат одиночного редактирования вместе с
// токеном поколения: устаревший результат будет отброшен обработчиком.
type editResultMsg struct {
	imageID    string
	generation uint64
	content    gallery.ContentRef
	prompt     string
}

// editErrorMsg сообщает об ошибке редактирования.
type editErrorMsg struct {
	imageID    string
	generation uint64
	err        error
}

// makeEditCmd асинхронно выполняет одиночное редактирование.
// Содержимое и токен поколения фиксируются в момент отправки.
func (m *model) makeEditCmd(
	imageID string,
	content gallery.ContentRef,
	prompt string,
	preserveFaces bool,
	generation uint64,
) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		result, err := m.apiClient.EditImage(ctx, content, prompt, preserveFaces)
		if err != nil {
			return editErrorMsg{imageID: imageID, generation: generation, err: err}
		}
		return editResultMsg{
			imageID:    imageID,
			generation: generation,
			content:    result,
			prompt:     prompt,
		}
	}
}

// --- Сообщения и команды для бленда --- //

// blendResultMsg несет содержимое, сгенерированное мульти-блендингом.
type blendResultMsg struct {
	content gallery.ContentRef
}

// blendErrorMsg сообщает об ошибке бленда.
type blendErrorMsg struct {
	err error
}

// makeBlendCmd асинхронно выполняет мульти-блендинг. Упорядоченный набор
// содержимого (референс первым) фиксируется в момент отправки.
func (m *model) makeBlendCmd(refs []gallery.ContentRef, prompt string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		result, err := m.apiClient.BlendImages(ctx, refs, prompt)
		if err != nil {
			return blendErrorMsg{err: err}
		}
		return blendResultMsg{content: result}
	}
}

// --- Сообщения и команды для приема файлов --- //

// filesIngestedMsg несет результаты декодирования файлов.
type filesIngestedMsg struct {
	results []ingest.Result
}

// ingestFilesCmd асинхронно читает и декодирует файлы изображений.
func ingestFilesCmd(paths []string) tea.Cmd {
	return func() tea.Msg {
		slog.Info("Прием файлов изображений", "count", len(paths))
		return filesIngestedMsg{results: ingest.Files(paths)}
	}
}

// clearStatusCmd возвращает команду, которая отправит clearStatusMsg через delay.
func clearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
