package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update обрабатывает входящие сообщения.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	// == Глобальные сообщения (не зависят от экрана) ==
	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)

	case editResultMsg:
		return m.handleEditResultMsg(msg)

	case editErrorMsg:
		return m.handleEditErrorMsg(msg)

	case blendResultMsg:
		return m.handleBlendResultMsg(msg)

	case blendErrorMsg:
		return m.handleBlendErrorMsg(msg)

	case filesIngestedMsg:
		return m.handleFilesIngestedMsg(msg)

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil

	case tea.KeyMsg:
		// Глобальные команды, работающие на всех экранах
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	// == Обновление в зависимости от состояния ==
	switch m.state {
	case galleryScreen:
		return m.updateGalleryScreen(msg)
	case addPathScreen:
		return m.updateAddPathScreen(msg)
	case selectionScreen:
		return m.updateSelectionScreen(msg)
	case blendPromptScreen:
		return m.updateBlendPromptScreen(msg)
	case editorScreen:
		return m.updateEditorScreen(msg)
	case compareScreen:
		return m.updateCompareScreen(msg)
	default:
		return m, nil
	}
}

// handleWindowSizeMsg пересчитывает размеры компонентов и перемеряет
// контейнер границы сравнения: наблюдение за изменением размера,
// а не опрос.
func (m *model) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	h, v := m.docStyle.GetFrameSize()
	listWidth := msg.Width - h
	listHeight := msg.Height - v - helpStatusHeightOffset

	m.galleryList.SetSize(listWidth, listHeight)
	m.pathInput.Width = listWidth - pathInputOffset
	m.promptInput.Width = listWidth - pathInputOffset
	m.blendPromptInput.Width = listWidth - pathInputOffset

	cols, _ := m.previewSize()
	m.boundary.SetContainer(docStyleMarginHorizontal, cols)

	return m, nil
}

// previewSize возвращает размеры превью в текстовых ячейках
// для текущего размера окна.
func (m *model) previewSize() (int, int) {
	cols := m.width - 2*docStyleMarginHorizontal
	if cols <= 0 {
		cols = defaultListWidth - 2*docStyleMarginHorizontal
	}
	if cols > maxPreviewCols {
		cols = maxPreviewCols
	}
	rows := m.height - previewHeightOffset
	if rows <= 0 {
		rows = defaultPreviewRows
	}
	if rows > maxPreviewRows {
		rows = maxPreviewRows
	}
	return cols, rows
}
