package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWindowSizeMsg проверяет пересчет размеров при изменении окна.
func TestWindowSizeMsg(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = updateModel(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
	assert.Equal(t, maxPreviewCols, m.boundary.Width(), "Широкое окно ограничивается максимумом превью")

	m, _ = updateModel(t, m, tea.WindowSizeMsg{Width: 40, Height: 20})
	assert.Equal(t, 40-2*docStyleMarginHorizontal, m.boundary.Width(), "Узкое окно сжимает контейнер границы")
}

// TestClearStatusMsg проверяет очистку статусного сообщения.
func TestClearStatusMsg(t *testing.T) {
	m, _ := newTestModel(t)
	m.statusMessage = "что-то произошло"

	m, _ = updateModel(t, m, clearStatusMsg{})

	assert.Empty(t, m.statusMessage)
}

// TestBlendCounterNaming проверяет нумерацию результатов бленда.
func TestBlendCounterNaming(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = updateModel(t, m, blendResultMsg{content: mustNewContent("b1")})
	m, _ = updateModel(t, m, blendResultMsg{content: mustNewContent("b2")})

	require.Equal(t, 2, m.store.Len())
	assert.Equal(t, "Бленд 1", m.store.Images()[0].Name)
	assert.Equal(t, "Бленд 2", m.store.Images()[1].Name)
}

// TestViewSmoke проверяет, что View отрисовывается на каждом экране.
func TestViewSmoke(t *testing.T) {
	m, _ := newTestModel(t)
	img := addTestImage(t, m, "photo.png")

	// Превью синтетических байтов не декодируется, View не должен падать
	states := []screenState{galleryScreen, addPathScreen, selectionScreen, blendPromptScreen}
	for _, state := range states {
		m.state = state
		assert.NotEmpty(t, m.View(), "View для %s", state)
	}

	m.openEditor(img.ID)
	assert.NotEmpty(t, m.View(), "View для %s", editorScreen)

	m.store.AppendVersion(img.ID, mustNewContent("v1"), "first")
	m.state = compareScreen
	assert.NotEmpty(t, m.View(), "View для %s", compareScreen)
}

// TestScreenStateString проверяет имена состояний для отладки.
func TestScreenStateString(t *testing.T) {
	assert.Equal(t, "galleryScreen", galleryScreen.String())
	assert.Equal(t, "compareScreen", compareScreen.String())
	assert.Contains(t, screenState(99).String(), "unknownScreen")
}

// TestDebugInfo проверяет, что отладочная панель видна в debug-режиме.
func TestDebugInfo(t *testing.T) {
	fake := &fakeAPIClient{}
	m := initModel(fake, true)
	addTestImage(t, &m, "photo.png")

	view := m.View()
	assert.Contains(t, view, "Отладка")
	assert.Contains(t, view, "galleryScreen")
}
