package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maynagashev/imgkeeper/internal/gallery"
)

// openTestEditor создает модель с одним изображением и открытым редактором.
func openTestEditor(t *testing.T) (*model, *fakeAPIClient, *gallery.Image) {
	t.Helper()
	m, fake := newTestModel(t)
	img := addTestImage(t, m, "photo.png")
	m.openEditor(img.ID)
	return m, fake, img
}

// TestEditorDispatch проверяет отправку промпта и применение результата.
func TestEditorDispatch(t *testing.T) {
	t.Run("Enter фокусирует промпт, второй Enter отправляет", func(t *testing.T) {
		m, fake, img := openTestEditor(t)
		fake.editResult = mustNewContent("edited")

		m, _ = updateModel(t, m, keyMsg(keyEnter))
		assert.True(t, m.promptInput.Focused(), "Первый Enter должен дать фокус промпту")

		m.promptInput.SetValue("make it a sketch")
		m, cmd := updateModel(t, m, keyMsg(keyEnter))

		assert.True(t, img.Processing(), "Изображение должно перейти в обработку")
		assert.Empty(t, m.promptInput.Value(), "Поле промпта должно очиститься")

		msg := runBatchCmd(t, cmd)
		result, ok := msg.(editResultMsg)
		require.True(t, ok, "Команда должна вернуть editResultMsg")
		assert.Equal(t, img.ID, result.imageID)
		assert.Equal(t, "make it a sketch", result.prompt)

		m, _ = updateModel(t, m, result)

		assert.False(t, img.Processing(), "Обработка должна завершиться")
		require.Len(t, img.Versions, 1, "Должна появиться версия")
		assert.Equal(t, "make it a sketch", img.Versions[0].Prompt)
		assert.True(t, img.Current.Equal(fake.editResult), "Current должен указывать на результат")
	})

	t.Run("Пустой промпт не отправляется", func(t *testing.T) {
		m, _, img := openTestEditor(t)
		m.promptInput.Focus()
		m.promptInput.SetValue("   ")

		m, _ = updateModel(t, m, keyMsg(keyEnter))

		assert.False(t, img.Processing(), "Запрос не должен отправиться")
		assert.NotEmpty(t, m.statusMessage)
	})

	t.Run("Флаг сохранения лиц передается в запрос", func(t *testing.T) {
		m, fake, _ := openTestEditor(t)
		fake.editResult = mustNewContent("edited")

		m, _ = updateModel(t, m, keyMsg("f"))
		assert.True(t, m.preserveFaces)

		m.promptInput.Focus()
		m.promptInput.SetValue("new background")
		_, cmd := updateModel(t, m, keyMsg(keyEnter))
		runBatchCmd(t, cmd)

		assert.True(t, fake.lastEditPreserveFaces, "Флаг должен дойти до API клиента")
	})

	t.Run("Повторная отправка предупреждает и обесценивает первый запрос", func(t *testing.T) {
		m, fake, img := openTestEditor(t)
		fake.editResult = mustNewContent("edited")

		m.promptInput.Focus()
		m.promptInput.SetValue("first edit")
		m, firstCmd := updateModel(t, m, keyMsg(keyEnter))
		firstMsg := runBatchCmd(t, firstCmd)
		first, ok := firstMsg.(editResultMsg)
		require.True(t, ok)
		assert.NotContains(t, m.statusMessage, "предыдущий")

		m.promptInput.Focus()
		m.promptInput.SetValue("second edit")
		m, secondCmd := updateModel(t, m, keyMsg(keyEnter))
		secondMsg := runBatchCmd(t, secondCmd)
		second, ok := secondMsg.(editResultMsg)
		require.True(t, ok)

		assert.Contains(t, m.statusMessage, "предыдущий запрос будет отброшен")
		assert.Equal(t, 2, fake.editCalls)

		// Первый ответ пришел после второй отправки — он устарел
		m, _ = updateModel(t, m, first)
		assert.Empty(t, img.Versions, "Устаревший результат не применяется")

		m, _ = updateModel(t, m, second)
		require.Len(t, img.Versions, 1, "Применяется только новейший результат")
		assert.Equal(t, "second edit", img.Versions[0].Prompt)
	})

	t.Run("Устаревший результат отбрасывается", func(t *testing.T) {
		m, _, img := openTestEditor(t)
		staleGen := m.store.BeginRequest(img.ID)
		freshGen := m.store.BeginRequest(img.ID) // Повторная отправка обесценивает первую
		require.NotEqual(t, staleGen, freshGen)

		m, _ = updateModel(t, m, editResultMsg{
			imageID:    img.ID,
			generation: staleGen,
			content:    mustNewContent("stale"),
			prompt:     "old prompt",
		})

		assert.Empty(t, img.Versions, "Устаревший результат не должен создать версию")
		assert.True(t, img.Processing(), "Свежий запрос все еще в полете")
	})

	t.Run("Ошибка редактирования снимает обработку", func(t *testing.T) {
		m, _, img := openTestEditor(t)
		gen := m.store.BeginRequest(img.ID)

		m, _ = updateModel(t, m, editErrorMsg{imageID: img.ID, generation: gen, err: errors.New("квота исчерпана")})

		assert.False(t, img.Processing())
		assert.Empty(t, img.Versions, "Версия при ошибке не создается")
		assert.Contains(t, m.statusMessage, "Ошибка редактирования")
	})
}

// TestEditorRevert проверяет откат к оригиналу.
func TestEditorRevert(t *testing.T) {
	t.Run("Откат сохраняет историю", func(t *testing.T) {
		m, _, img := openTestEditor(t)
		m.store.AppendVersion(img.ID, mustNewContent("v1"), "first")
		m.store.AppendVersion(img.ID, mustNewContent("v2"), "second")

		m, _ = updateModel(t, m, keyMsg("b"))

		assert.True(t, img.Current.Equal(img.Original), "Current должен вернуться к оригиналу")
		assert.Len(t, img.Versions, 2, "История не должна обрезаться")
		assert.Equal(t, revertStatusLabel, m.statusMessage)
	})

	t.Run("Откат без правок — no-op с сообщением", func(t *testing.T) {
		m, _, img := openTestEditor(t)

		m, _ = updateModel(t, m, keyMsg("b"))

		assert.True(t, img.Current.Equal(img.Original))
		assert.NotEqual(t, revertStatusLabel, m.statusMessage)
	})

	t.Run("Редактирование после отката продолжает историю", func(t *testing.T) {
		m, _, img := openTestEditor(t)
		m.store.AppendVersion(img.ID, mustNewContent("v1"), "first")
		m, _ = updateModel(t, m, keyMsg("b"))

		gen := m.store.BeginRequest(img.ID)
		fresh := mustNewContent("v2")
		_, _ = updateModel(t, m, editResultMsg{imageID: img.ID, generation: gen, content: fresh, prompt: "second"})

		require.Len(t, img.Versions, 2)
		assert.True(t, img.Current.Equal(fresh), "Инвариант Current == последняя версия восстановлен")
	})
}

// TestEditorVersionBrowsing проверяет листание истории версий.
func TestEditorVersionBrowsing(t *testing.T) {
	m, _, img := openTestEditor(t)
	v1 := mustNewContent("v1")
	v2 := mustNewContent("v2")
	m.store.AppendVersion(img.ID, v1, "first")
	m.store.AppendVersion(img.ID, v2, "second")

	require.Nil(t, m.viewingIndex, "Изначально показан Current")

	// Вверх: к последней версии, затем к более старой
	m, _ = updateModel(t, m, keyMsg("up"))
	require.NotNil(t, m.viewingIndex)
	assert.Equal(t, 1, *m.viewingIndex)

	m, _ = updateModel(t, m, keyMsg("up"))
	assert.Equal(t, 0, *m.viewingIndex)

	// Дальше некуда — остаемся на месте
	m, _ = updateModel(t, m, keyMsg("up"))
	assert.Equal(t, 0, *m.viewingIndex)
	assert.True(t, img.ActiveContent(m.viewingIndex).Equal(v1))

	// Вниз обратно до Current
	m, _ = updateModel(t, m, keyMsg("down"))
	assert.Equal(t, 1, *m.viewingIndex)

	m, _ = updateModel(t, m, keyMsg("down"))
	assert.Nil(t, m.viewingIndex, "Шаг за последнюю версию возвращает Current")
	assert.True(t, img.ActiveContent(m.viewingIndex).Equal(v2))
}

// TestEditorPeek проверяет режим удержания для показа оригинала.
func TestEditorPeek(t *testing.T) {
	m, _, img := openTestEditor(t)
	m.store.AppendVersion(img.ID, mustNewContent("v1"), "first")

	press := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, X: 10, Y: 5}
	m, _ = updateModel(t, m, press)
	assert.True(t, m.peeking, "Зажатая кнопка должна включить подглядывание")

	release := tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft, X: 10, Y: 5}
	m, _ = updateModel(t, m, release)
	assert.False(t, m.peeking, "Отпускание должно вернуть отредактированный вид")
}

// TestEditorReset проверяет сброс состояния при смене изображения.
func TestEditorReset(t *testing.T) {
	m, _, img := openTestEditor(t)
	m.store.AppendVersion(img.ID, mustNewContent("v1"), "first")
	idx := 0
	m.viewingIndex = &idx
	m.preserveFaces = true

	other := addTestImage(t, m, "other.png")
	m.openEditor(other.ID)

	assert.Nil(t, m.viewingIndex, "Просмотр версий не переживает смену изображения")
	assert.False(t, m.preserveFaces, "Флаг лиц не переживает смену изображения")

	// Повторное открытие того же изображения состояние не трогает
	m.viewingIndex = &idx
	m.openEditor(other.ID)
	assert.NotNil(t, m.viewingIndex)
}

// TestEditorRemovedImage проверяет выход из редактора удаленного изображения.
func TestEditorRemovedImage(t *testing.T) {
	m, _, img := openTestEditor(t)
	m.store.RemoveImage(img.ID)

	m, _ = updateModel(t, m, keyMsg("f"))

	assert.Equal(t, galleryScreen, m.state, "Редактор без изображения должен закрыться")
}
