package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/maynagashev/imgkeeper/internal/gallery"
)

// fakeAPIClient — мок API клиента для тестов TUI. Возвращает заранее
// заданные результаты и запоминает аргументы последнего вызова.
type fakeAPIClient struct {
	editResult  gallery.ContentRef
	editErr     error
	blendResult gallery.ContentRef
	blendErr    error

	editCalls             int
	blendCalls            int
	lastEditPrompt        string
	lastEditPreserveFaces bool
	lastBlendRefs         []gallery.ContentRef
	lastBlendPrompt       string
}

func (f *fakeAPIClient) EditImage(
	_ context.Context,
	_ gallery.ContentRef,
	prompt string,
	preserveFaces bool,
) (gallery.ContentRef, error) {
	f.editCalls++
	f.lastEditPrompt = prompt
	f.lastEditPreserveFaces = preserveFaces
	if f.editErr != nil {
		return gallery.ContentRef{}, f.editErr
	}
	return f.editResult, nil
}

func (f *fakeAPIClient) BlendImages(
	_ context.Context,
	refs []gallery.ContentRef,
	prompt string,
) (gallery.ContentRef, error) {
	f.blendCalls++
	f.lastBlendRefs = refs
	f.lastBlendPrompt = prompt
	if f.blendErr != nil {
		return gallery.ContentRef{}, f.blendErr
	}
	return f.blendResult, nil
}

// newTestModel создает модель для тестов с мок-клиентом и заданным
// размером окна.
func newTestModel(t *testing.T) (*model, *fakeAPIClient) {
	t.Helper()
	fake := &fakeAPIClient{}
	m := initModel(fake, false)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: defaultListWidth, Height: defaultListHeight})
	tm, ok := updated.(*model)
	require.True(t, ok, "Update должен вернуть *model")
	return tm, fake
}

// addTestImage добавляет в хранилище изображение с синтетическим
// содержимым и обновляет список галереи.
func addTestImage(t *testing.T, m *model, name string) *gallery.Image {
	t.Helper()
	content := gallery.NewContentRef([]byte("fake-image-bytes-"+name), "image/png")
	img := m.store.AddImage(content, name)
	m.refreshGalleryItems()
	return img
}

// mustNewContent создает синтетическое содержимое для тестов.
func mustNewContent(tag string) gallery.ContentRef {
	return gallery.NewContentRef([]byte("fake-image-bytes-"+tag), "image/png")
}

// keyMsg создает tea.KeyMsg для строкового представления клавиши.
func keyMsg(key string) tea.KeyMsg {
	switch key {
	case keyEnter:
		return tea.KeyMsg{Type: tea.KeyEnter}
	case keyEsc:
		return tea.KeyMsg{Type: tea.KeyEsc}
	case keySpace:
		return tea.KeyMsg{Type: tea.KeySpace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

// runBatchCmd выполняет команду (возможно, батч) и возвращает первое
// содержательное сообщение, пропуская отложенную очистку статуса.
func runBatchCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd, "Команда не должна быть nil")
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return msg
	}
	// Команды батча выполняются параллельно: tea.Tick очистки статуса
	// блокируется на таймауте, ждать его не нужно.
	ch := make(chan tea.Msg, len(batch))
	for _, c := range batch {
		go func() { ch <- c() }()
	}
	for range batch {
		got := <-ch
		if _, isClear := got.(clearStatusMsg); isClear {
			continue
		}
		return got
	}
	t.Fatal("В батче не нашлось содержательного сообщения")
	return nil
}

// updateModel прогоняет сообщение через Update и возвращает *model.
func updateModel(t *testing.T, m *model, msg tea.Msg) (*model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	tm, ok := updated.(*model)
	require.True(t, ok, "Update должен вернуть *model")
	return tm, cmd
}
