package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/maynagashev/imgkeeper/internal/api"
	"github.com/maynagashev/imgkeeper/internal/compare"
	"github.com/maynagashev/imgkeeper/internal/gallery"
	"github.com/maynagashev/imgkeeper/internal/selection"
)

// Состояния (экраны) приложения. Явный размеченный вариант вместо
// набора булевых флагов: режим выделения не может быть активен
// одновременно с редактированием по построению.
type screenState int

const (
	galleryScreen     screenState = iota // Галерея изображений
	addPathScreen                        // Ввод пути к добавляемым файлам
	selectionScreen                      // Галерея в режиме мульти-выбора
	blendPromptScreen                    // Ввод промпта для бленда
	editorScreen                         // Редактор одного изображения
	compareScreen                        // Слайдер сравнения "до/после"
)

// String возвращает имя состояния для отладки и логов.
func (s screenState) String() string {
	switch s {
	case galleryScreen:
		return "galleryScreen"
	case addPathScreen:
		return "addPathScreen"
	case selectionScreen:
		return "selectionScreen"
	case blendPromptScreen:
		return "blendPromptScreen"
	case editorScreen:
		return "editorScreen"
	case compareScreen:
		return "compareScreen"
	default:
		return fmt.Sprintf("unknownScreen(%d)", int(s))
	}
}

// Константы для TUI.
const (
	defaultListWidth  = 80 // Стандартная ширина терминала для списка
	defaultListHeight = 24 // Стандартная высота терминала для списка
	pathInputOffset   = 4  // Отступ для полей ввода

	keyEnter = "enter" // Клавиша Enter
	keyQuit  = "q"     // Клавиша выхода
	keyEsc   = "esc"   // Клавиша Escape
	keyAdd   = "a"     // Клавиша добавления
	keyDel   = "d"     // Клавиша удаления
	keySpace = " "     // Пробел: переключение выделения
)

// Метка псевдо-редактирования при откате к оригиналу. Версия-запись
// не создается, метка показывается только в статусе.
const revertStatusLabel = "Откат к оригиналу"

// galleryItem представляет изображение в списке галереи.
// Реализует интерфейс list.Item.
type galleryItem struct {
	img      *gallery.Image
	selected bool // Отмечено в режиме выделения
}

func (i galleryItem) Title() string {
	title := i.img.Name
	if i.selected {
		title = "[x] " + title
	}
	if i.img.Processing() {
		title += " [обработка...]"
	}
	return title
}

func (i galleryItem) Description() string {
	desc := fmt.Sprintf("Версий: %d", len(i.img.Versions))
	if len(i.img.Versions) > 0 && i.img.Current.Equal(i.img.Original) {
		// История есть, но показан оригинал: был откат
		desc += " | показан оригинал"
	}
	return desc
}

func (i galleryItem) FilterValue() string { return i.img.Name }

// model представляет состояние TUI приложения.
type model struct {
	state               screenState
	previousScreenState screenState // Предыдущее состояние (для возврата)

	store     *gallery.Store
	sel       *selection.Set
	apiClient api.Client

	galleryList      list.Model      // Список изображений галереи
	pathInput        textinput.Model // Поле ввода пути к файлам
	promptInput      textinput.Model // Поле ввода промпта редактирования
	blendPromptInput textinput.Model // Поле ввода промпта бленда

	// Состояние редактора. Сбрасывается при смене редактируемого изображения.
	editingID     string // ID изображения в редакторе
	viewingIndex  *int   // nil = просмотр Current, иначе индекс версии
	preserveFaces bool   // Флаг сохранения лиц для следующего редактирования
	peeking       bool   // Удержание кнопки мыши: показан оригинал

	boundary compare.Boundary // Граница сравнения "до/после"

	blendInFlight bool // Запрос бленда в полете
	blendCounter  int  // Счетчик для именования результатов бленда

	statusMessage string // Статусное сообщение внизу экрана
	err           error  // Последняя ошибка для отображения

	width    int
	height   int
	docStyle lipgloss.Style // Общий стиль для обрамления View

	helpTextMap map[screenState]string // Подсказки клавиш по экранам
	debugMode   bool
}

// Сообщение для очистки статуса.
type clearStatusMsg struct{}

// editingImage возвращает редактируемое изображение или nil.
func (m *model) editingImage() *gallery.Image {
	if m.editingID == "" {
		return nil
	}
	return m.store.Get(m.editingID)
}

// openEditor переключает редактор на изображение, сбрасывая состояние
// просмотра: viewing state не переживает смену изображения.
func (m *model) openEditor(imageID string) {
	if m.editingID != imageID {
		m.viewingIndex = nil
		m.preserveFaces = false
		m.peeking = false
		m.boundary = compare.New()
	}
	m.editingID = imageID
	m.state = editorScreen
}

// galleryOrder возвращает ID изображений в порядке отображения галереи.
func (m *model) galleryOrder() []string {
	images := m.store.Images()
	order := make([]string, len(images))
	for i, img := range images {
		order[i] = img.ID
	}
	return order
}

// refreshGalleryItems перестраивает элементы списка галереи из хранилища.
func (m *model) refreshGalleryItems() {
	images := m.store.Images()
	items := make([]list.Item, len(images))
	for i, img := range images {
		items[i] = galleryItem{
			img:      img,
			selected: m.sel.Active() && m.sel.Selected(img.ID),
		}
	}
	_ = m.galleryList.SetItems(items)
	m.galleryList.Title = fmt.Sprintf("Галерея (%d)", len(items))
}
