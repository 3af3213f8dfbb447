package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/maynagashev/imgkeeper/internal/api"
	"github.com/maynagashev/imgkeeper/internal/compare"
	"github.com/maynagashev/imgkeeper/internal/gallery"
	"github.com/maynagashev/imgkeeper/internal/selection"
)

// Константы, используемые при инициализации.
const (
	initPathCharLimit   = 4096
	initPromptCharLimit = 2048
	initPromptWidth     = 60
)

// initGalleryList инициализирует основной компонент списка галереи.
func initGalleryList() list.Model {
	delegate := list.NewDefaultDelegate()
	// Настраиваем цвета для лучшей видимости
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("212")).
		BorderLeftForeground(lipgloss.Color("212"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("240")).
		BorderLeftForeground(lipgloss.Color("212"))

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Галерея"
	l.SetShowHelp(false) // Мы переопределяем справку
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = list.DefaultStyles().Title.Bold(true)
	return l
}

// initPathInput инициализирует поле ввода пути к файлам.
func initPathInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "/path/to/image.png (несколько через запятую)"
	ti.CharLimit = initPathCharLimit
	ti.Width = defaultListWidth - pathInputOffset
	return ti
}

// initPromptInput инициализирует поле ввода промпта редактирования.
func initPromptInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Опишите редактирование, например: make it a pencil sketch"
	ti.CharLimit = initPromptCharLimit
	ti.Width = initPromptWidth
	return ti
}

// initBlendPromptInput инициализирует поле ввода промпта бленда.
func initBlendPromptInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Пусто = перенос стиля первого изображения на остальные"
	ti.CharLimit = initPromptCharLimit
	ti.Width = initPromptWidth
	return ti
}

// initHelpTextMap задает подсказки клавиш для каждого экрана.
func initHelpTextMap() map[screenState]string {
	return map[screenState]string{
		galleryScreen:     "enter: редактор | a: добавить | d: удалить | s: выбор для бленда | q: выход",
		addPathScreen:     "enter: добавить файлы | esc: назад",
		selectionScreen:   "space: отметить | enter: бленд | d: удалить | esc: выйти из выбора",
		blendPromptScreen: "enter: запустить бленд | esc: назад",
		editorScreen:      "enter: промпт | f: лица | b: откат | ↑/↓: версии | c: сравнение | мышь (удержать): оригинал | esc: назад",
		compareScreen:     "мышь: перетащить границу | ←/→: сдвиг | esc: назад в редактор",
	}
}

// initDocStyle инициализирует основной стиль документа.
func initDocStyle() lipgloss.Style {
	return lipgloss.NewStyle().Margin(docStyleMarginVertical, docStyleMarginHorizontal)
}

// initModel создает начальное состояние модели.
func initModel(apiClient api.Client, debugMode bool) model {
	m := model{
		state:            galleryScreen,
		store:            gallery.NewStore(),
		sel:              selection.New(),
		apiClient:        apiClient,
		galleryList:      initGalleryList(),
		pathInput:        initPathInput(),
		promptInput:      initPromptInput(),
		blendPromptInput: initBlendPromptInput(),
		boundary:         compare.New(),
		docStyle:         initDocStyle(),
		helpTextMap:      initHelpTextMap(),
		debugMode:        debugMode,
	}
	m.refreshGalleryItems()
	return m
}
