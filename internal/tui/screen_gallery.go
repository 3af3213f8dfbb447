package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// updateGalleryScreen обрабатывает сообщения для экрана галереи.
func (m *model) updateGalleryScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	// Сначала обновляем список
	m.galleryList, cmd = m.galleryList.Update(msg)
	cmds = append(cmds, cmd)

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit:
			// Выход по 'q', если не активен режим фильтрации
			if m.galleryList.FilterState() == list.Unfiltered {
				return m, tea.Quit
			}
		case keyEnter:
			if item, isGalleryItem := m.galleryList.SelectedItem().(galleryItem); isGalleryItem {
				m.openEditor(item.img.ID)
				slog.Info("Переход в редактор изображения", "name", item.img.Name)
				cmds = append(cmds, tea.ClearScreen)
			}
		case keyAdd:
			m.pathInput.SetValue("")
			m.pathInput.Focus()
			m.state = addPathScreen
			slog.Info("Переход к добавлению изображений")
			return m, tea.ClearScreen
		case keyDel:
			// 'd' в строке фильтра — текст, а не команда удаления
			if m.galleryList.FilterState() != list.Unfiltered {
				break
			}
			if item, isGalleryItem := m.galleryList.SelectedItem().(galleryItem); isGalleryItem {
				return m.deleteImage(item.img.ID, item.img.Name)
			}
		case "s":
			// Режим выделения доступен только при непустой галерее
			if m.store.Len() == 0 {
				return m.setStatusMessage("Галерея пуста, выбирать нечего")
			}
			m.sel.Enter()
			m.state = selectionScreen
			m.refreshGalleryItems()
			slog.Info("Режим выделения включен")
			return m, tea.ClearScreen
		}
	}
	return m, tea.Batch(cmds...)
}

// deleteImage удаляет изображение из хранилища и из активного набора
// выделения: выделение не должно ссылаться на удаленное изображение.
func (m *model) deleteImage(imageID, name string) (tea.Model, tea.Cmd) {
	if !m.store.RemoveImage(imageID) {
		return m, nil
	}
	m.sel.Remove(imageID)
	if m.editingID == imageID {
		m.editingID = ""
	}
	m.refreshGalleryItems()
	slog.Info("Изображение удалено", "name", name)
	return m.setStatusMessage("Удалено: " + name)
}

// viewGalleryScreen отрисовывает галерею. Используется и обычным экраном,
// и режимом выделения: отличие только в отметках и заголовке.
func (m *model) viewGalleryScreen() string {
	if m.state == selectionScreen {
		m.galleryList.Title = selectionTitle(m.sel.Size())
	}
	return m.galleryList.View()
}
