package gallery

import (
	"time"

	"github.com/google/uuid"
)

// Version представляет один зафиксированный результат редактирования
// вместе с промптом, который его породил. Неизменяема после создания
// и принадлежит исключительно родительскому Image.
type Version struct {
	ID        string     // Уникальный ID версии
	Content   ContentRef // Результат редактирования
	Prompt    string     // Текст промпта, породившего версию
	CreatedAt time.Time  // Время создания (для отображения и сортировки)
}

// newVersion создает версию с новым ID и текущим временем.
func newVersion(content ContentRef, prompt string) Version {
	return Version{
		ID:        uuid.NewString(),
		Content:   content,
		Prompt:    prompt,
		CreatedAt: time.Now(),
	}
}

// Image — изображение галереи с линейной историей редактирований.
//
// Инварианты:
//   - Original неизменяем после создания.
//   - Current == Versions[len-1].Content, если история непуста, иначе Original.
//     После Revert инвариант временно нарушается (Current == Original при
//     непустой истории) и восстанавливается следующим AppendVersion.
type Image struct {
	ID       string     // Уникальный ID изображения
	Name     string     // Отображаемое имя
	Original ContentRef // Исходное содержимое (не меняется)
	Current  ContentRef // Текущее активное содержимое
	Versions []Version  // История редактирований в хронологическом порядке

	// Generation — счетчик поколений запросов к API для этого изображения.
	// Инкрементируется при каждой отправке запроса; токен поколения
	// передается вместе с запросом и сверяется при получении ответа.
	// Заменяет булевый флаг "isProcessing" и отсекает устаревшие ответы.
	Generation uint64
	// PendingGeneration — поколение запроса, ожидающего ответа.
	// 0 означает, что активных запросов нет.
	PendingGeneration uint64
}

// Processing сообщает, выполняется ли сейчас запрос для изображения.
// PendingGeneration != 0 означает, что ответ еще не получен.
func (img *Image) Processing() bool {
	return img.PendingGeneration != 0
}

// LatestVersion возвращает последнюю версию истории или nil, если история пуста.
func (img *Image) LatestVersion() *Version {
	if len(img.Versions) == 0 {
		return nil
	}
	return &img.Versions[len(img.Versions)-1]
}

// ActiveContent возвращает содержимое для отображения: Current, если
// viewingIndex == nil, иначе содержимое версии с указанным индексом.
// Индекс вне диапазона трактуется как просмотр Current.
func (img *Image) ActiveContent(viewingIndex *int) ContentRef {
	if viewingIndex == nil {
		return img.Current
	}
	i := *viewingIndex
	if i < 0 || i >= len(img.Versions) {
		return img.Current
	}
	return img.Versions[i].Content
}
