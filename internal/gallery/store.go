package gallery

import (
	"log/slog"

	"github.com/google/uuid"
)

// Store владеет авторитетным списком изображений галереи.
// Все мутации синхронны и атомарны относительно наблюдения: Store
// рассчитан на единственный логический поток управления (цикл событий TUI)
// и не защищен мьютексом.
type Store struct {
	images []*Image
}

// NewStore создает пустое хранилище галереи.
func NewStore() *Store {
	return &Store{}
}

// Images возвращает изображения в порядке отображения галереи.
// Срез принадлежит хранилищу, вызывающий не должен его менять.
func (s *Store) Images() []*Image {
	return s.images
}

// Len возвращает количество изображений в галерее.
func (s *Store) Len() int {
	return len(s.images)
}

// Get ищет изображение по ID. Возвращает nil, если не найдено.
func (s *Store) Get(id string) *Image {
	for _, img := range s.images {
		if img.ID == id {
			return img
		}
	}
	return nil
}

// AddImage добавляет новое изображение с пустой историей версий
// и возвращает его. Original и Current указывают на одно содержимое.
func (s *Store) AddImage(content ContentRef, name string) *Image {
	img := &Image{
		ID:       uuid.NewString(),
		Name:     name,
		Original: content,
		Current:  content,
	}
	s.images = append(s.images, img)
	slog.Info("Изображение добавлено в галерею", "id", img.ID, "name", name)
	return img
}

// AddGeneratedImage добавляет результат мульти-блендинга как совершенно
// новое изображение: сгенерированное содержимое становится его Original,
// история исходных изображений не затрагивается.
func (s *Store) AddGeneratedImage(content ContentRef, label string) *Image {
	return s.AddImage(content, label)
}

// RemoveImage удаляет изображение по ID. Возвращает true, если
// изображение было найдено и удалено. Удаление из активного набора
// выделения — обязанность вызывающего слоя.
func (s *Store) RemoveImage(id string) bool {
	for i, img := range s.images {
		if img.ID == id {
			s.images = append(s.images[:i], s.images[i+1:]...)
			slog.Info("Изображение удалено из галереи", "id", id)
			return true
		}
	}
	return false
}

// AppendVersion фиксирует результат редактирования: создает версию
// с новым ID и текущим временем, добавляет ее в историю и делает
// содержимое текущим. Обе мутации происходят вместе — частичного
// обновления не бывает. Неизвестный ID — тихий no-op: ID генерируются
// внутри и наружу не отдаются, битый ID означает, что изображение
// уже удалили.
func (s *Store) AppendVersion(imageID string, content ContentRef, prompt string) {
	img := s.Get(imageID)
	if img == nil {
		slog.Warn("AppendVersion: изображение не найдено", "id", imageID)
		return
	}
	img.Versions = append(img.Versions, newVersion(content, prompt))
	img.Current = content
	slog.Info("Версия добавлена",
		"image_id", imageID,
		"version_count", len(img.Versions),
		"prompt", prompt,
	)
}

// UpdateImage — синоним AppendVersion в терминах галереи.
// Оставлен отдельным методом, чтобы вызывающий код читался в терминах
// "обновить изображение", а не "дописать историю".
func (s *Store) UpdateImage(imageID string, content ContentRef, prompt string) {
	s.AppendVersion(imageID, content, prompt)
}

// Revert возвращает Current к Original, НЕ обрезая историю версий.
// Версия-запись не создается: откат наблюдаем как смена содержимого
// с фиксированной синтетической меткой на стороне UI. Инвариант
// "Current == последняя версия" при непустой истории временно
// нарушается и восстанавливается следующим AppendVersion.
func (s *Store) Revert(imageID string) {
	img := s.Get(imageID)
	if img == nil {
		slog.Warn("Revert: изображение не найдено", "id", imageID)
		return
	}
	img.Current = img.Original
	slog.Info("Откат к оригиналу", "image_id", imageID, "versions_kept", len(img.Versions))
}

// BeginRequest регистрирует отправку запроса к API для изображения
// и возвращает токен поколения, который должен вернуться вместе с
// ответом. Возвращает 0, если изображение не найдено.
func (s *Store) BeginRequest(imageID string) uint64 {
	img := s.Get(imageID)
	if img == nil {
		return 0
	}
	img.Generation++
	img.PendingGeneration = img.Generation
	return img.Generation
}

// FinishRequest завершает запрос с указанным токеном поколения.
// Возвращает true, если токен актуален и результат можно применять.
// Устаревший токен (изображение успело отправить новый запрос или
// было удалено) дает false — такой ответ отбрасывается.
func (s *Store) FinishRequest(imageID string, generation uint64) bool {
	img := s.Get(imageID)
	if img == nil {
		return false
	}
	if img.PendingGeneration != generation {
		slog.Warn("Получен устаревший ответ API, отбрасываем",
			"image_id", imageID,
			"response_generation", generation,
			"pending_generation", img.PendingGeneration,
		)
		return false
	}
	img.PendingGeneration = 0
	return true
}
