// Package selection реализует ограниченный мульти-выбор изображений
// галереи для операции мульти-блендинга.
package selection

import (
	"errors"
	"log/slog"
)

// Границы набора выделения для блендинга.
const (
	// MinBlendSize — минимальный размер набора, при котором доступен бленд.
	MinBlendSize = 2
	// MaxSize — максимальный размер набора выделения.
	MaxSize = 4
)

// ErrLimitExceeded сигнализирует о попытке выбрать больше MaxSize изображений.
// Нефатальная, информационная ошибка: состояние набора не меняется.
var ErrLimitExceeded = errors.New("можно выбрать не более 4 изображений")

// Set — набор выбранных ID изображений. Порядок для бленда определяется
// порядком отображения галереи, а не порядком кликов, поэтому внутри
// достаточно множества (см. Ordered).
type Set struct {
	active bool
	ids    map[string]struct{}
}

// New создает неактивный пустой набор выделения.
func New() *Set {
	return &Set{ids: make(map[string]struct{})}
}

// Active сообщает, включен ли режим выделения.
func (s *Set) Active() bool {
	return s.active
}

// Enter включает режим выделения с пустым набором.
func (s *Set) Enter() {
	s.active = true
	s.ids = make(map[string]struct{})
	slog.Debug("Режим выделения включен")
}

// Exit выключает режим выделения и всегда очищает набор.
func (s *Set) Exit() {
	s.active = false
	s.ids = make(map[string]struct{})
	slog.Debug("Режим выделения выключен, набор очищен")
}

// Toggle переключает выделение изображения. Если изображение уже выбрано —
// снимает выделение. Попытка выбрать пятое изображение возвращает
// ErrLimitExceeded, не меняя набор.
func (s *Set) Toggle(imageID string) error {
	if _, ok := s.ids[imageID]; ok {
		delete(s.ids, imageID)
		return nil
	}
	if len(s.ids) >= MaxSize {
		return ErrLimitExceeded
	}
	s.ids[imageID] = struct{}{}
	return nil
}

// Selected сообщает, выбрано ли изображение.
func (s *Set) Selected(imageID string) bool {
	_, ok := s.ids[imageID]
	return ok
}

// Size возвращает текущий размер набора.
func (s *Set) Size() int {
	return len(s.ids)
}

// Remove удаляет ID из набора (например, при удалении изображения из
// галереи: выделение никогда не должно ссылаться на удаленное изображение).
func (s *Set) Remove(imageID string) {
	delete(s.ids, imageID)
}

// BlendEligible сообщает, доступна ли операция бленда: 2..4 изображения.
func (s *Set) BlendEligible() bool {
	return len(s.ids) >= MinBlendSize && len(s.ids) <= MaxSize
}

// Ordered возвращает выбранные ID в порядке отображения галереи:
// первый элемент — референсное изображение бленда, остальные — целевые.
// galleryOrder — полный список ID галереи в порядке отображения.
func (s *Set) Ordered(galleryOrder []string) []string {
	ordered := make([]string, 0, len(s.ids))
	for _, id := range galleryOrder {
		if _, ok := s.ids[id]; ok {
			ordered = append(ordered, id)
		}
	}
	return ordered
}
