// Package compare реализует границу интерактивного сравнения "до/после":
// позицию в процентах ширины контейнера, управляемую указателем,
// и простой режим удержания для подглядывания оригинала.
package compare

// Пороги видимости подписей и границы значений.
const (
	// labelFadeLow — ниже этого процента подпись "до" скрывается.
	labelFadeLow = 15.0
	// labelFadeHigh — выше этого процента подпись "после" скрывается.
	labelFadeHigh = 85.0

	minPercent = 0.0
	maxPercent = 100.0

	defaultPercent = 50.0
)

// Boundary — граница сравнения двух изображений.
//
// Состояния: Idle и Dragging. Нажатие внутри контейнера переводит в
// Dragging (граница сразу прыгает к указателю), отпускание или отмена —
// обратно в Idle, граница остается на последней позиции. Терминального
// состояния нет, контрол переиспользуется.
type Boundary struct {
	percent  float64
	dragging bool

	// Геометрия контейнера в колонках терминала. Перемеряется при каждом
	// изменении размера окна, иначе расчет позиции границы разъезжается.
	left  int
	width int
}

// New создает границу в положении по умолчанию (середина).
func New() Boundary {
	return Boundary{percent: defaultPercent}
}

// SetContainer задает геометрию контейнера: левую колонку и ширину.
func (b *Boundary) SetContainer(left, width int) {
	b.left = left
	b.width = width
}

// Width возвращает текущую ширину контейнера.
func (b *Boundary) Width() int {
	return b.width
}

// Percent возвращает позицию границы в процентах [0,100].
func (b *Boundary) Percent() float64 {
	return b.percent
}

// Dragging сообщает, идет ли перетаскивание.
func (b *Boundary) Dragging() bool {
	return b.dragging
}

// percentAt переводит горизонтальную позицию указателя в проценты,
// зажимая результат в [0,100] независимо от координат вне контейнера.
func (b *Boundary) percentAt(x int) float64 {
	if b.width <= 0 {
		return b.percent
	}
	p := float64(x-b.left) / float64(b.width) * maxPercent
	if p < minPercent {
		p = minPercent
	}
	if p > maxPercent {
		p = maxPercent
	}
	return p
}

// Press обрабатывает нажатие указателя. Нажатие внутри контейнера
// начинает перетаскивание, граница сразу прыгает к указателю.
// Нажатие вне контейнера игнорируется. Возвращает true, если
// перетаскивание началось.
func (b *Boundary) Press(x int) bool {
	if b.width <= 0 || x < b.left || x >= b.left+b.width {
		return false
	}
	b.dragging = true
	b.percent = b.percentAt(x)
	return true
}

// Move обрабатывает перемещение указателя. События доставляются глобально:
// перетаскивание не прерывается, когда курсор выходит за пределы
// контейнера, — позиция просто зажимается в [0,100].
func (b *Boundary) Move(x int) {
	if !b.dragging {
		return
	}
	b.percent = b.percentAt(x)
}

// Nudge сдвигает границу на delta процентов без перетаскивания
// (клавиатурное управление). Результат зажимается в [0,100].
func (b *Boundary) Nudge(delta float64) {
	p := b.percent + delta
	if p < minPercent {
		p = minPercent
	}
	if p > maxPercent {
		p = maxPercent
	}
	b.percent = p
}

// Release завершает перетаскивание. Граница остается на последней позиции.
func (b *Boundary) Release() {
	b.dragging = false
}

// Column возвращает колонку границы относительно левого края контейнера.
func (b *Boundary) Column() int {
	return int(b.percent / maxPercent * float64(b.width))
}

// ShowBeforeLabel сообщает, видна ли подпись "до" (косметика).
func (b *Boundary) ShowBeforeLabel() bool {
	return b.percent >= labelFadeLow
}

// ShowAfterLabel сообщает, видна ли подпись "после" (косметика).
func (b *Boundary) ShowAfterLabel() bool {
	return b.percent <= labelFadeHigh
}

// PeekPress — режим удержания: полностью открывает изображение "до".
// Более простой режим того же примитива границы, используется
// редактором одиночного изображения.
func (b *Boundary) PeekPress() {
	b.percent = maxPercent
}

// PeekRelease возвращает отображение к отредактированному виду.
func (b *Boundary) PeekRelease() {
	b.percent = minPercent
}
