package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBoundary_PressInside проверяет начало перетаскивания внутри контейнера.
func TestBoundary_PressInside(t *testing.T) {
	b := New()
	b.SetContainer(10, 100)

	started := b.Press(60)

	require.True(t, started)
	assert.True(t, b.Dragging())
	assert.InDelta(t, 50.0, b.Percent(), 0.01, "граница прыгает к указателю")
}

// TestBoundary_PressOutside проверяет, что нажатие вне контейнера игнорируется.
func TestBoundary_PressOutside(t *testing.T) {
	tests := []struct {
		name string
		x    int
	}{
		{"Левее контейнера", 5},
		{"Правее контейнера", 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			b.SetContainer(10, 100)

			started := b.Press(tt.x)

			assert.False(t, started)
			assert.False(t, b.Dragging())
			assert.InDelta(t, 50.0, b.Percent(), 0.01, "позиция не меняется")
		})
	}
}

// TestBoundary_DragClamp проверяет зажим процента в [0,100] при
// перемещении указателя за пределы контейнера.
func TestBoundary_DragClamp(t *testing.T) {
	b := New()
	b.SetContainer(10, 100)
	require.True(t, b.Press(60))

	// Указатель ушел далеко влево
	b.Move(-500)
	assert.InDelta(t, 0.0, b.Percent(), 0.01)

	// Перетаскивание не прервалось выходом за пределы
	assert.True(t, b.Dragging())

	// Указатель ушел далеко вправо
	b.Move(9999)
	assert.InDelta(t, 100.0, b.Percent(), 0.01)
}

// TestBoundary_MoveWithoutDrag проверяет, что движение без нажатия
// не меняет границу.
func TestBoundary_MoveWithoutDrag(t *testing.T) {
	b := New()
	b.SetContainer(0, 100)

	b.Move(25)

	assert.InDelta(t, 50.0, b.Percent(), 0.01)
}

// TestBoundary_Release проверяет, что после отпускания граница держит
// последнюю позицию, а контрол можно использовать снова.
func TestBoundary_Release(t *testing.T) {
	b := New()
	b.SetContainer(0, 100)
	require.True(t, b.Press(30))
	b.Move(70)

	b.Release()

	assert.False(t, b.Dragging())
	assert.InDelta(t, 70.0, b.Percent(), 0.01, "граница держит последнюю позицию")

	// Контрол переиспользуется: новое нажатие снова начинает перетаскивание
	require.True(t, b.Press(10))
	assert.True(t, b.Dragging())
	assert.InDelta(t, 10.0, b.Percent(), 0.01)
}

// TestBoundary_Labels проверяет пороги видимости подписей.
func TestBoundary_Labels(t *testing.T) {
	tests := []struct {
		name       string
		percent    float64
		showBefore bool
		showAfter  bool
	}{
		{"Граница у левого края", 5, false, true},
		{"Ровно на нижнем пороге", 15, true, true},
		{"Середина", 50, true, true},
		{"Ровно на верхнем пороге", 85, true, true},
		{"Граница у правого края", 95, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			b.SetContainer(0, 100)
			require.True(t, b.Press(int(tt.percent)))

			assert.Equal(t, tt.showBefore, b.ShowBeforeLabel())
			assert.Equal(t, tt.showAfter, b.ShowAfterLabel())
		})
	}
}

// TestBoundary_Peek проверяет режим удержания.
func TestBoundary_Peek(t *testing.T) {
	b := New()
	b.SetContainer(0, 80)

	b.PeekPress()
	assert.InDelta(t, 100.0, b.Percent(), 0.01, "удержание полностью открывает оригинал")

	b.PeekRelease()
	assert.InDelta(t, 0.0, b.Percent(), 0.01, "отпускание возвращает отредактированный вид")
}

// TestBoundary_Column проверяет пересчет процента в колонку контейнера.
func TestBoundary_Column(t *testing.T) {
	b := New()
	b.SetContainer(0, 80)
	require.True(t, b.Press(40))

	assert.Equal(t, 40, b.Column())

	b.Move(0)
	assert.Equal(t, 0, b.Column())

	b.Move(200)
	assert.Equal(t, 80, b.Column())
}

// TestBoundary_ZeroWidth проверяет, что контейнер нулевой ширины
// не приводит к делению на ноль.
func TestBoundary_ZeroWidth(t *testing.T) {
	b := New()
	b.SetContainer(0, 0)

	assert.False(t, b.Press(10))
	b.Move(10)
	assert.InDelta(t, 50.0, b.Percent(), 0.01)
}
