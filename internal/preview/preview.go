// Package preview отрисовывает уменьшенные превью изображений в терминале
// цветной мозаикой из полублоков: один символ "▀" кодирует два пикселя
// (цвет текста — верхний, цвет фона — нижний).
package preview

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	// Регистрируем декодеры стандартных форматов.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/charmbracelet/lipgloss"

	// WebP декодируется через golang.org/x/image.
	_ "golang.org/x/image/webp"
)

const halfBlock = "▀"

// pixelRowsPerCell — каждый текстовый ряд кодирует две строки пикселей.
const pixelRowsPerCell = 2

// sampler усредняет цвета исходного изображения по ячейкам сетки.
type sampler struct {
	img  image.Image
	cols int
	rows int // Количество строк пикселей (вдвое больше текстовых рядов)
}

// at возвращает средний цвет ячейки (col, row) сетки cols x rows.
func (s sampler) at(col, row int) (uint8, uint8, uint8) {
	b := s.img.Bounds()
	x0 := b.Min.X + col*b.Dx()/s.cols
	x1 := b.Min.X + (col+1)*b.Dx()/s.cols
	y0 := b.Min.Y + row*b.Dy()/s.rows
	y1 := b.Min.Y + (row+1)*b.Dy()/s.rows
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	var sumR, sumG, sumB, n uint64
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r, g, b16, _ := s.img.At(x, y).RGBA()
			sumR += uint64(r >> 8)
			sumG += uint64(g >> 8)
			sumB += uint64(b16 >> 8)
			n++
		}
	}
	if n == 0 {
		return 0, 0, 0
	}
	return uint8(sumR / n), uint8(sumG / n), uint8(sumB / n)
}

// decode разбирает байты изображения в image.Image.
func decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("ошибка декодирования изображения для превью: %w", err)
	}
	return img, nil
}

// cellStyle возвращает стиль полублока для пары пикселей.
func cellStyle(topR, topG, topB, botR, botG, botB uint8) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", topR, topG, topB))).
		Background(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", botR, botG, botB)))
}

// Render отрисовывает превью изображения размером cols x rows текстовых ячеек.
func Render(data []byte, cols, rows int) (string, error) {
	img, err := decode(data)
	if err != nil {
		return "", err
	}
	s := sampler{img: img, cols: cols, rows: rows * pixelRowsPerCell}

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		if row > 0 {
			sb.WriteString("\n")
		}
		for col := 0; col < cols; col++ {
			tr, tg, tb := s.at(col, row*pixelRowsPerCell)
			br, bg, bb := s.at(col, row*pixelRowsPerCell+1)
			sb.WriteString(cellStyle(tr, tg, tb, br, bg, bb).Render(halfBlock))
		}
	}
	return sb.String(), nil
}

// RenderSplit отрисовывает сравнение "до/после": колонки левее boundaryCol
// берутся из before, остальные — из after. Сама граница отмечается
// вертикальной чертой. boundaryCol зажимается в [0, cols].
func RenderSplit(before, after []byte, cols, rows, boundaryCol int) (string, error) {
	beforeImg, err := decode(before)
	if err != nil {
		return "", err
	}
	afterImg, err := decode(after)
	if err != nil {
		return "", err
	}
	if boundaryCol < 0 {
		boundaryCol = 0
	}
	if boundaryCol > cols {
		boundaryCol = cols
	}

	pixRows := rows * pixelRowsPerCell
	sb := sampler{img: beforeImg, cols: cols, rows: pixRows}
	sa := sampler{img: afterImg, cols: cols, rows: pixRows}
	boundaryStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15"))

	var out strings.Builder
	for row := 0; row < rows; row++ {
		if row > 0 {
			out.WriteString("\n")
		}
		for col := 0; col < cols; col++ {
			if col == boundaryCol {
				out.WriteString(boundaryStyle.Render("│"))
				continue
			}
			src := sa
			if col < boundaryCol {
				src = sb
			}
			tr, tg, tb := src.at(col, row*pixelRowsPerCell)
			br, bg, bb := src.at(col, row*pixelRowsPerCell+1)
			out.WriteString(cellStyle(tr, tg, tb, br, bg, bb).Render(halfBlock))
		}
	}
	return out.String(), nil
}
