package gallery

import (
	"github.com/google/uuid"
)

// ContentRef — непрозрачная ссылка на байты изображения.
// После создания содержимое считается неизменяемым: все операции
// редактирования порождают новый ContentRef, а не меняют существующий.
type ContentRef struct {
	ID       string // Уникальный идентификатор содержимого
	Data     []byte // Сырые байты изображения (JPEG/PNG/...)
	MIMEType string // MIME-тип содержимого, например "image/png"
}

// NewContentRef создает новую ссылку на содержимое с уникальным ID.
func NewContentRef(data []byte, mimeType string) ContentRef {
	return ContentRef{
		ID:       uuid.NewString(),
		Data:     data,
		MIMEType: mimeType,
	}
}

// IsZero сообщает, что ссылка не инициализирована.
func (c ContentRef) IsZero() bool {
	return c.ID == ""
}

// Equal сравнивает две ссылки по идентификатору содержимого.
// Байты не сравниваются: ID уникален для каждого созданного содержимого.
func (c ContentRef) Equal(other ContentRef) bool {
	return c.ID == other.ID
}
