// Package apierrors содержит типизированные ошибки сервисного слоя:
// HTTP-обработчики выбирают по ним код ответа, не разбирая текст сообщения.
package apierrors

import "fmt"

// ValidationError - ошибка входных данных запроса заполнения: пустой шаблон,
// битый docx-контейнер, пустая запись данных. Транслируется в HTTP 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError создаёт ValidationError с отформатированным сообщением.
func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError - запрошенная запись истории заполнений отсутствует.
// Транслируется в HTTP 404.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// NewNotFoundError создаёт NotFoundError с отформатированным сообщением.
func NewNotFoundError(format string, args ...interface{}) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}
