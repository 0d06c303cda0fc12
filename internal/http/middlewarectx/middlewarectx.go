// Package middlewarectx содержит HTTP middleware сервиса: проверку
// сессионного токена, проверку административных прав и ограничение
// частоты запросов. Данные аутентифицированного пользователя
// передаются обработчикам через контекст запроса.
package middlewarectx

import (
	"context"

	"github.com/magabrotheeeer/auto-catalog/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User — ключ для профиля аутентифицированного пользователя в контексте.
const User Key = "user"

// UserFromContext возвращает профиль пользователя из контекста запроса.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(User).(*models.User)
	return user, ok
}
