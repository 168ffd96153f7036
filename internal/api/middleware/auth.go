package middleware

import (
	"context"
	"net/http"

	"github.com/KUL-Services/bookly-sub001/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

const msgMissingUserID = "отсутствует заголовок X-User-ID"

// Auth проверяет наличие заголовка X-User-ID и кладет его значение в контекст
// Запросы без заголовка отклоняются с 401
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID извлекает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}
