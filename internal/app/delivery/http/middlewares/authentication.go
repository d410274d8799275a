package middlewares

import (
	"context"
	"fmt"
	"mentorin-service/internal/app/models"
	"mentorin-service/internal/pkg/constvars"
	"mentorin-service/internal/pkg/exceptions"
	"mentorin-service/internal/pkg/utils"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// Authentication resolves the Bearer token to a stored session and puts the
// session's mentor id into the request context.
func (m *Middlewares) Authentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		sessionID, err := utils.ParseJWT(tokenString, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		sessionKey := fmt.Sprintf(constvars.RedisKeySessionFormat, sessionID)
		sessionData, err := m.RedisRepository.Get(r.Context(), sessionKey)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}
		if sessionData == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidSession(nil))
			return
		}

		session := new(models.AuthSession)
		if err := json.Unmarshal([]byte(sessionData), session); err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidSession(err))
			return
		}
		if session.MentorID == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidSession(nil))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_MENTOR_ID_KEY, session.MentorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
