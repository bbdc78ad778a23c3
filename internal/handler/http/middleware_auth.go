package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-diary-keeper/internal/crypto"
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/internal/service"
	"github.com/MKhiriev/go-diary-keeper/internal/utils"
)

// auth enforces the session JWT. On success the user id is stored in the
// request context under [utils.UserIDCtxKey]. Every rejection is a 401 with
// code TOKEN_INVALID.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, fmt.Errorf("%w: %w", service.ErrTokenIsExpiredOrInvalid, ErrEmptyAuthorizationHeader), "request rejected")
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: %w", service.ErrTokenIsExpiredOrInvalid, err), "request rejected")
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: %w", service.ErrTokenIsExpiredOrInvalid, err), "error occurred during parsing token")
			return
		}

		ctx = logger.FromContext(ctx).With().Int64("user_id", token.UserID).Logger().WithContext(ctx)
		next.ServeHTTP(w, r.WithContext(utils.WithUserID(ctx, token.UserID)))
	})
}

// diaryToken checks the possession token in X-DIARY-TOKEN. It runs after
// auth and before any diary storage access.
func (h *Handler) diaryToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := utils.GetUserIDFromContext(ctx)
		if !ok {
			writeError(w, r, ErrNoUserIDInContext, "diary token check without session")
			return
		}

		presented := r.Header.Get(crypto.DiaryTokenHeader)
		if err := h.services.DiaryTokenService.Verify(ctx, userID, presented); err != nil {
			writeError(w, r, err, "diary token rejected")
			return
		}

		next.ServeHTTP(w, r)
	})
}
