package middleware

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
)

// LastActiveUpdater records that a user made an authenticated request.
type LastActiveUpdater interface {
	UpdateLastActive(ctx context.Context, userID string) error
}

func UpdateLastActiveMiddleware(users LastActiveUpdater) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetUserFromContext(r.Context())
			if claims != nil {
				if err := users.UpdateLastActive(r.Context(), claims.UserID); err != nil {
					logrus.WithError(err).WithField("userID", claims.UserID).Debug("Failed to update last active")
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
