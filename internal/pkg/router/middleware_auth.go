package router

import (
	"net/http"
	"strings"

	"github.com/otentika/otentika/internal/pkg/jwt"
)

func middlewareAuthentication(verifier jwt.JWT, publicEndpoints map[string]map[string]struct{}) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := matchedRoutePath(r)

			p := strings.Fields(r.Header.Get("Authorization"))

			if s, ok := publicEndpoints[r.Method]; ok {
				if _, skip := s[path]; skip {
					// Public endpoints still honor a bearer token when one
					// is sent, so callers can act with their identity.
					if len(p) == 2 && strings.EqualFold(p[0], "Bearer") {
						if claims, err := verifier.Verify(p[1]); err == nil {
							r = r.WithContext(jwt.SetAuth(r.Context(), claims))
						}
					}
					next.ServeHTTP(w, r)
					return
				}
			}

			if len(p) != 2 || !strings.EqualFold(p[0], "Bearer") {
				writeJSON(w, failureResponse{Message: "Authentication required"}, http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(p[1])
			if err != nil {
				writeJSON(w, failureResponse{Message: "Invalid or expired token"}, http.StatusUnauthorized)
				return
			}

			ctx := jwt.SetAuth(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
