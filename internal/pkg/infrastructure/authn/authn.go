package authn

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/opendatapdx/api-cataloger/internal/pkg/domain"
	"github.com/rs/zerolog"
)

type contextKey struct{}

// Middleware resolves the requester's identity from a bearer token issued
// by the session provider. Requests without a token, or with one that does
// not verify, proceed as anonymous rather than being rejected, the
// visibility rules downstream take care of the rest.
func Middleware(logger zerolog.Logger, secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requester := requesterFromHeader(logger, secret, r.Header.Get("Authorization"))
			ctx := context.WithValue(r.Context(), contextKey{}, requester)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequesterFromContext returns the requester stored by Middleware, or an
// anonymous one when the middleware never ran.
func RequesterFromContext(ctx context.Context) domain.Requester {
	if requester, ok := ctx.Value(contextKey{}).(domain.Requester); ok {
		return requester
	}
	return domain.Requester{}
}

func requesterFromHeader(log zerolog.Logger, secret []byte, header string) domain.Requester {
	const prefix = "Bearer "

	if !strings.HasPrefix(header, prefix) {
		return domain.Requester{}
	}

	token, err := jwt.Parse(strings.TrimPrefix(header, prefix), func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		log.Debug().Err(err).Msg("rejected bearer token")
		return domain.Requester{}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Requester{}
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return domain.Requester{}
	}

	id, err := strconv.ParseUint(subject, 10, 32)
	if err != nil {
		log.Debug().Msgf("bearer token subject %s is not a publisher id", subject)
		return domain.Requester{}
	}

	admin, _ := claims["admin"].(bool)

	return domain.Requester{ID: uint(id), Admin: admin}
}
