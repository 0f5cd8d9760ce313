package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const (
	CtxUsuarioID ctxKey = "usuarioID"
	CtxEsAdmin   ctxKey = "esAdmin"
)

func MiddlewareAutenticacion(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "Token ausente", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(h, "Bearer ")
		claims, err := ValidarToken(raw)
		if err != nil {
			http.Error(w, "Token inválido", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), CtxUsuarioID, claims.UsuarioID)
		ctx = context.WithValue(ctx, CtxEsAdmin, claims.EsAdmin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequiereAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := r.Context().Value(CtxEsAdmin)
		if ok, _ := v.(bool); !ok {
			http.Error(w, "Sólo administradores", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
