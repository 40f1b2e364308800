package middlewares

import (
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/cors"
)

// CorsMiddleware allows the configured frontend origins. CORS_ALLOWED_ORIGINS
// is a comma-separated list; it defaults to the local dev frontend.
func CorsMiddleware(next http.Handler) http.Handler {
	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ALLOWED_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	})(next)
}
