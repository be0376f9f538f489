package middleware

import (
	"log/slog"
	"net/http"

	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/api/apierr"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/middleware"
)

// Recovery turns panics in API handlers into a JSON 500 response
// instead of a dropped connection.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
