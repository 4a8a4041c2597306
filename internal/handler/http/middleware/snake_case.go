package middleware

import (
	"bytes"
	"io"
	"mime"
	"net/http"

	"github.com/tarpworks/payroll-backend/internal/handler/http/response"
	"github.com/tarpworks/payroll-backend/internal/pkg/casing"
)

// SnakeCaseBody rewrites camelCase keys of JSON request bodies to snake_case,
// so dashboard clients may post either form. Bodies that fail to parse are
// passed through for the handler to reject.
func SnakeCaseBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil || r.Body == http.NoBody || !isJSON(r.Header.Get("Content-Type")) {
			next.ServeHTTP(w, r)
			return
		}

		raw, err := io.ReadAll(r.Body)
		r.Body.Close()
		if err != nil {
			response.BadRequest(w, "Invalid request body", nil)
			return
		}

		if len(bytes.TrimSpace(raw)) > 0 {
			if converted, err := casing.JSONToSnake(raw); err == nil {
				raw = converted
			}
		}

		r.Body = io.NopCloser(bytes.NewReader(raw))
		r.ContentLength = int64(len(raw))
		next.ServeHTTP(w, r)
	})
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}
