package http

import (
	"bytes"
	"crypto/hmac"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/internal/utils"
)

// checkBodyHash verifies the HashSHA256 header against the raw request body
// when the server runs with a hash key. Requests without a body pass.
func (h *Handler) checkBodyHash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.hashKey == "" || r.Body == nil {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Str("func", "*Handler.checkBodyHash").Msg("failed to read request body")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		if len(body) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		presented, err := hex.DecodeString(r.Header.Get(utils.HashHeader))
		if err != nil || len(presented) == 0 {
			writeError(w, r, fmt.Errorf("%w: missing or malformed %s header", ErrIntegrityCheckFailed, utils.HashHeader), "body hash rejected")
			return
		}

		if !hmac.Equal(presented, utils.Hash(body)) {
			writeError(w, r, ErrIntegrityCheckFailed, "body hash rejected")
			return
		}

		log.Debug().Str("func", "*Handler.checkBodyHash").Msg("hashes are equal")
		next.ServeHTTP(w, r)
	})
}
