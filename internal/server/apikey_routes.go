package server

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"github.com/dpramesti/habitd/internal/logger"
	"github.com/go-chi/chi/v5"
)

// createAPIKey mints a new bearer key for the requesting user. The plaintext
// key is returned exactly once; only its hash is stored.
func (s *Server) createAPIKey(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		writeError(w, http.StatusInternalServerError, "key generation failed")
		return
	}
	key := apiKeyPrefix + base64.RawURLEncoding.EncodeToString(raw)

	if err := s.store.PutAPIKey(hashAPIKey(key), userID); err != nil {
		logger.Error("Failed to store API key", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "database write failed")
		return
	}
	logger.Info("API key created", "user_id", userID, "key_hash", truncateHash(hashAPIKey(key)))
	writeJSON(w, http.StatusCreated, APIKeyCreateResponse{Key: key})
}

func (s *Server) listAPIKeys(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	hashes, err := s.store.ListAPIKeyHashes(userID)
	if err != nil {
		logger.Error("Failed to list API keys", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	writeJSON(w, http.StatusOK, APIKeyListResponse{Hashes: hashes})
}

func (s *Server) deleteAPIKey(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)
	hash := chi.URLParam(r, "hash")

	// only the owner may revoke a key
	owner, found, err := s.store.GetAPIKey(hash)
	if err != nil {
		logger.Error("Failed to look up API key", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	if !found || owner != userID {
		writeError(w, http.StatusNotFound, "key not found")
		return
	}

	if err := s.store.DeleteAPIKey(hash); err != nil {
		logger.Error("Failed to delete API key", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "database write failed")
		return
	}
	logger.Info("API key deleted", "user_id", userID, "key_hash", truncateHash(hash))
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
