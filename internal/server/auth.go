package server

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dpramesti/habitd/internal/config"
	"github.com/dpramesti/habitd/internal/logger"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gorilla/securecookie"
	"golang.org/x/oauth2"
)

const (
	sessionCookieName = "session"
	sessionMaxAge     = 24 * time.Hour
	apiKeyPrefix      = "hbt_"
	anonymousUser     = "anonymous"
)

type userCtxKey struct{}

type User struct {
	UserID  string
	Subject string
	Email   string
}

type authProvider struct {
	oauth2   *oauth2.Config
	verifier *oidc.IDTokenVerifier
	state    *stateStore
	cookie   *securecookie.SecureCookie
}

func configureOIDC(cfg *config.Config) (*authProvider, error) {
	prov, err := oidc.NewProvider(context.Background(), cfg.OIDC.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("create OIDC provider: %w", err)
	}

	hashKey := securecookie.GenerateRandomKey(64)
	blockKey := securecookie.GenerateRandomKey(32)
	if hashKey == nil || blockKey == nil {
		return nil, fmt.Errorf("failed to generate secure cookie keys")
	}
	cookie := securecookie.New(hashKey, blockKey)
	cookie.MaxAge(int(sessionMaxAge.Seconds()))

	scopes := cfg.OIDC.Scopes
	if len(scopes) == 0 {
		scopes = []string{oidc.ScopeOpenID, "email"}
	}

	logger.Info("OIDC provider configured", "issuer", cfg.OIDC.IssuerURL)
	return &authProvider{
		oauth2: &oauth2.Config{
			ClientID:     cfg.OIDC.ClientID,
			ClientSecret: cfg.OIDC.ClientSecret,
			Endpoint:     prov.Endpoint(),
			RedirectURL:  cfg.OIDC.RedirectURL,
			Scopes:       scopes,
		},
		verifier: prov.Verifier(&oidc.Config{ClientID: cfg.OIDC.ClientID}),
		state:    newStateStore(5 * time.Minute),
		cookie:   cookie,
	}, nil
}

// stateStore holds in-flight login state (PKCE verifier + return path) keyed
// by the opaque state parameter.
type stateStore struct {
	ttl time.Duration
	mu  sync.Mutex
	m   map[string]authState
}

type authState struct {
	Verifier string
	Return   string
	ExpireAt time.Time
}

func newStateStore(ttl time.Duration) *stateStore {
	return &stateStore{ttl: ttl, m: make(map[string]authState)}
}

func (s *stateStore) Put(key string, v authState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for k, old := range s.m {
		if now.After(old.ExpireAt) {
			delete(s.m, k)
		}
	}
	s.m[key] = v
}

func (s *stateStore) GetAndDelete(key string) (authState, bool) {
	s.mu.Lock()
	v, ok := s.m[key]
	delete(s.m, key)
	s.mu.Unlock()
	if ok && time.Now().After(v.ExpireAt) {
		return authState{}, false
	}
	return v, ok
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	verifier := make([]byte, 48)
	if _, err := rand.Read(verifier); err != nil {
		writeError(w, http.StatusInternalServerError, "pkce generation failed")
		return
	}
	verifierStr := base64.RawURLEncoding.EncodeToString(verifier)
	challengeHash := sha256.Sum256([]byte(verifierStr))
	challenge := base64.RawURLEncoding.EncodeToString(challengeHash[:])

	stateBytes := make([]byte, 16)
	if _, err := rand.Read(stateBytes); err != nil {
		writeError(w, http.StatusInternalServerError, "state generation failed")
		return
	}
	st := hex.EncodeToString(stateBytes)

	// keep the return path relative
	ret := r.URL.Query().Get("return")
	if ret == "" {
		ret = "/"
	} else if u, err := url.Parse(ret); err != nil || u.IsAbs() || u.Host != "" {
		ret = "/"
	}

	s.auth.state.Put(st, authState{
		Verifier: verifierStr,
		Return:   ret,
		ExpireAt: time.Now().Add(s.auth.state.ttl),
	})

	authURL := s.auth.oauth2.AuthCodeURL(
		st,
		oauth2.SetAuthURLParam("code_challenge", challenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)
	http.Redirect(w, r, authURL, http.StatusFound)
}

func (s *Server) callback(w http.ResponseWriter, r *http.Request) {
	st := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	if st == "" || code == "" {
		writeError(w, http.StatusBadRequest, "missing state or code")
		return
	}

	saved, ok := s.auth.state.GetAndDelete(st)
	if !ok || saved.Verifier == "" {
		writeError(w, http.StatusBadRequest, "invalid or expired state")
		return
	}

	tok, err := s.auth.oauth2.Exchange(
		r.Context(),
		code,
		oauth2.SetAuthURLParam("code_verifier", saved.Verifier),
	)
	if err != nil {
		logger.Warn("OIDC code exchange failed", "error", err)
		writeError(w, http.StatusBadGateway, "code exchange failed")
		return
	}
	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		writeError(w, http.StatusBadGateway, "no id_token in response")
		return
	}
	if _, err := s.auth.verifier.Verify(r.Context(), rawIDToken); err != nil {
		writeError(w, http.StatusUnauthorized, "id_token invalid")
		return
	}

	val, err := s.auth.cookie.Encode(sessionCookieName, rawIDToken)
	if err != nil {
		logger.Error("Failed to encode session cookie", "error", err)
		writeError(w, http.StatusInternalServerError, "session encoding failed")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    val,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(sessionMaxAge.Seconds()),
	})

	http.Redirect(w, r, saved.Return, http.StatusFound)
}

func (s *Server) logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1) session cookie
		if c, err := r.Cookie(sessionCookieName); err == nil {
			var rawIDToken string
			if err := s.auth.cookie.Decode(sessionCookieName, c.Value, &rawIDToken); err == nil {
				if u, ok := s.verifySession(r.Context(), rawIDToken); ok {
					next.ServeHTTP(w, r.WithContext(withUser(r.Context(), u)))
					return
				}
			}
		}

		// 2) bearer API key
		if ah := r.Header.Get("Authorization"); strings.HasPrefix(ah, "Bearer ") {
			token := strings.TrimPrefix(ah, "Bearer ")
			if strings.HasPrefix(token, apiKeyPrefix) {
				if u, ok := s.authenticateAPIKey(token); ok {
					next.ServeHTTP(w, r.WithContext(withUser(r.Context(), u)))
					return
				}
			}
		}

		logger.Debug("Unauthenticated request", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("WWW-Authenticate", `Bearer realm="habitd"`)
		writeError(w, http.StatusUnauthorized, "unauthorized")
	})
}

func (s *Server) verifySession(ctx context.Context, rawIDToken string) (*User, bool) {
	idTok, err := s.auth.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		logger.Debug("ID token verification failed", "error", err)
		return nil, false
	}
	var claims map[string]any
	if err := idTok.Claims(&claims); err != nil {
		return nil, false
	}
	return &User{
		UserID:  userIDFromClaims(claims),
		Subject: idTok.Subject,
		Email:   strClaim(claims, "email"),
	}, true
}

func (s *Server) authenticateAPIKey(apiKey string) (*User, bool) {
	keyHash := hashAPIKey(apiKey)
	userID, found, err := s.store.GetAPIKey(keyHash)
	if err != nil {
		logger.Error("Failed to look up API key", "error", err)
		return nil, false
	}
	if !found {
		return nil, false
	}
	return &User{
		UserID:  userID,
		Subject: "apikey:" + truncateHash(keyHash),
	}, true
}

func withUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// userID resolves the user owning the request: the anonymous user when auth
// is disabled, the authenticated user's id otherwise.
func (s *Server) userID(r *http.Request) string {
	if !s.cfg.AuthEnabled {
		return anonymousUser
	}
	if u, ok := r.Context().Value(userCtxKey{}).(*User); ok {
		return u.UserID
	}
	return ""
}

// userIDFromClaims derives a stable user id from the issuer and subject, so
// ids survive e-mail changes at the provider.
func userIDFromClaims(claims map[string]any) string {
	iss, _ := claims["iss"].(string)
	sub, _ := claims["sub"].(string)
	if iss == "" || sub == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(iss + "|" + sub))
	return fmt.Sprintf("user-%x", hash[:8])
}

func strClaim(m map[string]any, k string) string {
	if v, ok := m[k].(string); ok {
		return v
	}
	return ""
}

func hashAPIKey(apiKey string) string {
	hash := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(hash[:])
}

func truncateHash(hash string) string {
	if len(hash) <= 16 {
		return hash
	}
	return hash[:16] + "..."
}
