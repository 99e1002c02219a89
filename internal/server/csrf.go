package server

import (
	"net/http"
	"sync"

	"listing-bidder/utils"

	"github.com/gin-gonic/gin"
)

// CSRFHeader carries the page's csrfmiddlewaretoken value on mutating requests
const CSRFHeader = "X-CSRFToken"

// CSRFFailureMessage is the plain-text body of a 403 CSRF rejection
const CSRFFailureMessage = "CSRF verification failed. Request aborted."

// CSRFStore remembers the tokens issued with rendered pages
type CSRFStore struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

func NewCSRFStore() *CSRFStore {
	return &CSRFStore{tokens: make(map[string]struct{})}
}

// Issue creates and records a new token
func (s *CSRFStore) Issue() string {
	token := utils.GenerateToken()
	s.mu.Lock()
	s.tokens[token] = struct{}{}
	s.mu.Unlock()
	return token
}

// Valid reports whether token was issued by this store
func (s *CSRFStore) Valid(token string) bool {
	if token == "" {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tokens[token]
	return ok
}

// CSRFMiddleware rejects POST and PUT requests without a known token
func CSRFMiddleware(store *CSRFStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		if method != http.MethodPost && method != http.MethodPut {
			c.Next()
			return
		}

		if !store.Valid(c.GetHeader(CSRFHeader)) {
			utils.Warn("CSRFMiddleware: rejected request", map[string]any{
				"method": method,
				"path":   c.Request.URL.Path,
			})
			utils.TextError(c, http.StatusForbidden, CSRFFailureMessage)
			return
		}
		c.Next()
	}
}
