package llm

import (
	"net/http"
	"sync"
	"time"
)

// sessionKeySeparator joins base URL and credential into the composite key.
const sessionKeySeparator = "::"

// requestTimeout bounds a single transport call end to end.
const requestTimeout = 30 * time.Second

// Session is a reusable transport handle keyed by credentials. It owns its
// HTTP client so disposal can drop the connection pool.
type Session struct {
	Key    string
	Client Client

	httpClient *http.Client
	onDispose  func()
}

func (s *Session) dispose() {
	if s.onDispose != nil {
		s.onDispose()
	}
	if s.httpClient != nil {
		s.httpClient.CloseIdleConnections()
	}
}

// Cache holds at most one live session. Acquire reuses the session when the
// composite key matches and otherwise disposes the previous one before
// building a replacement. All access is mutex-guarded: a settings change can
// invalidate the slot while another call is acquiring.
type Cache struct {
	mu      sync.Mutex
	session *Session
	factory func(baseURL, apiKey string) *Session
}

// NewCache creates an empty session cache.
func NewCache() *Cache {
	return &Cache{factory: newSession}
}

func newSession(baseURL, apiKey string) *Session {
	httpClient := &http.Client{Timeout: requestTimeout}
	return &Session{
		Key:        SessionKey(baseURL, apiKey),
		Client:     NewMultiProviderClient(baseURL, apiKey, httpClient),
		httpClient: httpClient,
	}
}

// SessionKey builds the composite cache key for a base URL and credential.
func SessionKey(baseURL, apiKey string) string {
	return baseURL + sessionKeySeparator + apiKey
}

// Acquire returns the cached session when the key matches, otherwise
// replaces (and disposes) the previous session with a freshly built one.
func (c *Cache) Acquire(baseURL, apiKey string) *Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := SessionKey(baseURL, apiKey)
	if c.session != nil && c.session.Key == key {
		return c.session
	}
	if c.session != nil {
		c.session.dispose()
	}
	c.session = c.factory(baseURL, apiKey)
	return c.session
}

// Invalidate disposes and clears the cached session. Called when settings
// are saved with a different base URL or credential.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		c.session.dispose()
		c.session = nil
	}
}
