package cookiejar

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"
)

// Entry is one persisted cookie, keyed by the URL it was set for.
type Entry struct {
	URL      string    `json:"url"`
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Domain   string    `json:"domain,omitempty"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HTTPOnly bool      `json:"http_only,omitempty"`
}

// Storage persists cookie entries between sessions.
type Storage interface {
	Load() ([]Entry, error)
	Save(entries []Entry) error
}

// Jar is an http.CookieJar backed by the standard jar with
// public-suffix domain handling, plus optional persistence through a
// Storage provider. Flush writes the current cookies out; New restores
// them.
type Jar struct {
	mu      sync.Mutex
	inner   http.CookieJar
	storage Storage
	urls    map[string]*url.URL
}

// compile-time assertion
var _ http.CookieJar = (*Jar)(nil)

// New creates a jar, restoring persisted cookies when storage is non-nil.
func New(storage Storage) (*Jar, error) {
	inner, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	j := &Jar{
		inner:   inner,
		storage: storage,
		urls:    make(map[string]*url.URL),
	}
	if storage != nil {
		if err := j.restore(); err != nil {
			return nil, err
		}
	}
	return j, nil
}

// SetCookies implements http.CookieJar.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	j.track(u)
	j.mu.Unlock()
	j.inner.SetCookies(u, cookies)
}

// Cookies implements http.CookieJar.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	return j.inner.Cookies(u)
}

// Flush persists the cookies of every tracked URL through the storage
// provider. A no-op without storage.
func (j *Jar) Flush() error {
	if j.storage == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	var entries []Entry
	for key, u := range j.urls {
		for _, c := range j.inner.Cookies(u) {
			entries = append(entries, Entry{
				URL:      key,
				Name:     c.Name,
				Value:    c.Value,
				Path:     c.Path,
				Domain:   c.Domain,
				Expires:  c.Expires,
				Secure:   c.Secure,
				HTTPOnly: c.HttpOnly,
			})
		}
	}
	return j.storage.Save(entries)
}

// restore loads persisted entries back into the jar.
func (j *Jar) restore() error {
	entries, err := j.storage.Load()
	if err != nil {
		return err
	}
	for _, e := range entries {
		u, err := url.Parse(e.URL)
		if err != nil {
			continue
		}
		j.track(u)
		j.inner.SetCookies(u, []*http.Cookie{{
			Name:     e.Name,
			Value:    e.Value,
			Path:     e.Path,
			Domain:   e.Domain,
			Expires:  e.Expires,
			Secure:   e.Secure,
			HttpOnly: e.HTTPOnly,
		}})
	}
	return nil
}

// track remembers the scheme://host roots cookies were set for, so
// Flush knows which URLs to read back. Callers hold j.mu.
func (j *Jar) track(u *url.URL) {
	root := &url.URL{Scheme: u.Scheme, Host: u.Host}
	j.urls[root.String()] = root
}
