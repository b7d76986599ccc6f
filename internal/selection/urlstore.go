package selection

import "net/url"

// URLValues adapts url.Values to the Store interface. The engine keeps
// one per session as its mirror of the shell's address bar.
type URLValues struct {
	V url.Values
}

func NewURLValues() URLValues {
	return URLValues{V: url.Values{}}
}

func (u URLValues) Get(key string) string { return u.V.Get(key) }

func (u URLValues) Set(key, value string) { u.V.Set(key, value) }

func (u URLValues) Del(key string) { u.V.Del(key) }

// Encode renders the mirrored query string, e.g. "compare=a,b".
func (u URLValues) Encode() string { return u.V.Encode() }
