package util

import (
	"net/http"
	"net/url"
	"testing"
)

func proxyFor(t *testing.T, fn func(*http.Request) (*url.URL, error), rawURL string) *url.URL {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		t.Fatal(err)
	}
	proxy, err := fn(req)
	if err != nil {
		t.Fatal(err)
	}
	return proxy
}

func TestNewProxyFunc_SchemeSelection(t *testing.T) {
	fn := NewProxyFunc("http://proxy-a:8080", "http://proxy-b:8443", "")

	if got := proxyFor(t, fn, "https://example.com/page"); got == nil || got.Host != "proxy-b:8443" {
		t.Errorf("https proxy = %v, want proxy-b:8443", got)
	}
	if got := proxyFor(t, fn, "http://example.com/page"); got == nil || got.Host != "proxy-a:8080" {
		t.Errorf("http proxy = %v, want proxy-a:8080", got)
	}
}

func TestNewProxyFunc_NoProxyBypass(t *testing.T) {
	fn := NewProxyFunc("http://proxy-a:8080", "", "internal.example.com, .corp.local")

	if got := proxyFor(t, fn, "http://internal.example.com/x"); got != nil {
		t.Errorf("exact noProxy match still proxied via %v", got)
	}
	if got := proxyFor(t, fn, "http://db.corp.local/x"); got != nil {
		t.Errorf("domain-suffix noProxy match still proxied via %v", got)
	}
	if got := proxyFor(t, fn, "http://example.com/x"); got == nil {
		t.Error("unlisted host must use the proxy")
	}
}
