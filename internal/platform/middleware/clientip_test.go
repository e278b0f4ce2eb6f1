// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/middleware"
)

/*
TestClientAddress verifies that forwarding headers count only when the
direct peer is a trusted proxy.
*/
func TestClientAddress(t *testing.T) {
	proxies, err := middleware.ParseTrustedProxies([]string{"10.0.0.0/8", " 192.0.2.7 ", ""})
	require.NoError(t, err)

	tests := []struct {
		name      string
		proxies   *middleware.TrustedProxies
		peer      string
		forwarded string
		realIP    string
		want      string
	}{
		{"untrusted peer, headers ignored", proxies, "203.0.113.9:4000", "198.51.100.1", "198.51.100.2", "203.0.113.9"},
		{"no proxies configured", nil, "10.1.2.3:4000", "198.51.100.1", "", "10.1.2.3"},
		{"trusted peer, forwarded client", proxies, "10.1.2.3:4000", "198.51.100.1", "", "198.51.100.1"},
		{"prepended hop is not reached", proxies, "10.1.2.3:4000", "6.6.6.6, 198.51.100.1, 10.9.9.9", "", "198.51.100.1"},
		{"single trusted address", proxies, "192.0.2.7:4000", "198.51.100.4", "", "198.51.100.4"},
		{"trusted peer, real ip header", proxies, "10.1.2.3:4000", "", "198.51.100.5", "198.51.100.5"},
		{"trusted peer, garbage headers", proxies, "10.1.2.3:4000", "not-an-ip", "also-not", "10.1.2.3"},
		{"every hop trusted", proxies, "10.1.2.3:4000", "10.4.4.4", "", "10.1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := middleware.ClientAddress(tt.proxies)(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
				seen = middleware.ClientIP(request)
			}))

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.RemoteAddr = tt.peer
			if tt.forwarded != "" {
				request.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				request.Header.Set("X-Real-IP", tt.realIP)
			}
			handler.ServeHTTP(httptest.NewRecorder(), request)

			assert.Equal(t, tt.want, seen)
		})
	}
}

func TestClientIP_WithoutMiddleware(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "203.0.113.9:4000"
	request.Header.Set("X-Forwarded-For", "198.51.100.1")

	assert.Equal(t, "203.0.113.9", middleware.ClientIP(request))
}

func TestParseTrustedProxies_Rejects(t *testing.T) {
	for _, entry := range []string{"10.0.0.0/33", "not-an-ip", "300.1.1.1"} {
		_, err := middleware.ParseTrustedProxies([]string{entry})
		assert.Error(t, err, entry)
	}
}
