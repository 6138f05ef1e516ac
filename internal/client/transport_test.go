package client

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

const transportTestBody = "<html><body><div class=\"last_episodes\"></div></body></html>"

func encodeGzip(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func encodeBrotli(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := brotli.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("brotli write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("brotli close: %v", err)
	}
	return buf.Bytes()
}

func encodeZstd(t *testing.T, data []byte) []byte {
	t.Helper()
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	defer encoder.Close()
	return encoder.EncodeAll(data, nil)
}

func TestOriginTransport_Decodes(t *testing.T) {
	tests := []struct {
		name     string
		encoding string
		encode   func(*testing.T, []byte) []byte
	}{
		{name: "gzip", encoding: "gzip", encode: encodeGzip},
		{name: "brotli", encoding: "br", encode: encodeBrotli},
		{name: "zstd", encoding: "zstd", encode: encodeZstd},
		{name: "upper case with whitespace", encoding: " GZIP ", encode: encodeGzip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := tt.encode(t, []byte(transportTestBody))
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Accept-Encoding"); got != acceptEncoding {
					t.Errorf("Expected Accept-Encoding %q, got %q", acceptEncoding, got)
				}
				w.Header().Set("Content-Encoding", tt.encoding)
				_, _ = w.Write(payload)
			}))
			defer server.Close()

			httpClient := &http.Client{Transport: newOriginTransport(nil, testUserAgent)}
			resp, err := httpClient.Get(server.URL)
			if err != nil {
				t.Fatalf("Request failed: %v", err)
			}
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("Failed to read body: %v", err)
			}
			if string(body) != transportTestBody {
				t.Errorf("Expected decoded body %q, got %q", transportTestBody, body)
			}
			if resp.Header.Get("Content-Encoding") != "" {
				t.Errorf("Expected Content-Encoding to be removed, got %q", resp.Header.Get("Content-Encoding"))
			}
			if resp.ContentLength != -1 {
				t.Errorf("Expected unknown content length, got %d", resp.ContentLength)
			}
		})
	}
}

func TestOriginTransport_UnknownEncodingPassesThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "identity")
		_, _ = w.Write([]byte(transportTestBody))
	}))
	defer server.Close()

	httpClient := &http.Client{Transport: newOriginTransport(nil, testUserAgent)}
	resp, err := httpClient.Get(server.URL)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if string(body) != transportTestBody {
		t.Errorf("Expected body unchanged, got %q", body)
	}
	if resp.Header.Get("Content-Encoding") != "identity" {
		t.Errorf("Expected Content-Encoding to be kept, got %q", resp.Header.Get("Content-Encoding"))
	}
}

func TestOriginTransport_InvalidGzip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		_, _ = w.Write([]byte("definitely not gzip"))
	}))
	defer server.Close()

	httpClient := &http.Client{Transport: newOriginTransport(nil, testUserAgent)}
	resp, err := httpClient.Get(server.URL)
	if err == nil {
		resp.Body.Close()
		t.Fatal("Expected an error for an invalid gzip body")
	}
}

func TestOriginTransport_UserAgentOnEveryHop(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != testUserAgent {
			t.Errorf("First hop: expected User-Agent %q, got %q", testUserAgent, got)
		}
		http.Redirect(w, r, "/end", http.StatusFound)
	})
	mux.HandleFunc("/end", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != testUserAgent {
			t.Errorf("Redirect hop: expected User-Agent %q, got %q", testUserAgent, got)
		}
		_, _ = w.Write([]byte("ok"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	httpClient := &http.Client{Transport: newOriginTransport(nil, testUserAgent)}
	resp, err := httpClient.Get(server.URL + "/start")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()

	if resp.Request.URL.Path != "/end" {
		t.Errorf("Expected final path /end, got %s", resp.Request.URL.Path)
	}
}

func TestOriginTransport_KeepsCallerHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "custom/2.0" {
			t.Errorf("Expected caller User-Agent, got %q", got)
		}
		if got := r.Header.Get("Accept-Encoding"); got != "gzip" {
			t.Errorf("Expected caller Accept-Encoding, got %q", got)
		}
	}))
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("User-Agent", "custom/2.0")
	req.Header.Set("Accept-Encoding", "gzip")

	httpClient := &http.Client{Transport: newOriginTransport(nil, testUserAgent)}
	resp, err := httpClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()

	if req.Header.Get("Accept-Encoding") != "gzip" || len(req.Header.Values("User-Agent")) != 1 {
		t.Error("Expected the caller's request to be left untouched")
	}
}

func TestOutermostEncoding(t *testing.T) {
	tests := []struct {
		header   string
		expected string
	}{
		{header: "", expected: ""},
		{header: "gzip", expected: "gzip"},
		{header: "  BR ", expected: "br"},
		{header: "gzip, zstd", expected: "zstd"},
		{header: "deflate,gzip", expected: "gzip"},
	}

	for _, tt := range tests {
		if got := outermostEncoding(tt.header); got != tt.expected {
			t.Errorf("outermostEncoding(%q) = %q, want %q", tt.header, got, tt.expected)
		}
	}
}
