package parser

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func readAllUTF8(t *testing.T, input []byte, contentType string) string {
	t.Helper()
	reader, err := NewUTF8Reader(bytes.NewReader(input), contentType)
	if err != nil {
		t.Fatalf("NewUTF8Reader failed: %v", err)
	}
	output, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("Failed to read from UTF-8 reader: %v", err)
	}
	return string(output)
}

func TestNewUTF8Reader_AlreadyUTF8(t *testing.T) {
	t.Parallel()
	input := "<html><body>Shingeki no Kyojin – 進撃の巨人</body></html>"

	if got := readAllUTF8(t, []byte(input), ""); got != input {
		t.Errorf("Expected UTF-8 content to pass through unchanged, got %q", got)
	}
}

func TestNewUTF8Reader_MetaCharset(t *testing.T) {
	t.Parallel()
	// é = 0xE9 in ISO-8859-1
	input := []byte(`<html><head><meta charset="ISO-8859-1"></head><body>Pok` + string([]byte{0xE9}) + `mon</body></html>`)

	if got := readAllUTF8(t, input, ""); !strings.Contains(got, "Pokémon") {
		t.Errorf("Expected 'Pokémon' in UTF-8 output, got: %s", got)
	}
}

func TestNewUTF8Reader_ContentTypeHeader(t *testing.T) {
	t.Parallel()
	// ™ = 0x99 in Windows-1252, declared only by the response header
	input := []byte(`<html><body>Test` + string([]byte{0x99}) + `</body></html>`)

	if got := readAllUTF8(t, input, "text/html; charset=windows-1252"); !strings.Contains(got, "™") {
		t.Errorf("Expected '™' in UTF-8 output, got: %s", got)
	}
}

func TestNewUTF8Reader_NoCharsetDeclaration(t *testing.T) {
	t.Parallel()
	input := []byte(`<div class="last_episodes"><ul><li>One Piece</li></ul></div>`)

	if got := readAllUTF8(t, input, ""); !strings.Contains(got, "One Piece") {
		t.Errorf("Expected 'One Piece' in output, got: %s", got)
	}
}
