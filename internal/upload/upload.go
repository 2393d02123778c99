// Package upload reads exam page images from disk and prepares them for
// LLM analysis as base64 payloads with sniffed MIME types.
package upload

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Payload is one exam page ready to send to an LLM.
type Payload struct {
	Name     string
	MIMEType string
	Base64   string
}

// DecodeError indicates a file could not be read or recognized as an
// image. It names the offending file so the UI can point at it.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeFiles reads the given image files concurrently and returns
// payloads in the same order as paths. Any failure aborts the whole
// batch with a *DecodeError.
func EncodeFiles(ctx context.Context, paths []string) ([]Payload, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files selected")
	}

	payloads := make([]Payload, len(paths))
	g, ctx := errgroup.WithContext(ctx)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := EncodeFile(path)
			if err != nil {
				return err
			}
			payloads[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return payloads, nil
}

// EncodeFile reads a single image file into a payload.
func EncodeFile(path string) (Payload, error) {
	name := filepath.Base(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return Payload{}, &DecodeError{Name: name, Err: err}
	}
	if len(data) == 0 {
		return Payload{}, &DecodeError{Name: name, Err: fmt.Errorf("empty file")}
	}

	mimeType := sniffMIME(data)
	if !strings.HasPrefix(mimeType, "image/") {
		// A text file may carry the image as a data URI.
		if strings.HasPrefix(strings.TrimSpace(string(data)), "data:") {
			return decodeDataURI(name, string(data))
		}
		return Payload{}, &DecodeError{Name: name, Err: fmt.Errorf("not an image (%s)", mimeType)}
	}

	return Payload{
		Name:     name,
		MIMEType: mimeType,
		Base64:   base64.StdEncoding.EncodeToString(data),
	}, nil
}

// decodeDataURI unwraps a data:<mime>;base64, payload. The embedded
// bytes are sniffed like any other file; the URI's own MIME hint is
// not trusted.
func decodeDataURI(name, content string) (Payload, error) {
	b64, _ := StripDataURI(content)
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(b64))
	if err != nil {
		return Payload{}, &DecodeError{Name: name, Err: fmt.Errorf("invalid data URI: %w", err)}
	}

	mimeType := sniffMIME(decoded)
	if !strings.HasPrefix(mimeType, "image/") {
		return Payload{}, &DecodeError{Name: name, Err: fmt.Errorf("data URI is not an image (%s)", mimeType)}
	}

	return Payload{
		Name:     name,
		MIMEType: mimeType,
		Base64:   base64.StdEncoding.EncodeToString(decoded),
	}, nil
}

// sniffMIME detects the image type from magic bytes, with
// http.DetectContentType as the fallback for everything else.
func sniffMIME(b []byte) string {
	if len(b) >= 2 && b[0] == 0xFF && b[1] == 0xD8 {
		return "image/jpeg"
	}
	if len(b) >= 8 &&
		b[0] == 0x89 && b[1] == 0x50 && b[2] == 0x4E && b[3] == 0x47 &&
		b[4] == 0x0D && b[5] == 0x0A && b[6] == 0x1A && b[7] == 0x0A {
		return "image/png"
	}
	return http.DetectContentType(b)
}

// StripDataURI removes a data:<mime>;base64, prefix if present, returning
// the bare base64 payload and the MIME hint from the prefix.
func StripDataURI(s string) (b64, mimeHint string) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "data:") {
		return s, ""
	}
	idx := strings.IndexByte(s, ',')
	if idx < 0 {
		return s, ""
	}
	meta := s[len("data:"):idx]
	if semi := strings.IndexByte(meta, ';'); semi >= 0 {
		meta = meta[:semi]
	}
	return s[idx+1:], meta
}
