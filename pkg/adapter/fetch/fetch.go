// Package fetch implements the blocking HTTP and zip-archive I/O
// primitives the source caches build on: GET a URL into memory,
// translate 404 into a distinct error kind, and read a named entry out
// of a zip archive.
package fetch

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Techcable/minecraft-mappings/pkg/core/cerr"
)

// Client performs GET requests. The zero value uses http.DefaultClient
// with no extra timeout; callers needing a bound should set Timeout.
type Client struct {
	HTTP    *http.Client
	Timeout time.Duration
}

func (c *Client) client() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	if c.Timeout > 0 {
		return &http.Client{Timeout: c.Timeout}
	}
	return http.DefaultClient
}

// Get issues a GET request to url and returns the full response body.
// A 404 status is reported as *cerr.HTTPNotFound; any other non-2xx
// status or transport error is reported as *cerr.HTTPTransport.
func (c *Client) Get(url string) ([]byte, error) {
	resp, err := c.client().Get(url)
	if err != nil {
		return nil, cerr.NewHTTPTransport(url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, cerr.NewHTTPNotFound(url)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, cerr.NewHTTPTransport(url, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, cerr.NewHTTPTransport(url, err)
	}
	return body, nil
}

// ExtractZipEntry reads a single named entry out of a zip archive held
// in memory.
func ExtractZipEntry(archive []byte, entryName string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, cerr.NewIOError("open zip archive", err)
	}
	for _, f := range zr.File {
		if f.Name != entryName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, cerr.NewIOError("open zip entry "+entryName, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, cerr.NewIOError("read zip entry "+entryName, err)
		}
		return data, nil
	}
	return nil, cerr.NewIOError("locate zip entry", fmt.Errorf("entry %q not found in archive", entryName))
}
