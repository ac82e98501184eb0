// Package aur queries the Arch User Repository RPC interface for
// published package versions.
//
// https://wiki.archlinux.org/title/Aurweb_RPC_interface
package aur

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/carlwgeorge/toleo/internal/common/httpclient"
)

// DefaultBaseURL is the production AUR RPC endpoint.
const DefaultBaseURL = "https://aur.archlinux.org/rpc.php"

// Error variables for AUR client errors
var (
	// ErrPackageNotFound is returned when the AUR has no package by that name
	ErrPackageNotFound = errors.New("package not found in AUR")
	// ErrMalformedResponse is returned when the RPC response cannot be decoded
	ErrMalformedResponse = errors.New("malformed AUR response")
)

// Client queries the AUR RPC interface.
type Client struct {
	baseURL string
	http    *httpclient.Client
}

// NewClient creates a client for the production AUR endpoint.
func NewClient(http *httpclient.Client) *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		http:    http,
	}
}

// SetBaseURL overrides the RPC endpoint (useful for testing).
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// infoResponse is the RPC envelope. The results field is kept raw
// because the interface has served two shapes over its lifetime: a
// single object (legacy) and an array of objects (v5).
type infoResponse struct {
	Type    string          `json:"type"`
	Results json.RawMessage `json:"results"`
	Error   string          `json:"error"`
}

// infoResult is the per-package payload; only the version matters here.
type infoResult struct {
	Name    string `json:"Name"`
	Version string `json:"Version"`
}

// Info returns the version currently published in the AUR for a
// package. A package absent from the AUR yields ErrPackageNotFound,
// which callers report as a distinct outcome rather than a fault.
func (c *Client) Info(ctx context.Context, pkgName string) (string, error) {
	query := url.Values{}
	query.Set("type", "info")
	query.Set("arg", pkgName)

	resp, err := c.http.Get(ctx, c.baseURL+"?"+query.Encode())
	if err != nil {
		return "", fmt.Errorf("querying AUR for %s: %w", pkgName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("querying AUR for %s: status %d", pkgName, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading AUR response for %s: %w", pkgName, err)
	}

	var envelope infoResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if envelope.Type == "error" {
		return "", fmt.Errorf("%w: %s", ErrMalformedResponse, envelope.Error)
	}

	version, err := extractVersion(envelope.Results)
	if err != nil {
		return "", fmt.Errorf("package %s: %w", pkgName, err)
	}
	return version, nil
}

// extractVersion pulls the Version field out of either results shape.
func extractVersion(results json.RawMessage) (string, error) {
	if len(results) == 0 {
		return "", ErrPackageNotFound
	}

	// v5 shape: results is an array, empty when the package is unknown
	var list []infoResult
	if err := json.Unmarshal(results, &list); err == nil {
		if len(list) == 0 || list[0].Version == "" {
			return "", ErrPackageNotFound
		}
		return list[0].Version, nil
	}

	// legacy shape: results is a single object
	var single infoResult
	if err := json.Unmarshal(results, &single); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if single.Version == "" {
		return "", ErrPackageNotFound
	}
	return single.Version, nil
}
