package treeherder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/steepleherder/internal/redact"
)

// Options configures an HTTP client for one Treeherder project.
type Options struct {
	Protocol string
	Host     string
	Project  string
	Key      string
	Secret   string
	Timeout  time.Duration
}

// HTTPClient posts collections over HTTP with two-legged OAuth 1.0a signing.
type HTTPClient struct {
	baseURL string
	project string
	signer  *signer
	client  *http.Client
}

// New creates an HTTP client. Host, project and both credentials are required.
func New(o Options) (*HTTPClient, error) {
	var missing []string
	if o.Host == "" {
		missing = append(missing, "host")
	}
	if o.Project == "" {
		missing = append(missing, "project")
	}
	if o.Key == "" {
		missing = append(missing, "key")
	}
	if o.Secret == "" {
		missing = append(missing, "secret")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("treeherder.New: missing %s", strings.Join(missing, ", "))
	}
	protocol := o.Protocol
	if protocol == "" {
		protocol = "http"
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPClient{
		baseURL: fmt.Sprintf("%s://%s", protocol, strings.TrimSuffix(o.Host, "/")),
		project: o.Project,
		signer: &signer{
			key:    o.Key,
			secret: o.Secret,
			now:    time.Now,
			nonce:  func() string { return uuid.NewString() },
		},
		client: &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) Name() string { return "treeherder" }

// URL returns the endpoint URL a collection is posted to.
func (c *HTTPClient) URL(col Collection) string {
	return fmt.Sprintf("%s/api/project/%s/%s/", c.baseURL, c.project, col.Endpoint())
}

// Post serializes the collection and posts it to the project endpoint.
func (c *HTTPClient) Post(ctx context.Context, col Collection) error {
	if col == nil {
		return errors.New("treeherder: nil collection")
	}
	body, err := json.Marshal(col)
	if err != nil {
		return fmt.Errorf("treeherder: marshal %s: %w", col.Endpoint(), err)
	}

	endpoint := c.URL(col)
	query := c.signer.sign(http.MethodPost, endpoint, map[string]string{"user": c.project})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"?"+query, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("treeherder: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("treeherder: post %s: %s", col.Endpoint(), redact.Redact(err.Error()))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("treeherder: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("treeherder: %s returned %d: %s", col.Endpoint(), resp.StatusCode, redact.Redact(string(respBody)))
	}
	return nil
}
