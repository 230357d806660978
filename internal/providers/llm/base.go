package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sandevgo/annals/internal/core"
)

const defaultTimeout = 60 * time.Second

// jsonTransport posts JSON bodies to a single endpoint with a fixed header set.
type jsonTransport struct {
	client   *http.Client
	endpoint string
	headers  http.Header
}

func newJSONTransport(endpoint string, headers map[string]string, timeout time.Duration) jsonTransport {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	h := make(http.Header, len(headers)+2)
	for k, v := range headers {
		h.Set(k, v)
	}
	h.Set("Content-Type", "application/json")
	h.Set("User-Agent", core.AnnalsUserAgent)

	return jsonTransport{
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
		headers:  h,
	}
}

// postJSON sends body and returns the status code with the full response body.
func (t *jsonTransport) postJSON(ctx context.Context, body any) (int, []byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header = t.headers.Clone()

	resp, err := t.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, payload, nil
}
