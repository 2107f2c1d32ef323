package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrUnavailable covers every remote-analysis failure mode: transport
// errors, timeouts, non-2xx statuses, bad payloads. Callers fall back
// to the local heuristics and never surface it.
var ErrUnavailable = errors.New("nlp: remote analysis unavailable")

// Client calls a remote language-analysis endpoint that speaks the
// same shape as Analyze.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the given base URL. The timeout bounds
// the whole call; processResponse latency must not hang on a slow
// analysis service.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// remote wire format, as served by the analysis endpoint.
type remoteRequest struct {
	Text     string `json:"text"`
	Context  string `json:"context,omitempty"`
	Language string `json:"language,omitempty"`
}

type remoteResponse struct {
	Sentiment     string   `json:"sentiment"`
	Confidence    float64  `json:"confidence"`
	KeyPhrases    []string `json:"keyPhrases"`
	Topics        []string `json:"topics"`
	Difficulty    float64  `json:"difficulty"`
	Comprehension float64  `json:"comprehension"`
}

// Analyze posts the request to the remote endpoint. Any failure is
// reported as ErrUnavailable (wrapping the cause).
func (c *Client) Analyze(ctx context.Context, req Request) (Analysis, error) {
	body, err := json.Marshal(remoteRequest{Text: req.Text, Context: req.Context, Language: req.Language})
	if err != nil {
		return Analysis{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return Analysis{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Analysis{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Analysis{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var out remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Analysis{}, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	if out.Sentiment == "" {
		out.Sentiment = SentimentNeutral
	}
	return Analysis{
		Sentiment:     out.Sentiment,
		Confidence:    out.Confidence,
		KeyPhrases:    out.KeyPhrases,
		Topics:        out.Topics,
		Difficulty:    out.Difficulty,
		Comprehension: out.Comprehension,
	}, nil
}
