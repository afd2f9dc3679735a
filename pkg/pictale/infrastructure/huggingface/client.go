package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"kgeyst.com/pictale/pkg/common"
	"kgeyst.com/pictale/pkg/pictale/domain"
)

const (
	// ConfigKeyBaseURL the root of the inference API
	ConfigKeyBaseURL = "huggingFaceBaseURL"
	// ConfigKeyAPIToken sent as a bearer token if not empty
	ConfigKeyAPIToken = "huggingFaceAPIToken"
	// ConfigKeyWaitForModel asks the server to block until a cold model is loaded instead of answering 503
	ConfigKeyWaitForModel = "huggingFaceWaitForModel"
	// ConfigKeyCheckModelStatus verify both models are servable when they're loaded
	ConfigKeyCheckModelStatus = "huggingFaceCheckModelStatus"
)

const defaultBaseURL = "https://api-inference.huggingface.co"

// maxResponseSize generated texts are tiny; anything bigger is not a response we understand.
const maxResponseSize = 4 << 20

// Client talks to a Hugging Face compatible inference endpoint.
type Client struct {
	baseURL      string
	apiToken     string
	waitForModel bool
	http         *http.Client
}

func NewClient(config *common.Config) *Client {
	timeout := config.GetDurationOrDefault(domain.ConfigKeyInferenceTimeout, 2*time.Minute)
	return &Client{
		baseURL:      strings.TrimRight(config.GetStringOrDefault(ConfigKeyBaseURL, defaultBaseURL), "/"),
		apiToken:     config.GetString(ConfigKeyAPIToken),
		waitForModel: config.GetBoolOrDefault(ConfigKeyWaitForModel, true),
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				ForceAttemptHTTP2:     true,
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
	}
}

type generatedTextResponse []struct {
	GeneratedText string `json:"generated_text"`
}

type errorResponse struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time"`
}

type ModelStatus struct {
	Loaded bool   `json:"loaded"`
	State  string `json:"state"`
}

// IsServable the model can answer requests, possibly after loading it on demand.
func (m ModelStatus) IsServable() bool {
	return m.State == "Loaded" || m.State == "Loadable"
}

// Infer posts `body` to the model and returns the generated texts, best first.
func (c *Client) Infer(ctx context.Context, modelID, contentType string, body []byte) ([]domain.GeneratedText, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/models/"+modelID, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Content-Type", contentType)
	request.Header.Set("Accept", "application/json")
	if c.waitForModel {
		request.Header.Set("X-Wait-For-Model", "true")
	}
	var decoded generatedTextResponse
	err = c.do(request, &decoded)
	if err != nil {
		return nil, err
	}
	result := make([]domain.GeneratedText, 0, len(decoded))
	for _, candidate := range decoded {
		result = append(result, domain.GeneratedText{Text: candidate.GeneratedText})
	}
	return result, nil
}

// Status asks the server whether the model can be served at all.
func (c *Client) Status(ctx context.Context, modelID string) (ModelStatus, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status/"+modelID, nil)
	if err != nil {
		return ModelStatus{}, fmt.Errorf("create request: %w", err)
	}
	var status ModelStatus
	err = c.do(request, &status)
	return status, err
}

func (c *Client) do(request *http.Request, target any) error {
	if c.apiToken != "" {
		request.Header.Set("Authorization", "Bearer "+c.apiToken)
	}
	response, err := c.http.Do(request)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = response.Body.Close()
	}()
	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return statusError(response.Status, body)
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusError(status string, body []byte) error {
	var decoded errorResponse
	if json.Unmarshal(body, &decoded) == nil && decoded.Error != "" {
		if decoded.EstimatedTime > 0 {
			return fmt.Errorf("status %s: %s (estimated time %.0fs)", status, decoded.Error, decoded.EstimatedTime)
		}
		return fmt.Errorf("status %s: %s", status, decoded.Error)
	}
	return fmt.Errorf("status %s", status)
}
