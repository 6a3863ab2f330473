// Package grading talks to the upstream multimodal model and turns its
// free-text reply into a structured score/comment/issues/suggestions record.
package grading

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"
)

var ErrUpstreamRequest = errors.New("upstream grading request failed")

const gradingPrompt = "请批改这份作业，给出分数（满分100分）、总体评价、具体问题和改进建议。" +
	"请按以下格式返回：\n分数：[分数]\n总体评价：[评语]\n具体问题：\n- [问题1]\n- [问题2]\n改进建议：[建议]"

type Config struct {
	Endpoint       string `toml:"endpoint"`
	APIKey         string `toml:"api_key"`
	Model          string `toml:"model"`
	VisionModel    string `toml:"vision_model"`
	Demo           bool   `toml:"demo"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type Client struct {
	config *Config
	http   *http.Client
}

func NewClient(config *Config) *Client {
	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		config: config,
		http:   &http.Client{Timeout: timeout},
	}
}

// Grade submits homework content for grading. dataType is "image" (content
// is a data URL) or "text". In demo mode no network call is made and a
// synthetic result comes back instead.
func (c *Client) Grade(ctx context.Context, dataType, content string) (*Result, error) {
	if c.config.Demo {
		return DemoResult(dataType), nil
	}

	payload, err := c.buildPayload(dataType, content)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build grading request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading reply: %v", ErrUpstreamRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Debug.Printf("Upstream replied %d: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamRequest, resp.StatusCode)
	}

	var reply chatResponse
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, fmt.Errorf("%w: decoding reply: %v", ErrUpstreamRequest, err)
	}
	if len(reply.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty choices", ErrUpstreamRequest)
	}

	return ParseFormattedResponse(reply.Choices[0].Message.Content), nil
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) buildPayload(dataType, content string) ([]byte, error) {
	var request chatRequest
	switch dataType {
	case "image":
		request = chatRequest{
			Model: c.config.VisionModel,
			Messages: []chatMessage{{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: gradingPrompt},
					{Type: "image_url", ImageURL: &imageURL{URL: content}},
				},
			}},
			MaxTokens: 1000,
		}
	case "text":
		request = chatRequest{
			Model: c.config.Model,
			Messages: []chatMessage{{
				Role:    "user",
				Content: fmt.Sprintf("%s\n\n作业内容：\n%s", gradingPrompt, content),
			}},
			MaxTokens: 1000,
		}
	default:
		return nil, fmt.Errorf("unsupported data type: %s", dataType)
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal grading payload: %w", err)
	}
	return payload, nil
}
