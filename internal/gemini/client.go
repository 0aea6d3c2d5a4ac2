package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gapgenie/gapgenie-back/internal/models"
	"github.com/gapgenie/gapgenie-back/internal/planner"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-pro:generateContent"

// Client decorates planner suggestions with generated wording. It is purely
// cosmetic: the task picked by the planner is never changed here, and every
// failure path falls back to the planner's own text.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Decorate rewords the fallback suggestion for the current gap. The returned
// suggestion always keeps the fallback's TaskID.
func (c *Client) Decorate(ctx context.Context, fallback planner.Suggestion, tasks []models.Task, gapMinutes, currentHour int) planner.Suggestion {
	if !c.Enabled() || fallback.TaskID == nil {
		return fallback
	}

	text, err := c.generate(ctx, buildPrompt(tasks, gapMinutes, currentHour))
	if err != nil {
		log.Printf("gemini: %v, using fallback suggestion", err)
		return fallback
	}

	parsed, ok := extractReply(text)
	if !ok {
		return fallback
	}

	out := fallback
	out.Suggestion = fmt.Sprintf("%s: %s", parsed.Task, parsed.Reason)
	out.Tip = parsed.Tip
	return out
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			MaxOutputTokens: 200,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := c.baseURL + "?key=" + c.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status: %s", resp.Status)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", err
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response")
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}

func buildPrompt(tasks []models.Task, gapMinutes, currentHour int) string {
	energy := "medium"
	switch {
	case currentHour >= 6 && currentHour < 10:
		energy = "high"
	case currentHour >= 14 && currentHour < 17:
		energy = "low"
	}

	var sb strings.Builder
	for _, t := range tasks {
		if t.Status != models.StatusPending {
			continue
		}
		fmt.Fprintf(&sb, "- %s (%s, %dmin, deadline: %s, priority: %s)\n",
			t.Title, t.Category, t.EstimatedMinutes, t.Deadline, t.Priority)
	}

	return fmt.Sprintf(`You are a smart student productivity assistant. A student has %d minutes of free time right now.
Their energy level is %s. Current time is %d:00.

Pending tasks:
%s
Suggest the BEST single task to do right now considering:
1. Task that fits within %d minutes
2. Deadline urgency (closer deadline = higher priority)
3. Energy level match (heavy tasks for high energy, lighter for low)
4. Priority level

Respond in this exact JSON format:
{"task": "task name", "reason": "brief reason in 1 sentence", "tip": "a quick productivity tip"}`,
		gapMinutes, energy, currentHour, sb.String(), gapMinutes)
}

type reply struct {
	Task   string `json:"task"`
	Reason string `json:"reason"`
	Tip    string `json:"tip"`
}

// extractReply pulls the JSON object out of a model reply that may wrap it in
// prose or code fences.
func extractReply(text string) (reply, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return reply{}, false
	}

	var r reply
	if err := json.Unmarshal([]byte(text[start:end+1]), &r); err != nil {
		return reply{}, false
	}
	if r.Task == "" {
		return reply{}, false
	}
	return r, true
}
