// Package insights wraps the Gemini GenerateContent API for queue
// analysis. Every call degrades to a deterministic fallback — an
// unreachable or unconfigured model is "insight unavailable", not an
// error the engine or its callers have to handle.
package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"canteen-queue-api/models"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-1.5-flash"
)

type Client struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		model:   defaultModel,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// WithBaseURL points the client at another endpoint. Tests use this.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// Prediction is a wait estimate with a one-line reason for the student.
type Prediction struct {
	EstimatedMinutes int    `json:"estimatedMinutes"`
	Reasoning        string `json:"reasoning"`
}

// PredictWaitTime estimates how long a new order will take. Without a
// usable model the estimate falls back to a queue-length heuristic.
func (c *Client) PredictWaitTime(ctx context.Context, queueLength int, foodItem string, averageWaitMinutes int) Prediction {
	fallback := Prediction{
		EstimatedMinutes: fallbackEstimate(queueLength),
		Reasoning:        "Estimated based on queue length.",
	}
	if c.apiKey == "" {
		return fallback
	}

	now := time.Now()
	prompt := fmt.Sprintf(`You are an AI managing a university canteen queue.
Context:
- Queue: %d people
- Item: %q
- Time: %s, %s
- Avg Wait: %d min

Task: Estimate the wait time in minutes and give a 1-sentence friendly reason for the student.
Respond with JSON only: {"estimatedMinutes": <int>, "reasoning": <string>}`,
		queueLength, foodItem, now.Weekday(), now.Format("3:04 PM"), averageWaitMinutes)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		log.Printf("insights: prediction failed: %v", err)
		return fallback
	}

	var p Prediction
	if err := json.Unmarshal([]byte(extractJSON(text)), &p); err != nil || p.EstimatedMinutes <= 0 {
		return fallback
	}
	if p.Reasoning == "" {
		p.Reasoning = "Calculating based on live traffic."
	}
	return p
}

// QueueInsights produces the admin's free-text daily report. The sales
// summary is optional; when present the report analyzes per-item demand
// and calls out the best seller.
func (c *Client) QueueInsights(ctx context.Context, stats models.QueueStats, summary []models.FoodSummary) string {
	if stats.TotalOrdersToday == 0 || stats.ActiveQueueLength == 0 {
		return "✓ Queue Clear\n• No active orders in queue\n• Perfect time to restock and prepare for next rush\n• System ready for incoming orders"
	}

	fallback := fmt.Sprintf("Queue Summary\n• Total Orders: %d\n• Avg Wait: %dm\n• Peak: %s",
		stats.TotalOrdersToday, stats.AverageWaitTime, stats.PeakHour)
	if len(summary) > 0 {
		fallback += fmt.Sprintf("\n• Best Seller: %s (%d orders)", summary[0].FoodItem, summary[0].Count)
	}
	if c.apiKey == "" {
		return fallback
	}

	prompt := fmt.Sprintf(`Analyze these canteen stats and provide brief insights:
- Total Orders Today: %d
- Avg Wait Time: %d minutes
- Active Queue: %d
- Peak Hour: %s%s

Provide 3 bullet points about queue efficiency and suggestions.
Keep each point under 20 words.`,
		stats.TotalOrdersToday, stats.AverageWaitTime, stats.ActiveQueueLength, stats.PeakHour,
		salesSection(summary))

	text, err := c.generate(ctx, prompt)
	if err != nil {
		log.Printf("insights: report failed: %v", err)
		return fallback
	}
	return text
}

// --- GenerateContent wire types ---

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model endpoint returned status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("model returned no candidates")
	}
	return strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text), nil
}

// salesSection renders today's per-item sales for the report prompt.
// The summary arrives sorted by count, so the first entry is the best
// seller.
func salesSection(summary []models.FoodSummary) string {
	if len(summary) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n\nToday's food item sales:\n")
	for i, item := range summary {
		fmt.Fprintf(&b, "- %d. %s: %d orders sold, total prep time %d minutes\n", i+1, item.FoodItem, item.Count, item.TotalPrepTime)
	}
	fmt.Fprintf(&b, "Best selling item: %s with %d orders", summary[0].FoodItem, summary[0].Count)
	return b.String()
}

func fallbackEstimate(queueLength int) int {
	if est := queueLength * 3; est > 5 {
		return est
	}
	return 5
}

// extractJSON tolerates models that wrap JSON in markdown fences.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}
