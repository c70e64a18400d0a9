package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/taylormck/japanese-properties-api/internal/config"
)

// Event describes one completed ingest.
type Event struct {
	// Count is the number of records in the new generation.
	Count int `json:"count"`

	// Generation is the store generation the ingest produced.
	Generation uint64 `json:"generation"`

	// Source is "upload" for the HTTP endpoint or "watch" for the file watcher.
	Source string `json:"source"`

	// At is the ingest completion time, RFC3339.
	At string `json:"at"`
}

// Notifier fans one Event out to every configured webhook target.
type Notifier struct {
	webhooks []config.WebhookConfig
	client   *http.Client
}

// New creates a Notifier for the given targets.
func New(webhooks []config.WebhookConfig) *Notifier {
	return &Notifier{
		webhooks: webhooks,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Publish sends ev to all configured targets. Errors are logged but do not
// affect the caller; a lost notification is not a failed ingest.
func (n *Notifier) Publish(ev Event) {
	for _, wh := range n.webhooks {
		url := wh.URL()
		if url == "" {
			continue
		}

		var err error
		switch wh.Type {
		case "slack":
			err = n.sendSlack(url, ev)
		case "teams":
			err = n.sendTeams(url, ev)
		case "http":
			err = n.sendHTTP(url, ev)
		default:
			slog.Warn("notify: unknown webhook type — skipping", "type", wh.Type)
			continue
		}

		if err != nil {
			slog.Error("notify: webhook delivery failed",
				"type", wh.Type,
				"generation", ev.Generation,
				"err", err,
			)
		} else {
			slog.Debug("notify: webhook delivered",
				"type", wh.Type,
				"generation", ev.Generation,
			)
		}
	}
}

func (n *Notifier) sendSlack(url string, ev Event) error {
	body, _ := json.Marshal(map[string]string{
		"text": fmt.Sprintf("Property dataset replaced: %d records (generation %d, via %s)",
			ev.Count, ev.Generation, ev.Source),
	})
	return n.post(url, body)
}

func (n *Notifier) sendTeams(url string, ev Event) error {
	payload := map[string]interface{}{
		"@type":    "MessageCard",
		"@context": "http://schema.org/extensions",
		"summary":  "Property dataset replaced",
		"title":    fmt.Sprintf("Property dataset replaced (generation %d)", ev.Generation),
		"text":     fmt.Sprintf("%d records ingested via %s at %s", ev.Count, ev.Source, ev.At),
	}
	body, _ := json.Marshal(payload)
	return n.post(url, body)
}

func (n *Notifier) sendHTTP(url string, ev Event) error {
	body, _ := json.Marshal(map[string]interface{}{"ingest": ev})
	return n.post(url, body)
}

func (n *Notifier) post(url string, body []byte) error {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("http post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}
