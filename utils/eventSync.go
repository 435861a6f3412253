package utils

import (
	"log"
	"time"

	"github.com/rohitpatel0011/course-platform/config"

	"github.com/go-resty/resty/v2"
)

// PushEvent forwards a platform event (registration, enrollment) to the
// configured webhook. Fire-and-forget: callers run it in a goroutine and
// failures are only logged, the request that triggered the event already
// succeeded.
func PushEvent(event string, payload map[string]interface{}) {
	url := config.AppConfig.SyncWebhookURL
	if url == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"event":   event,
			"payload": payload,
			"sent_at": time.Now().UTC(),
		}).
		Post(url)
	if err != nil {
		log.Printf("Error pushing %s event: %v", event, err)
		return
	}
	if resp.StatusCode() >= 300 {
		log.Printf("Event sync for %s returned %d: %s", event, resp.StatusCode(), resp.String())
	}
}
