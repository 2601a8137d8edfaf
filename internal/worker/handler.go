package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"callboard/internal/events"

	"github.com/nats-io/nats.go"
)

const (
	maxRetries    = 3
	retryDelaySec = 2
	dlqSubject    = "notify.failed"
)

type Worker struct {
	natsConn *nats.Conn
	mailer   Mailer
	repo     Repository
}

func (w *Worker) handleResponseCreated(msg *nats.Msg) {
	var event events.ResponseCreatedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		log.Printf("Error unmarshalling event: %v", err)
		return
	}

	log.Printf("Event received: response %s created on ad %s.", event.ResponseID, event.AdID)

	recipient, err := w.repo.GetRecipient(context.Background(), event.AdAuthorID)
	if err != nil {
		log.Printf("Failed to retrieve ad author %s: %v", event.AdAuthorID, err)
		return
	}

	// Only authors with a present, verified address get mail.
	if recipient.Email == "" || !recipient.EmailVerified {
		log.Printf("Ad author %s has no verified email. No notification sent.", event.AdAuthorID)
		return
	}

	subject := fmt.Sprintf("New response to your ad %q", event.AdTitle)
	body := fmt.Sprintf("<p>%s responded to your ad <b>%s</b>.</p>", event.ResponderName, event.AdTitle)

	w.sendWithRetry(recipient.Email, subject, body, msg.Data)
}

func (w *Worker) handleResponseAccepted(msg *nats.Msg) {
	var event events.ResponseAcceptedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		log.Printf("Error unmarshalling event: %v", err)
		return
	}

	log.Printf("Event received: response %s on ad %s accepted.", event.ResponseID, event.AdID)

	recipient, err := w.repo.GetRecipient(context.Background(), event.ResponseAuthorID)
	if err != nil {
		log.Printf("Failed to retrieve response author %s: %v", event.ResponseAuthorID, err)
		return
	}

	if recipient.Email == "" {
		log.Printf("Response author %s has no email. No notification sent.", event.ResponseAuthorID)
		return
	}

	subject := fmt.Sprintf("Your response to %q was accepted", event.AdTitle)
	body := fmt.Sprintf("<p>The author of <b>%s</b> accepted your response.</p>", event.AdTitle)

	w.sendWithRetry(recipient.Email, subject, body, msg.Data)
}

// handleNewsletterIssue fans one issue out to every subscriber. Each
// recipient is attempted exactly once and a bad address never aborts
// delivery to the rest.
func (w *Worker) handleNewsletterIssue(msg *nats.Msg) {
	var event events.NewsletterIssueEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		log.Printf("Error unmarshalling event: %v", err)
		return
	}

	emails, err := w.repo.ListNewsletterRecipients(context.Background())
	if err != nil {
		log.Printf("Failed to retrieve newsletter recipients: %v", err)
		return
	}

	if len(emails) == 0 {
		log.Println("No newsletter subscribers. Nothing to send.")
		return
	}

	log.Printf("Sending newsletter %q to %d subscriber(s)...", event.Subject, len(emails))

	sent := 0
	for _, email := range emails {
		if err := w.send(email, event.Subject, event.HTML); err != nil {
			log.Printf("FAILED to send newsletter to %s: %v", email, err)
			continue
		}
		sent++
	}

	log.Printf("Newsletter %q delivered to %d/%d subscriber(s).", event.Subject, sent, len(emails))
}

// sendWithRetry delivers a single notification with bounded retries and
// publishes the original event to the DLQ when every attempt fails.
func (w *Worker) sendWithRetry(to, subject, body string, raw []byte) {
	var sendErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		sendErr = w.send(to, subject, body)
		if sendErr == nil {
			log.Printf("Notification sent to %s (attempt %d)", to, attempt)
			return
		}

		log.Printf("Failed sending notification to %s (attempt %d): %v. Retrying in %d seconds...", to, attempt, sendErr, retryDelaySec)
		time.Sleep(time.Second * retryDelaySec)
	}

	log.Printf("FAILED COMPLETELY to notify %s after %d attempts. Last error: %v", to, maxRetries, sendErr)

	if err := w.natsConn.Publish(dlqSubject, raw); err != nil {
		log.Printf("Failed to publish to DLQ '%s': %v", dlqSubject, err)
	} else {
		log.Printf("Published failed notification to DLQ '%s'", dlqSubject)
	}
}

func (w *Worker) send(to, subject, body string) error {
	if w.mailer == nil {
		log.Printf("SUCCESS (mock): email %q sent to %s", subject, to)
		return nil
	}
	return w.mailer.Send(to, subject, body)
}

func Start(natsURL string) error {
	repo, err := NewRepository()
	if err != nil {
		return err
	}

	nc, err := nats.Connect(natsURL)
	if err != nil {
		return err
	}

	worker := &Worker{
		natsConn: nc,
		mailer:   NewMailerFromEnv(),
		repo:     repo,
	}

	if _, err := nc.Subscribe(events.SubjectResponseCreated, worker.handleResponseCreated); err != nil {
		return err
	}
	if _, err := nc.Subscribe(events.SubjectResponseAccepted, worker.handleResponseAccepted); err != nil {
		return err
	}
	if _, err := nc.Subscribe(events.SubjectNewsletterIssue, worker.handleNewsletterIssue); err != nil {
		return err
	}

	return nil
}
