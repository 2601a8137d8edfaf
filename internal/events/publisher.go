package events

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const (
	SubjectResponseCreated  = "response.created"
	SubjectResponseAccepted = "response.accepted"
	SubjectNewsletterIssue  = "newsletter.issue"
)

type EventPublisher interface {
	PublishResponseCreated(event ResponseCreatedEvent) error
	PublishResponseAccepted(event ResponseAcceptedEvent) error
	PublishNewsletterIssue(event NewsletterIssueEvent) error
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (EventPublisher, error) {
	nc, err := nats.Connect(natsURL)

	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

// ResponseCreatedEvent tells the worker a new response landed on an ad.
// The worker resolves the ad author's address itself; the event only
// carries identifiers and display fields.
type ResponseCreatedEvent struct {
	EventType     string    `json:"event_type"`
	ResponseID    uuid.UUID `json:"response_id"`
	AdID          uuid.UUID `json:"ad_id"`
	AdTitle       string    `json:"ad_title"`
	AdAuthorID    uuid.UUID `json:"ad_author_id"`
	ResponderName string    `json:"responder_name"`
	CreatedAt     time.Time `json:"created_at"`
}

type ResponseAcceptedEvent struct {
	EventType        string    `json:"event_type"`
	ResponseID       uuid.UUID `json:"response_id"`
	AdID             uuid.UUID `json:"ad_id"`
	AdTitle          string    `json:"ad_title"`
	ResponseAuthorID uuid.UUID `json:"response_author_id"`
	AcceptedAt       time.Time `json:"accepted_at"`
}

type NewsletterIssueEvent struct {
	EventType string `json:"event_type"`
	Subject   string `json:"subject"`
	HTML      string `json:"html"`
}

func (p *NatsPublisher) PublishResponseCreated(event ResponseCreatedEvent) error {
	event.EventType = SubjectResponseCreated
	return p.publish(SubjectResponseCreated, event)
}

func (p *NatsPublisher) PublishResponseAccepted(event ResponseAcceptedEvent) error {
	event.EventType = SubjectResponseAccepted
	return p.publish(SubjectResponseAccepted, event)
}

func (p *NatsPublisher) PublishNewsletterIssue(event NewsletterIssueEvent) error {
	event.EventType = SubjectNewsletterIssue
	return p.publish(SubjectNewsletterIssue, event)
}

func (p *NatsPublisher) publish(subject string, event interface{}) error {
	eventJSON, err := json.Marshal(event)

	if err != nil {
		log.Printf("Error marshalling event JSON: %v", err)
		return err
	}

	err = p.conn.Publish(subject, eventJSON)

	if err != nil {
		log.Printf("Error publishing to NATS: %v", err)
		return err
	}

	log.Printf("Published event to NATS on subject '%s'", subject)

	return nil
}
