package model

import "context"

// Notifier sends transactional email.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// EventPublisher publishes a single event to a named topic and waits
// until the broker has accepted it.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// TopicUserCreated is published after a user has been provisioned.
const TopicUserCreated = "user_created"
