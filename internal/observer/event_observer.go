package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// EmbedEvent represents one step of an embed request's lifecycle
type EmbedEvent struct {
	EventType      EventType              `json:"event_type"`
	Timestamp      time.Time              `json:"timestamp"`
	ContentURL     string                 `json:"content_url"`
	Format         string                 `json:"format,omitempty"`
	ProcessingTime time.Duration          `json:"processing_time"`
	Success        bool                   `json:"success"`
	ErrorCode      string                 `json:"error_code,omitempty"`
	ErrorMessage   string                 `json:"error_message,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// EventType represents the type of embed event
type EventType string

const (
	// RequestReceived when a request passes validation
	RequestReceived EventType = "request_received"
	// EmbedBuilt when a response is built successfully
	EmbedBuilt EventType = "embed_built"
	// EmbedFailed when the pipeline fails at any stage
	EmbedFailed EventType = "embed_failed"
	// MetadataFetched when backend metadata is resolved
	MetadataFetched EventType = "metadata_fetched"
	// MetadataFetchFailed when the backend lookup fails
	MetadataFetchFailed EventType = "metadata_fetch_failed"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event EmbedEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event EmbedEvent)
}

// LoggingObserver logs embed events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{logger: logger}
}

// GetObserverName returns the observer's name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// OnEvent handles embed events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event EmbedEvent) {
	fields := logrus.Fields{
		"event_type":      event.EventType,
		"content_url":     event.ContentURL,
		"processing_time": event.ProcessingTime,
		"success":         event.Success,
	}
	if event.Format != "" {
		fields["format"] = event.Format
	}
	if event.ErrorCode != "" {
		fields["error_code"] = event.ErrorCode
	}
	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}
	for k, v := range event.Metadata {
		fields[k] = v
	}

	switch event.EventType {
	case RequestReceived:
		o.logger.WithFields(fields).Debug("Embed request received")
	case EmbedBuilt:
		o.logger.WithFields(fields).Info("Embed response built")
	case EmbedFailed:
		o.logger.WithFields(fields).Error("Embed request failed")
	case MetadataFetched:
		o.logger.WithFields(fields).Debug("Content metadata fetched")
	case MetadataFetchFailed:
		o.logger.WithFields(fields).Error("Content metadata fetch failed")
	default:
		o.logger.WithFields(fields).Info("Embed event")
	}
}

// EventSubject is a thread-safe Subject implementation. Notification is
// strictly fire-and-forget: a panicking observer is swallowed and must never
// alter the primary response.
type EventSubject struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventSubject creates an empty subject
func NewEventSubject() *EventSubject {
	return &EventSubject{}
}

// Subscribe registers an observer
func (s *EventSubject) Subscribe(observer Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

// Unsubscribe removes an observer by name
func (s *EventSubject) Unsubscribe(observer Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.observers {
		if o.GetObserverName() == observer.GetObserverName() {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// NotifyObservers delivers the event to every observer, discarding panics
func (s *EventSubject) NotifyObservers(ctx context.Context, event EmbedEvent) {
	s.mu.RLock()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.RUnlock()

	for _, o := range observers {
		func() {
			defer func() {
				// Observability must never break the main flow
				_ = recover()
			}()
			o.OnEvent(ctx, event)
		}()
	}
}
