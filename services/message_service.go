package services

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"institute-events/internal/messaging"
	"institute-events/monitoring"
)

// QueueView is the state of a user's message queue as shown on the page.
type QueueView struct {
	Items []messaging.Item `json:"items"`
	Sent  int              `json:"sent"`
	Total int              `json:"total"`
	Next  *messaging.Item  `json:"next,omitempty"`
}

// MessageService keeps one bulk-message queue per signed-in user in process
// memory. Queues are lost on restart.
type MessageService struct {
	countryCode string
	fallback    string
	templates   *messaging.TemplateStore

	mu     sync.Mutex
	queues map[string]*messaging.Queue
}

func NewMessageService(countryCode, fallback string, templates *messaging.TemplateStore) *MessageService {
	if fallback == "" {
		fallback = messaging.DefaultFallback
	}
	return &MessageService{
		countryCode: countryCode,
		fallback:    fallback,
		templates:   templates,
		queues:      make(map[string]*messaging.Queue),
	}
}

// Process parses pasted contacts into a fresh queue, replacing any previous
// one. The message must be non-empty before the queue is built.
func (s *MessageService) Process(userID, input, message string) (QueueView, error) {
	if strings.TrimSpace(message) == "" {
		return QueueView{}, messaging.ErrEmptyMessage
	}
	items, err := messaging.Parse(input, s.countryCode)
	if err != nil {
		return QueueView{}, err
	}

	q := messaging.NewQueue(items, s.fallback)
	s.mu.Lock()
	s.queues[userID] = q
	view := viewOf(q)
	s.mu.Unlock()

	slog.Info("message queue built", "user", userID, "items", len(items))
	return view, nil
}

// Send personalizes the message for one queue item and returns the chat link
// the client should open.
func (s *MessageService) Send(ctx context.Context, userID string, id int, message string) (string, QueueView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.queues[userID]
	if !ok {
		return "", QueueView{}, messaging.ErrItemNotFound
	}
	link, err := q.Send(ctx, id, message, nil)
	if err != nil {
		return "", viewOf(q), err
	}
	monitoring.TrackMessageDispatch()
	return link, viewOf(q), nil
}

func (s *MessageService) Queue(userID string) QueueView {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.queues[userID]
	if !ok {
		return QueueView{Items: []messaging.Item{}}
	}
	return viewOf(q)
}

// Reset discards the user's queue.
func (s *MessageService) Reset(userID string) {
	s.mu.Lock()
	delete(s.queues, userID)
	s.mu.Unlock()
}

func (s *MessageService) Templates(ctx context.Context, userID string) ([]messaging.Template, error) {
	return s.templates.List(ctx, userID)
}

func (s *MessageService) SaveTemplate(ctx context.Context, userID string, t messaging.Template) ([]messaging.Template, error) {
	return s.templates.Save(ctx, userID, t)
}

func (s *MessageService) DeleteTemplate(ctx context.Context, userID string, index int) ([]messaging.Template, error) {
	return s.templates.Delete(ctx, userID, index)
}

// viewOf copies the queue state; callers hold s.mu.
func viewOf(q *messaging.Queue) QueueView {
	items := make([]messaging.Item, len(q.Items))
	copy(items, q.Items)
	view := QueueView{Items: items, Sent: q.SentCount(), Total: len(items)}
	if next, ok := q.Next(); ok {
		view.Next = &next
	}
	return view
}
