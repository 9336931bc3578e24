package messaging

import (
	"context"
	"errors"
	"strings"

	"institute-events/internal/kv"
)

var (
	ErrTemplateName    = errors.New("messaging: template name is required")
	ErrTemplateMissing = errors.New("messaging: template not found")
)

type Template struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// TemplateStore keeps each user's saved message templates as one list.
type TemplateStore struct {
	kv kv.Store
}

func NewTemplateStore(store kv.Store) *TemplateStore {
	return &TemplateStore{kv: store}
}

func (s *TemplateStore) List(ctx context.Context, userID string) ([]Template, error) {
	templates := []Template{}
	if _, err := s.kv.Get(ctx, userID, kv.TemplatesKey, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func (s *TemplateStore) Save(ctx context.Context, userID string, t Template) ([]Template, error) {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return nil, ErrTemplateName
	}
	if strings.TrimSpace(t.Content) == "" {
		return nil, ErrEmptyMessage
	}

	templates, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	templates = append(templates, t)
	if err := s.kv.Set(ctx, userID, kv.TemplatesKey, templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// Delete removes the template at index.
func (s *TemplateStore) Delete(ctx context.Context, userID string, index int) ([]Template, error) {
	templates, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(templates) {
		return nil, ErrTemplateMissing
	}
	templates = append(templates[:index], templates[index+1:]...)
	if err := s.kv.Set(ctx, userID, kv.TemplatesKey, templates); err != nil {
		return nil, err
	}
	return templates, nil
}
