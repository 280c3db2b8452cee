package dsl

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/collecty/richtext/pkg/domain"
)

// Content wraps a built document into a storable content record.
func Content(id, title string, doc Part) (*domain.Content, error) {
	if id == "" {
		return nil, fmt.Errorf("content missing ID")
	}
	body, err := json.Marshal(doc.Build())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal content %s: %w", id, err)
	}
	return &domain.Content{
		ID:        id,
		Title:     title,
		Body:      body,
		UpdatedAt: time.Now().UTC(),
	}, nil
}
