package models

import (
	"errors"
	"strings"
	"time"
)

// Category, Language and ReadTimePreset are administrative taxonomy records.
// Tutorials reference categories and languages by name string only; nothing
// enforces that those strings resolve to a row here.

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	IsActive    bool      `json:"is_active"`
	SortOrder   int       `json:"sort_order"`
	UsageCount  int64     `json:"usage_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Language struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	DisplayName string    `json:"display_name,omitempty"`
	Judge0ID    int       `json:"judge0_id,omitempty"`
	EditorMode  string    `json:"editor_mode,omitempty"`
	IsActive    bool      `json:"is_active"`
	SortOrder   int       `json:"sort_order"`
	UsageCount  int64     `json:"usage_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ReadTimePreset struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	Label      string    `json:"label,omitempty"`
	MinMinutes int       `json:"min_minutes"`
	MaxMinutes int       `json:"max_minutes"`
	IsActive   bool      `json:"is_active"`
	SortOrder  int       `json:"sort_order"`
	UsageCount int64     `json:"usage_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name is required")
	}
	return nil
}

func (c *Category) Validate() error { return validateName(c.Name) }
func (l *Language) Validate() error { return validateName(l.Name) }

func (p *ReadTimePreset) Validate() error {
	if err := validateName(p.Name); err != nil {
		return err
	}
	if p.MinMinutes < 0 || (p.MaxMinutes != 0 && p.MaxMinutes < p.MinMinutes) {
		return errors.New("invalid minute bounds")
	}
	return nil
}
