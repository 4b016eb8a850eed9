package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// CodeExample is one runnable snippet attached to a tutorial. The language
// string is a denormalized enumeration; it is not a foreign key into the
// languages table.
type CodeExample struct {
	Title    string `json:"title,omitempty"`
	Language string `json:"language"`
	Code     string `json:"code"`
}

// Block type tags for tutorial content blocks.
const (
	BlockHeading = "heading"
	BlockText    = "text"
	BlockImage   = "image"
	BlockCode    = "code"
)

// ContentBlock is a tagged variant: exactly the fields belonging to its Type
// may be populated. Validate rejects blocks whose fields don't match the tag.
type ContentBlock struct {
	Type string `json:"type"`

	// heading
	Level int `json:"level,omitempty"`

	// heading + text share Text
	Text string `json:"text,omitempty"`

	// image
	URL     string `json:"url,omitempty"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`

	// code
	Language string `json:"language,omitempty"`
	Code     string `json:"code,omitempty"`
}

func (b ContentBlock) Validate() error {
	switch b.Type {
	case BlockHeading:
		if b.Text == "" {
			return errors.New("heading block requires text")
		}
		if b.Level < 1 || b.Level > 6 {
			return errors.New("heading level must be 1-6")
		}
		if b.URL != "" || b.Alt != "" || b.Caption != "" || b.Language != "" || b.Code != "" {
			return errors.New("heading block carries non-heading fields")
		}
	case BlockText:
		if b.Text == "" {
			return errors.New("text block requires text")
		}
		if b.Level != 0 || b.URL != "" || b.Alt != "" || b.Caption != "" || b.Language != "" || b.Code != "" {
			return errors.New("text block carries non-text fields")
		}
	case BlockImage:
		if b.URL == "" {
			return errors.New("image block requires url")
		}
		if b.Level != 0 || b.Text != "" || b.Language != "" || b.Code != "" {
			return errors.New("image block carries non-image fields")
		}
	case BlockCode:
		if b.Code == "" {
			return errors.New("code block requires code")
		}
		if b.Level != 0 || b.Text != "" || b.URL != "" || b.Alt != "" || b.Caption != "" {
			return errors.New("code block carries non-code fields")
		}
	default:
		return fmt.Errorf("unknown block type %q", b.Type)
	}
	return nil
}

type Tutorial struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Slug          string         `json:"slug"`
	Category      string         `json:"category"`
	Content       string         `json:"content"`
	Excerpt       string         `json:"excerpt,omitempty"`
	CodeExamples  []CodeExample  `json:"code_examples"`
	ContentBlocks []ContentBlock `json:"content_blocks"`
	Tags          []string       `json:"tags"`
	Difficulty    Difficulty     `json:"difficulty"`
	ReadTime      int            `json:"read_time"`
	IsPublished   bool           `json:"is_published"`
	Views         int64          `json:"views"`
	Likes         int64          `json:"likes"`
	AuthorID      *string        `json:"author_id,omitempty"`
	Author        *AuthorRef     `json:"author,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (t *Tutorial) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(t.Category) == "" {
		return errors.New("category is required")
	}
	if strings.TrimSpace(t.Content) == "" {
		return errors.New("content is required")
	}
	if t.Difficulty == "" {
		t.Difficulty = DifficultyBeginner
	}
	switch t.Difficulty {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
	default:
		return fmt.Errorf("unknown difficulty %q", t.Difficulty)
	}
	if t.ReadTime < 0 {
		return errors.New("read_time must be >= 0")
	}
	for i, b := range t.ContentBlocks {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("content_blocks[%d]: %w", i, err)
		}
	}
	for i, ex := range t.CodeExamples {
		if strings.TrimSpace(ex.Code) == "" {
			return fmt.Errorf("code_examples[%d]: code is required", i)
		}
		if strings.TrimSpace(ex.Language) == "" {
			return fmt.Errorf("code_examples[%d]: language is required", i)
		}
	}
	return nil
}

// ListItem is the reduced projection used by listing payloads: everything a
// card needs, none of the body.
type ListItem struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	Category   string     `json:"category"`
	Excerpt    string     `json:"excerpt,omitempty"`
	Tags       []string   `json:"tags"`
	Difficulty Difficulty `json:"difficulty"`
	ReadTime   int        `json:"read_time"`
	Views      int64      `json:"views"`
	Likes      int64      `json:"likes"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (t *Tutorial) ListItem() ListItem {
	return ListItem{
		ID:         t.ID,
		Title:      t.Title,
		Slug:       t.Slug,
		Category:   t.Category,
		Excerpt:    t.Excerpt,
		Tags:       t.Tags,
		Difficulty: t.Difficulty,
		ReadTime:   t.ReadTime,
		Views:      t.Views,
		Likes:      t.Likes,
		CreatedAt:  t.CreatedAt,
	}
}
