package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentBlockValidate(t *testing.T) {
	cases := []struct {
		name    string
		block   ContentBlock
		wantErr bool
	}{
		{"heading ok", ContentBlock{Type: BlockHeading, Level: 2, Text: "Intro"}, false},
		{"heading missing text", ContentBlock{Type: BlockHeading, Level: 2}, true},
		{"heading level out of range", ContentBlock{Type: BlockHeading, Level: 7, Text: "x"}, true},
		{"heading with code field", ContentBlock{Type: BlockHeading, Level: 1, Text: "x", Code: "y"}, true},
		{"text ok", ContentBlock{Type: BlockText, Text: "paragraph"}, false},
		{"text with level", ContentBlock{Type: BlockText, Text: "x", Level: 1}, true},
		{"text with url", ContentBlock{Type: BlockText, Text: "x", URL: "http://e"}, true},
		{"image ok", ContentBlock{Type: BlockImage, URL: "http://e/i.png", Alt: "d", Caption: "c"}, false},
		{"image missing url", ContentBlock{Type: BlockImage, Alt: "d"}, true},
		{"image with text", ContentBlock{Type: BlockImage, URL: "http://e", Text: "x"}, true},
		{"code ok", ContentBlock{Type: BlockCode, Language: "go", Code: "fmt.Println()"}, false},
		{"code missing code", ContentBlock{Type: BlockCode, Language: "go"}, true},
		{"code with caption", ContentBlock{Type: BlockCode, Code: "x", Caption: "c"}, true},
		{"unknown type", ContentBlock{Type: "video", URL: "http://e"}, true},
		{"empty type", ContentBlock{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.block.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTutorialValidate(t *testing.T) {
	valid := func() Tutorial {
		return Tutorial{Title: "T", Category: "go", Content: "body"}
	}

	t.Run("difficulty defaults to beginner", func(t *testing.T) {
		tut := valid()
		require.NoError(t, tut.Validate())
		assert.Equal(t, DifficultyBeginner, tut.Difficulty)
	})

	t.Run("unknown difficulty rejected", func(t *testing.T) {
		tut := valid()
		tut.Difficulty = "expert"
		assert.Error(t, tut.Validate())
	})

	t.Run("blank title rejected", func(t *testing.T) {
		tut := valid()
		tut.Title = "   "
		assert.Error(t, tut.Validate())
	})

	t.Run("negative read time rejected", func(t *testing.T) {
		tut := valid()
		tut.ReadTime = -1
		assert.Error(t, tut.Validate())
	})

	t.Run("bad content block surfaces its index", func(t *testing.T) {
		tut := valid()
		tut.ContentBlocks = []ContentBlock{
			{Type: BlockText, Text: "fine"},
			{Type: BlockImage},
		}
		err := tut.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "content_blocks[1]")
	})

	t.Run("code example without language rejected", func(t *testing.T) {
		tut := valid()
		tut.CodeExamples = []CodeExample{{Code: "print(1)"}}
		assert.Error(t, tut.Validate())
	})
}
