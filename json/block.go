package json

import (
	"fmt"

	"github.com/fwojciec/examchat"
)

// blockDTO is the JSON representation of a Block with a type discriminator.
type blockDTO struct {
	Type    string      `json:"type"`
	Level   *int        `json:"level,omitempty"`
	Content []spanDTO   `json:"content,omitempty"`
	Lang    *string     `json:"lang,omitempty"`
	Text    *string     `json:"text,omitempty"`
	Ordered *bool       `json:"ordered,omitempty"`
	Start   *int        `json:"start,omitempty"`
	Items   [][]spanDTO `json:"items,omitempty"`
}

func marshalBlock(b examchat.Block) (blockDTO, error) {
	switch v := b.(type) {
	case examchat.Heading:
		content, err := marshalSpans(v.Content)
		if err != nil {
			return blockDTO{}, err
		}
		return blockDTO{Type: "heading", Level: &v.Level, Content: content}, nil
	case examchat.Paragraph:
		content, err := marshalSpans(v.Content)
		if err != nil {
			return blockDTO{}, err
		}
		return blockDTO{Type: "paragraph", Content: content}, nil
	case examchat.RawInline:
		content, err := marshalSpans(v.Content)
		if err != nil {
			return blockDTO{}, err
		}
		return blockDTO{Type: "raw", Content: content}, nil
	case examchat.CodeBlock:
		return blockDTO{Type: "code_block", Lang: &v.Lang, Text: &v.Text}, nil
	case examchat.List:
		items := make([][]spanDTO, len(v.Items))
		for i, item := range v.Items {
			content, err := marshalSpans(item)
			if err != nil {
				return blockDTO{}, fmt.Errorf("item %d: %w", i, err)
			}
			items[i] = content
		}
		return blockDTO{Type: "list", Ordered: &v.Ordered, Start: &v.Start, Items: items}, nil
	case examchat.Rule:
		return blockDTO{Type: "rule"}, nil
	default:
		return blockDTO{}, fmt.Errorf("unknown block type: %T", b)
	}
}

func unmarshalBlock(dto blockDTO) (examchat.Block, error) {
	switch dto.Type {
	case "heading":
		content, err := unmarshalSpans(dto.Content)
		if err != nil {
			return nil, err
		}
		level := 1
		if dto.Level != nil {
			level = *dto.Level
		}
		if level < 1 || level > 3 {
			return nil, fmt.Errorf("heading level %d out of range", level)
		}
		return examchat.Heading{Level: level, Content: content}, nil
	case "paragraph":
		content, err := unmarshalSpans(dto.Content)
		if err != nil {
			return nil, err
		}
		return examchat.Paragraph{Content: content}, nil
	case "raw":
		content, err := unmarshalSpans(dto.Content)
		if err != nil {
			return nil, err
		}
		return examchat.RawInline{Content: content}, nil
	case "code_block":
		var lang, text string
		if dto.Lang != nil {
			lang = *dto.Lang
		}
		if dto.Text != nil {
			text = *dto.Text
		}
		return examchat.CodeBlock{Lang: lang, Text: text}, nil
	case "list":
		var list examchat.List
		if dto.Ordered != nil {
			list.Ordered = *dto.Ordered
		}
		if dto.Start != nil {
			list.Start = *dto.Start
		}
		for i, item := range dto.Items {
			content, err := unmarshalSpans(item)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			list.Items = append(list.Items, content)
		}
		return list, nil
	case "rule":
		return examchat.Rule{}, nil
	default:
		return nil, fmt.Errorf("unknown block type: %q", dto.Type)
	}
}
