package json

import (
	"fmt"

	"github.com/fwojciec/examchat"
)

// spanDTO is the JSON representation of a Span with a type discriminator.
type spanDTO struct {
	Type     string    `json:"type"`
	Text     *string   `json:"text,omitempty"`
	Children []spanDTO `json:"children,omitempty"`
	URL      *string   `json:"url,omitempty"`
}

func marshalSpans(spans []examchat.Span) ([]spanDTO, error) {
	if spans == nil {
		return nil, nil
	}
	result := make([]spanDTO, len(spans))
	for i, s := range spans {
		dto, err := marshalSpan(s)
		if err != nil {
			return nil, fmt.Errorf("span %d: %w", i, err)
		}
		result[i] = dto
	}
	return result, nil
}

func marshalSpan(s examchat.Span) (spanDTO, error) {
	switch v := s.(type) {
	case examchat.Text:
		return spanDTO{Type: "text", Text: &v.Text}, nil
	case examchat.Code:
		return spanDTO{Type: "code", Text: &v.Text}, nil
	case examchat.StarIcon:
		return spanDTO{Type: "star"}, nil
	case examchat.Bold:
		children, err := marshalSpans(v.Children)
		if err != nil {
			return spanDTO{}, err
		}
		return spanDTO{Type: "bold", Children: children}, nil
	case examchat.Italic:
		children, err := marshalSpans(v.Children)
		if err != nil {
			return spanDTO{}, err
		}
		return spanDTO{Type: "italic", Children: children}, nil
	case examchat.Link:
		label, err := marshalSpans(v.Label)
		if err != nil {
			return spanDTO{}, err
		}
		return spanDTO{Type: "link", Children: label, URL: &v.URL}, nil
	default:
		return spanDTO{}, fmt.Errorf("unknown span type: %T", s)
	}
}

func unmarshalSpans(dtos []spanDTO) ([]examchat.Span, error) {
	if len(dtos) == 0 {
		return nil, nil
	}
	result := make([]examchat.Span, len(dtos))
	for i, dto := range dtos {
		s, err := unmarshalSpan(dto)
		if err != nil {
			return nil, fmt.Errorf("span %d: %w", i, err)
		}
		result[i] = s
	}
	return result, nil
}

func unmarshalSpan(dto spanDTO) (examchat.Span, error) {
	var text string
	if dto.Text != nil {
		text = *dto.Text
	}
	switch dto.Type {
	case "text":
		return examchat.Text{Text: text}, nil
	case "code":
		return examchat.Code{Text: text}, nil
	case "star":
		return examchat.StarIcon{}, nil
	case "bold":
		children, err := unmarshalSpans(dto.Children)
		if err != nil {
			return nil, err
		}
		return examchat.Bold{Children: children}, nil
	case "italic":
		children, err := unmarshalSpans(dto.Children)
		if err != nil {
			return nil, err
		}
		return examchat.Italic{Children: children}, nil
	case "link":
		label, err := unmarshalSpans(dto.Children)
		if err != nil {
			return nil, err
		}
		var url string
		if dto.URL != nil {
			url = *dto.URL
		}
		return examchat.Link{Label: label, URL: url}, nil
	default:
		return nil, fmt.Errorf("unknown span type: %q", dto.Type)
	}
}
