// Package json serializes examchat documents to a versioned JSON format.
package json

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fwojciec/examchat"
)

// envelope is the v1 wire format for a document.
type envelope struct {
	Version int        `json:"version"`
	Blocks  []blockDTO `json:"blocks"`
}

// MarshalDocument serializes a Document to JSON in v1 envelope format.
func MarshalDocument(doc examchat.Document) ([]byte, error) {
	env := envelope{
		Version: 1,
		Blocks:  make([]blockDTO, len(doc.Blocks)),
	}
	for i, b := range doc.Blocks {
		dto, err := marshalBlock(b)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		env.Blocks[i] = dto
	}
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalDocument deserializes a Document from JSON in v1 envelope format.
func UnmarshalDocument(data []byte) (examchat.Document, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return examchat.Document{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != 1 {
		return examchat.Document{}, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	if len(env.Blocks) == 0 {
		return examchat.Document{}, nil
	}
	blocks := make([]examchat.Block, len(env.Blocks))
	for i, dto := range env.Blocks {
		b, err := unmarshalBlock(dto)
		if err != nil {
			return examchat.Document{}, fmt.Errorf("block %d: %w", i, err)
		}
		blocks[i] = b
	}
	return examchat.Document{Blocks: blocks}, nil
}

// Load reads a Document from a JSON file.
func Load(path string) (examchat.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return examchat.Document{}, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalDocument(data)
}
