package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Item is a single fillable field of an application form.
type Item struct {
	ItemID      string `json:"item_id"`
	Label       string `json:"label"`
	Instruction string `json:"instruction"`
}

// FormSchema holds one form definition. The raw JSON is kept verbatim so
// prompt embedding serializes the complete form, including fields this
// package does not model.
type FormSchema struct {
	Items []Item

	raw json.RawMessage
}

func (f *FormSchema) UnmarshalJSON(data []byte) error {
	var alias struct {
		Items []Item `json:"items"`
	}
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	f.Items = alias.Items
	f.raw = append(json.RawMessage(nil), data...)
	return nil
}

// RawJSON returns the complete form definition as loaded.
func (f FormSchema) RawJSON() json.RawMessage {
	return f.raw
}

// ItemsJSON serializes only the items array, for the review prompt.
func (f FormSchema) ItemsJSON() (json.RawMessage, error) {
	if f.Items == nil {
		return json.RawMessage("[]"), nil
	}
	return json.Marshal(f.Items)
}

// Chunk is one unit of the reference-document corpus.
type Chunk struct {
	Content string `json:"content"`
	Source  string `json:"source"`
}

const (
	formStructuresFile = "form_structures.json"
	basicRulesFile     = "basic_rules.json"
	pdfChunksFile      = "pdf_chunks.json"
)

// Store holds the three static datasets. Loaded once at startup and
// read-only afterwards; all request flows share it without locking.
type Store struct {
	forms    map[string]FormSchema
	formKeys []string
	rules    json.RawMessage
	chunks   []Chunk
}

// Load reads the three JSON datasets from dir. The data is curated and
// trusted, so any parse failure is returned as-is for the caller to
// treat as fatal.
func Load(dir string) (*Store, error) {
	s := &Store{}

	formsData, err := os.ReadFile(filepath.Join(dir, formStructuresFile))
	if err != nil {
		return nil, fmt.Errorf("read form structures: %w", err)
	}
	if err := json.Unmarshal(formsData, &s.forms); err != nil {
		return nil, fmt.Errorf("parse form structures: %w", err)
	}
	for key := range s.forms {
		s.formKeys = append(s.formKeys, key)
	}
	sort.Strings(s.formKeys)

	rulesData, err := os.ReadFile(filepath.Join(dir, basicRulesFile))
	if err != nil {
		return nil, fmt.Errorf("read basic rules: %w", err)
	}
	if !json.Valid(rulesData) {
		return nil, fmt.Errorf("parse basic rules: invalid JSON")
	}
	s.rules = json.RawMessage(rulesData)

	chunksData, err := os.ReadFile(filepath.Join(dir, pdfChunksFile))
	if err != nil {
		return nil, fmt.Errorf("read pdf chunks: %w", err)
	}
	if err := json.Unmarshal(chunksData, &s.chunks); err != nil {
		return nil, fmt.Errorf("parse pdf chunks: %w", err)
	}

	return s, nil
}

// Form returns the schema for a form key.
func (s *Store) Form(key string) (FormSchema, bool) {
	f, ok := s.forms[key]
	return f, ok
}

// FormKeys returns all form keys in sorted order.
func (s *Store) FormKeys() []string {
	return s.formKeys
}

// Rules returns the rule set as raw JSON. It is never queried
// programmatically, only embedded whole into prompts.
func (s *Store) Rules() json.RawMessage {
	return s.rules
}

// Chunks returns the corpus in original document order.
func (s *Store) Chunks() []Chunk {
	return s.chunks
}
