// Package tokenizer reads a fitted Keras text tokenizer from its JSON export
// (Tokenizer.to_json) and reproduces texts_to_sequences and pad_sequences
// with post padding and truncation.
package tokenizer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Tokenizer maps URL characters (or words) to vocabulary indexes. It is
// immutable after construction and safe for concurrent use.
type Tokenizer struct {
	wordIndex map[string]int32
	charLevel bool
	lower     bool
	filters   string
	split     string
	// numWords limits the vocabulary to indexes below it; 0 means unlimited.
	numWords int32
	// oovIndex is the index of the out-of-vocabulary token, 0 when unset.
	oovIndex int32
	hasOOV   bool
}

type kerasExport struct {
	ClassName string `json:"class_name"`
	Config    struct {
		NumWords  *int            `json:"num_words"`
		Filters   string          `json:"filters"`
		Lower     bool            `json:"lower"`
		Split     string          `json:"split"`
		CharLevel bool            `json:"char_level"`
		OOVToken  *string         `json:"oov_token"`
		WordIndex json.RawMessage `json:"word_index"`
	} `json:"config"`
}

// Parse builds a Tokenizer from the JSON produced by Keras' Tokenizer.to_json.
// word_index may be either a JSON object or a JSON string holding one, which
// is how Keras writes it.
func Parse(b []byte) (*Tokenizer, error) {
	var exp kerasExport
	if err := json.Unmarshal(b, &exp); err != nil {
		return nil, fmt.Errorf("could not decode tokenizer: %w", err)
	}
	if exp.ClassName != "" && exp.ClassName != "Tokenizer" {
		return nil, fmt.Errorf("unexpected tokenizer class %q", exp.ClassName)
	}

	raw := bytes.TrimSpace(exp.Config.WordIndex)
	if len(raw) > 0 && raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, fmt.Errorf("could not decode word index: %w", err)
		}
		raw = []byte(inner)
	}

	wordIndex := map[string]int32{}
	if err := json.Unmarshal(raw, &wordIndex); err != nil {
		return nil, fmt.Errorf("could not decode word index: %w", err)
	}
	if len(wordIndex) == 0 {
		return nil, fmt.Errorf("tokenizer has an empty vocabulary")
	}

	t := &Tokenizer{
		wordIndex: wordIndex,
		charLevel: exp.Config.CharLevel,
		lower:     exp.Config.Lower,
		filters:   exp.Config.Filters,
		split:     exp.Config.Split,
	}
	if t.split == "" {
		t.split = " "
	}
	if exp.Config.NumWords != nil {
		t.numWords = int32(*exp.Config.NumWords) //nolint: gosec
	}
	if exp.Config.OOVToken != nil {
		t.oovIndex, t.hasOOV = wordIndex[*exp.Config.OOVToken]
	}

	return t, nil
}

// Load reads and parses a tokenizer JSON file.
func Load(path string) (*Tokenizer, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read tokenizer file: %w", err)
	}

	return Parse(b)
}

// VocabularySize returns the number of entries in the word index.
func (t *Tokenizer) VocabularySize() int {
	return len(t.wordIndex)
}

// Sequence converts text to vocabulary indexes. Unknown tokens map to the
// OOV index when the tokenizer has one and are dropped otherwise.
func (t *Tokenizer) Sequence(text string) []int32 {
	if t.lower {
		text = strings.ToLower(text)
	}

	var tokens []string
	if t.charLevel {
		tokens = make([]string, 0, len(text))
		for _, r := range text {
			tokens = append(tokens, string(r))
		}
	} else {
		tokens = t.words(text)
	}

	seq := make([]int32, 0, len(tokens))
	for _, tok := range tokens {
		i, ok := t.wordIndex[tok]
		switch {
		case ok && t.numWords > 0 && i >= t.numWords:
			if t.hasOOV {
				seq = append(seq, t.oovIndex)
			}
		case ok:
			seq = append(seq, i)
		case t.hasOOV:
			seq = append(seq, t.oovIndex)
		}
	}

	return seq
}

// words splits text the way keras text_to_word_sequence does: every filter
// character becomes a separator and empty tokens are dropped.
func (t *Tokenizer) words(text string) []string {
	if t.filters != "" {
		text = strings.Map(func(r rune) rune {
			if strings.ContainsRune(t.filters, r) {
				// the split string is usually a single character
				return []rune(t.split)[0]
			}

			return r
		}, text)
	}

	parts := strings.Split(text, t.split)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}

// Encode tokenizes text and pads or truncates it to exactly maxLen entries.
func (t *Tokenizer) Encode(text string, maxLen int) []int32 {
	return PadPost(t.Sequence(text), maxLen)
}

// PadPost returns seq truncated to its first maxLen entries and right-padded
// with zeros up to maxLen.
func PadPost(seq []int32, maxLen int) []int32 {
	if maxLen <= 0 {
		return []int32{}
	}

	out := make([]int32, maxLen)
	copy(out, seq)

	return out
}
