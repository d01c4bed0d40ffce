// Package jsonsrc streams JSON text straight into the arena using
// encoding/json.Decoder.Token(), so a huge array never needs to sit
// fully parsed in memory before sampling decides what to keep: the
// decoder and the sampler pull from each other one token at a time.
package jsonsrc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/kantord/headson/internal/arena"
	"github.com/kantord/headson/internal/sampler"
)

// Config parameterizes array sampling during ingest. Object keys are
// always captured in full; the priority order builder, not ingest,
// decides which keys survive a budget.
type Config struct {
	ArrayMaxItems int
	ArrayStrategy sampler.Strategy
}

// Ingest reads one JSON document from r and returns its arena.
func Ingest(r io.Reader, cfg Config) (*arena.Arena, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	b := arena.NewBuilder()
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("jsonsrc: %w", err)
	}
	rootID, err := decodeValueFromToken(tok, dec, b, cfg)
	if err != nil {
		return nil, fmt.Errorf("jsonsrc: %w", err)
	}
	b.SetRoot(rootID)
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, fmt.Errorf("jsonsrc: %w", err)
	}
	return b.Finish(), nil
}

func decodeValueFromToken(tok json.Token, dec *json.Decoder, b *arena.Builder, cfg Config) (int, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return decodeObject(dec, b, cfg)
		case '[':
			return decodeArray(dec, b, cfg)
		}
		return 0, fmt.Errorf("unexpected delimiter %q", v)
	case json.Number:
		return b.PushAtomic(arena.Number, v.String()), nil
	case string:
		return b.PushString(v), nil
	case bool:
		if v {
			return b.PushAtomic(arena.Bool, "true"), nil
		}
		return b.PushAtomic(arena.Bool, "false"), nil
	case nil:
		return b.PushAtomic(arena.Null, "null"), nil
	default:
		return 0, fmt.Errorf("unsupported token type %T", tok)
	}
}

// skipValue discards an already-read token's value, descending into
// nested containers by depth-counting delimiters without materializing
// anything into the arena.
func skipValue(tok json.Token, dec *json.Decoder) error {
	d, ok := tok.(json.Delim)
	if !ok || (d != '{' && d != '[') {
		return nil
	}
	depth := 1
	for depth > 0 {
		t, err := dec.Token()
		if err != nil {
			return err
		}
		if dd, ok := t.(json.Delim); ok {
			switch dd {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}

func decodeObject(dec *json.Decoder, b *arena.Builder, cfg Config) (int, error) {
	var keys []string
	var children []int
	for {
		tok, err := dec.Token()
		if err != nil {
			return 0, err
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			break
		}
		key, ok := tok.(string)
		if !ok {
			return 0, fmt.Errorf("expected object key, got %v", tok)
		}
		valTok, err := dec.Token()
		if err != nil {
			return 0, err
		}
		childID, err := decodeValueFromToken(valTok, dec, b, cfg)
		if err != nil {
			return 0, err
		}
		keys = append(keys, key)
		children = append(children, childID)
	}
	return b.PushObject(keys, children, len(keys)), nil
}

func decodeArray(dec *json.Decoder, b *arena.Builder, cfg Config) (int, error) {
	src := &arraySource{dec: dec, b: b, cfg: cfg}
	result, err := sampler.Sample(cfg.ArrayStrategy, src, cfg.ArrayMaxItems)
	if err != nil {
		return 0, err
	}
	return b.PushArray(result.Children, result.TotalLen, result.Indices), nil
}

// arraySource adapts the streaming JSON decoder to sampler.Source: each
// Next/Skip call reads exactly one array-element token and either
// materializes it into the arena or discards it structurally.
type arraySource struct {
	dec *json.Decoder
	b   *arena.Builder
	cfg Config
}

func (s *arraySource) Next() (int, bool, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return 0, false, err
	}
	if d, ok := tok.(json.Delim); ok && d == ']' {
		return 0, false, nil
	}
	id, err := decodeValueFromToken(tok, s.dec, s.b, s.cfg)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (s *arraySource) Skip() (bool, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return false, err
	}
	if d, ok := tok.(json.Delim); ok && d == ']' {
		return false, nil
	}
	if err := skipValue(tok, s.dec); err != nil {
		return false, err
	}
	return true, nil
}
