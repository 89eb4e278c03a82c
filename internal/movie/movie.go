package movie

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

type Movie struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Year    uint16 `json:"year"`
	WasGood bool   `json:"was_good"`
}

var (
	ErrNotObject      = errors.New("payload is not a json object")
	ErrMissingField   = errors.New("missing required field")
	ErrDuplicateField = errors.New("duplicate field")
	ErrEmptyID        = errors.New("empty id")
	ErrTrailingData   = errors.New("extra data after json object")
)

// movieReq mirrors Movie with pointer fields so that an absent key (or an
// explicit null) can be told apart from a zero value.
type movieReq struct {
	ID      *string
	Name    *string
	Year    *uint16
	WasGood *bool
}

func (req *movieReq) field(key string) any {
	switch key {
	case "id":
		return &req.ID
	case "name":
		return &req.Name
	case "year":
		return &req.Year
	case "was_good":
		return &req.WasGood
	}
	return nil
}

func DecodeMovie(r io.Reader) (Movie, error) {
	dec := json.NewDecoder(r)

	req, err := decodeObject(dec)
	if err != nil {
		return Movie{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Movie{}, ErrTrailingData
	}

	switch {
	case req.ID == nil:
		return Movie{}, fmt.Errorf("%w: id", ErrMissingField)
	case req.Name == nil:
		return Movie{}, fmt.Errorf("%w: name", ErrMissingField)
	case req.Year == nil:
		return Movie{}, fmt.Errorf("%w: year", ErrMissingField)
	case req.WasGood == nil:
		return Movie{}, fmt.Errorf("%w: was_good", ErrMissingField)
	}
	if *req.ID == "" {
		return Movie{}, ErrEmptyID
	}

	return Movie{
		ID:      *req.ID,
		Name:    *req.Name,
		Year:    *req.Year,
		WasGood: *req.WasGood,
	}, nil
}

// decodeObject walks the top-level object key by key. Keys match the
// schema exactly (encoding/json would fold case when decoding into a
// struct), and a schema key may appear only once.
func decodeObject(dec *json.Decoder) (movieReq, error) {
	var req movieReq

	tok, err := dec.Token()
	if err != nil {
		return movieReq{}, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return movieReq{}, ErrNotObject
	}

	seen := make(map[string]struct{}, 4)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return movieReq{}, err
		}
		key, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return movieReq{}, err
		}

		dst := req.field(key)
		if dst == nil {
			continue
		}
		if _, dup := seen[key]; dup {
			return movieReq{}, fmt.Errorf("%w: %s", ErrDuplicateField, key)
		}
		seen[key] = struct{}{}

		if err := json.Unmarshal(raw, dst); err != nil {
			return movieReq{}, fmt.Errorf("field %s: %w", key, err)
		}
	}

	if _, err := dec.Token(); err != nil {
		return movieReq{}, err
	}
	return req, nil
}
