package fizzbuzz

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// ParseJSON decodes a JSON array of integers and category strings into a
// Sequence. Whitespace between tokens is accepted.
func ParseJSON(data string) (Sequence, error) {
	if !gjson.Valid(data) {
		return nil, fmt.Errorf("%w: malformed document", ErrInvalidJSON)
	}
	doc := gjson.Parse(data)
	if !doc.IsArray() {
		return nil, fmt.Errorf("%w: expected array, got %s", ErrInvalidJSON, doc.Type)
	}

	elems := doc.Array()
	seq := make(Sequence, 0, len(elems))
	for i, elem := range elems {
		v, err := decodeValue(elem)
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrInvalidJSON, i, err)
		}
		seq = append(seq, v)
	}
	return seq, nil
}

func decodeValue(r gjson.Result) (Value, error) {
	switch r.Type {
	case gjson.Number:
		n := r.Int()
		if float64(n) != r.Num {
			return Value{}, fmt.Errorf("non-integer number %s", r.Raw)
		}
		return Number(int(n)), nil
	case gjson.String:
		switch r.Str {
		case "Fizz":
			return Fizz, nil
		case "Buzz":
			return Buzz, nil
		case "FizzBuzz":
			return FizzBuzz, nil
		}
		return Value{}, fmt.Errorf("unknown category %q", r.Str)
	default:
		return Value{}, fmt.Errorf("unexpected %s", r.Type)
	}
}

// Verify checks seq against the canonical classification of
// 1..len(seq) and returns a *MismatchError for the first difference.
func Verify(seq Sequence) error {
	for i, got := range seq {
		if want := Classify(i + 1); got != want {
			return &MismatchError{Index: i, Got: got, Want: want}
		}
	}
	return nil
}
