package fizzbuzz

// Sequence holds the classification of 1..n; index i holds i+1.
type Sequence []Value

// Generate classifies the integers 1..n. Non-positive n yields an empty
// sequence.
func Generate(n int) Sequence {
	return generateLCM(n)
}

// JSON renders the compact JSON array for 1..n.
func JSON(n int) string {
	return Generate(n).JSON()
}

// Len returns the number of values in s.
func (s Sequence) Len() int {
	return len(s)
}

// Values renders s as dynamically typed cells: int for numbers, string for
// categories.
func (s Sequence) Values() []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v.Interface()
	}
	return out
}

// Strings renders every value in s as text.
func (s Sequence) Strings() []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = v.String()
	}
	return out
}

// AppendJSON appends the compact JSON array encoding of s to dst.
func (s Sequence) AppendJSON(dst []byte) []byte {
	dst = append(dst, '[')
	for i, v := range s {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = v.AppendJSON(dst)
	}
	return append(dst, ']')
}

// JSON renders s as a JSON array with no whitespace. An empty sequence
// renders as "[]".
func (s Sequence) JSON() string {
	// Most cells fit in six bytes including the separator.
	return string(s.AppendJSON(make([]byte, 0, len(s)*6+2)))
}

// Equal reports whether s and other hold the same values in order.
func (s Sequence) Equal(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}
