package fizzbuzz

import "strconv"

// Kind tags the category of a Value.
type Kind uint8

const (
	// KindNumber is an integer divisible by neither 3 nor 5.
	KindNumber Kind = iota
	// KindFizz is a multiple of 3 that is not a multiple of 15.
	KindFizz
	// KindBuzz is a multiple of 5 that is not a multiple of 15.
	KindBuzz
	// KindFizzBuzz is a multiple of 15.
	KindFizzBuzz
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "Number"
	case KindFizz:
		return "Fizz"
	case KindBuzz:
		return "Buzz"
	case KindFizzBuzz:
		return "FizzBuzz"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a classified integer. N is only meaningful for KindNumber.
type Value struct {
	Kind Kind
	N    int
}

// Category values.
var (
	Fizz     = Value{Kind: KindFizz}
	Buzz     = Value{Kind: KindBuzz}
	FizzBuzz = Value{Kind: KindFizzBuzz}
)

// Number returns the Value for an unclassified integer.
func Number(n int) Value {
	return Value{Kind: KindNumber, N: n}
}

// Classify maps n to its category.
func Classify(n int) Value {
	switch {
	case n%15 == 0:
		return FizzBuzz
	case n%3 == 0:
		return Fizz
	case n%5 == 0:
		return Buzz
	default:
		return Number(n)
	}
}

// IsNumber reports whether v carries an integer payload.
func (v Value) IsNumber() bool {
	return v.Kind == KindNumber
}

// String returns the decimal form for numbers and the category name
// otherwise.
func (v Value) String() string {
	if v.Kind == KindNumber {
		return strconv.Itoa(v.N)
	}
	return v.Kind.String()
}

// Interface returns v as an int for numbers and as a string otherwise.
func (v Value) Interface() any {
	if v.Kind == KindNumber {
		return v.N
	}
	return v.Kind.String()
}

// AppendJSON appends the JSON encoding of v to dst.
func (v Value) AppendJSON(dst []byte) []byte {
	switch v.Kind {
	case KindNumber:
		return strconv.AppendInt(dst, int64(v.N), 10)
	case KindFizz:
		return append(dst, `"Fizz"`...)
	case KindBuzz:
		return append(dst, `"Buzz"`...)
	default:
		return append(dst, `"FizzBuzz"`...)
	}
}
