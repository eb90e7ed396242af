// Package fizzbuzz classifies integers by divisibility and renders the
// resulting sequences.
//
// # Classification
//
// Classify maps one integer to a Value:
//
//	fizzbuzz.Classify(9)  // Fizz
//	fizzbuzz.Classify(10) // Buzz
//	fizzbuzz.Classify(30) // FizzBuzz
//	fizzbuzz.Classify(7)  // Number(7)
//
// Every integer is accepted, including zero and negatives.
//
// # Sequences
//
// Generate classifies 1..n. A non-positive n yields an empty sequence
// rather than an error:
//
//	seq := fizzbuzz.Generate(15)
//	fmt.Println(seq.JSON())
//	// [1,2,"Fizz",4,"Buzz","Fizz",7,8,"Fizz","Buzz",11,"Fizz",13,14,"FizzBuzz"]
//
// A Sequence renders either as a slice of dynamically typed cells
// (Values) or as a compact JSON array (JSON, AppendJSON).
//
// # Strategies
//
// Several equivalent generation algorithms are registered by name and can
// be selected with Lookup. They exist for benchmarking; Generate is the
// canonical builder.
//
// # Decoding
//
// ParseJSON reads a rendered array back into a Sequence and Verify checks a
// sequence against the canonical output.
package fizzbuzz
