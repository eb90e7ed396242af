package fizzbuzz

import (
	"fmt"
	"sort"
)

// Strategy builds the sequence for 1..n. Every registered strategy
// produces the same output as Generate.
type Strategy func(n int) Sequence

// DefaultStrategy names the strategy used by Generate.
const DefaultStrategy = "lcm"

var strategies = map[string]Strategy{
	"naive":        generateNaive,
	"lcm":          generateLCM,
	"modulo":       generateModulo,
	"preallocated": generatePreallocated,
	"unrolled":     generateUnrolled,
	"recursive":    generateRecursive,
}

// Lookup returns the strategy registered under name. An empty name selects
// DefaultStrategy.
func Lookup(name string) (Strategy, error) {
	if name == "" {
		name = DefaultStrategy
	}
	s, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return s, nil
}

// StrategyNames returns the registered strategy names in sorted order.
func StrategyNames() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// generateNaive concatenates Fizz and Buzz the way the puzzle is usually
// stated, then maps the label back to a category.
func generateNaive(n int) Sequence {
	var seq Sequence
	for i := 1; i <= n; i++ {
		label := ""
		if i%3 == 0 {
			label += "Fizz"
		}
		if i%5 == 0 {
			label += "Buzz"
		}
		switch label {
		case "":
			seq = append(seq, Number(i))
		case "Fizz":
			seq = append(seq, Fizz)
		case "Buzz":
			seq = append(seq, Buzz)
		default:
			seq = append(seq, FizzBuzz)
		}
	}
	if seq == nil {
		seq = Sequence{}
	}
	return seq
}

func generateLCM(n int) Sequence {
	seq := make(Sequence, 0, max(n, 0))
	for i := 1; i <= n; i++ {
		seq = append(seq, Classify(i))
	}
	return seq
}

func generateModulo(n int) Sequence {
	seq := make(Sequence, 0, max(n, 0))
	for i := 1; i <= n; i++ {
		if i%3 == 0 {
			if i%5 == 0 {
				seq = append(seq, FizzBuzz)
			} else {
				seq = append(seq, Fizz)
			}
		} else if i%5 == 0 {
			seq = append(seq, Buzz)
		} else {
			seq = append(seq, Number(i))
		}
	}
	return seq
}

func generatePreallocated(n int) Sequence {
	seq := make(Sequence, max(n, 0))
	for i := range seq {
		num := i + 1
		if num%3 == 0 {
			if num%5 == 0 {
				seq[i] = FizzBuzz
			} else {
				seq[i] = Fizz
			}
		} else if num%5 == 0 {
			seq[i] = Buzz
		} else {
			seq[i] = Number(num)
		}
	}
	return seq
}

// generateUnrolled writes whole 15-value periods at once and classifies the
// remainder individually.
func generateUnrolled(n int) Sequence {
	seq := make(Sequence, max(n, 0))
	i := 1
	for ; i+14 <= n; i += 15 {
		b := seq[i-1 : i+14]
		b[0] = Number(i)
		b[1] = Number(i + 1)
		b[2] = Fizz
		b[3] = Number(i + 3)
		b[4] = Buzz
		b[5] = Fizz
		b[6] = Number(i + 6)
		b[7] = Number(i + 7)
		b[8] = Fizz
		b[9] = Buzz
		b[10] = Number(i + 10)
		b[11] = Fizz
		b[12] = Number(i + 12)
		b[13] = Number(i + 13)
		b[14] = FizzBuzz
	}
	for ; i <= n; i++ {
		seq[i-1] = Classify(i)
	}
	return seq
}

// thunk is one deferred step of a trampolined computation. A nil thunk
// ends the loop.
type thunk func() thunk

func trampoline(t thunk) {
	for t != nil {
		t = t()
	}
}

// generateRecursive expresses the loop as tail recursion and bounces it
// through a trampoline so the stack stays flat.
func generateRecursive(n int) Sequence {
	seq := make(Sequence, max(n, 0))
	var step func(current int) thunk
	step = func(current int) thunk {
		if current > n {
			return nil
		}
		seq[current-1] = Classify(current)
		return func() thunk { return step(current + 1) }
	}
	trampoline(step(1))
	return seq
}
