package conv_test

import (
	"fmt"

	"github.com/cwbudde/algo-boltz/dsp/conv"
)

func ExampleDirect() {
	signal := []float64{1, 2, 3, 4, 5, 4, 3, 2, 1}
	kernel := []float64{0.25, 0.5, 0.25}

	result, _ := conv.Direct(signal, kernel)

	fmt.Printf("Output length: %d\n", len(result))
	fmt.Printf("First few values: %.2f, %.2f, %.2f\n", result[0], result[1], result[2])

	// Output:
	// Output length: 11
	// First few values: 0.25, 1.00, 2.00
}

func ExampleClipped() {
	// A constant signal smoothed with a unit-mass kernel loses mass only at
	// the edges, where part of the kernel falls outside the domain.
	signal := []float64{1, 1, 1, 1, 1}
	kernel := []float64{0.25, 0.5, 0.25}

	result, _ := conv.Clipped(signal, kernel, 1)
	fmt.Println(result)

	// Output:
	// [0.75 1 1 1 0.75]
}
