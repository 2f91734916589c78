package export

import (
	"bufio"
	"fmt"
	"io"
)

// Text writes x as a commented header followed by one sample per line.
func Text(w io.Writer, x []float32, sampleRate int) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# Audio samples\n")
	fmt.Fprintf(bw, "# Sample rate: %d Hz\n", sampleRate)
	fmt.Fprintf(bw, "# Sample count: %d\n", len(x))
	fmt.Fprintf(bw, "# Duration: %.3f seconds\n\n", float64(len(x))/float64(sampleRate))
	for _, x := range x {
		fmt.Fprintf(bw, "%.8f\n", x)
	}
	return bw.Flush()
}
