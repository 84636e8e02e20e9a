package sieve

import (
	"fmt"
	"io"
	"sync"
)

// status accumulates the processed share of the sieved interval and turns it
// into a percentage. In parallel mode every worker reports into the parent's
// status, so all accesses are serialized; the sieve never fails because of
// status output.
type status struct {
	mu        sync.Mutex
	total     uint64
	processed uint64
	percent   float64
	print     bool
	out       io.Writer
}

func (st *status) reset(total uint64, print bool, out io.Writer) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.total = total
	st.processed = 0
	st.percent = -1
	st.print = print
	st.out = out
}

// add records width processed numbers and prints the percentage when its
// integer value increases.
func (st *status) add(width uint64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.processed += width
	old := int(st.percent)
	st.percent = float64(st.processed) / float64(st.total) * 100.0
	if st.percent > 100.0 {
		st.percent = 100.0
	}
	if st.print {
		if current := int(st.percent); current > old {
			fmt.Fprintf(st.out, "\r%d%%", current)
		}
	}
}

// finish forces the status to 100 percent.
func (st *status) finish() {
	st.mu.Lock()
	st.processed = st.total
	st.mu.Unlock()
	st.add(0)
}

func (st *status) value() float64 {
	st.mu.Lock()
	defer st.mu.Unlock()

	return st.percent
}
