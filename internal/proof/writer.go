package proof

import (
	"bufio"
	"fmt"
	"io"
)

// Write serializes doc in the text format of spec §6:
//
//	v N
//	1: l1 l2 ... lk
//	...
//	N: ...
//	a b c
//	...
//
// where lines 2..N+1 give each referenced clause's literals in DIMACS form
// (no trailing 0) and the remaining lines each mean "clause c is obtained by
// resolving clause a with clause b", ending with the resolution whose result
// is the empty clause.
func Write(w io.Writer, doc *Document) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "v %d\n", len(doc.Clauses)); err != nil {
		return err
	}
	for i, lits := range doc.Clauses {
		if _, err := fmt.Fprintf(bw, "%d:", i+1); err != nil {
			return err
		}
		for _, l := range lits {
			if _, err := fmt.Fprintf(bw, " %d", l); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
	}
	for _, r := range doc.Resolutions {
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", r.ParentA+1, r.ParentB+1, r.Result+1); err != nil {
			return err
		}
	}

	return bw.Flush()
}
