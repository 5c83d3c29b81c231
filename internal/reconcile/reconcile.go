// Package reconcile derives notebook state from raw receipt numbers.
// Receipts are issued from pre-printed books of 50 slips, so every receipt
// number maps to exactly one fixed block; the package partitions a
// collector's used numbers into those blocks and computes the missing and
// pending slips of each.
package reconcile

import (
	"sort"
	"time"
)

// NotebookSize is the number of slips in one pre-printed book.
const NotebookSize = 50

// BlockStart returns the first slip number of the book containing n.
// Books cover fixed ranges 1-50, 51-100, and so on.
func BlockStart(n int32) int32 {
	return (n-1)/NotebookSize*NotebookSize + 1
}

// BlockEnd returns the last slip number of the book containing n.
func BlockEnd(n int32) int32 {
	return BlockStart(n) + NotebookSize - 1
}

// Slip is one used receipt number with its issue date.
type Slip struct {
	Number int32
	Date   time.Time
}

// MissingSlip is a gap inside a book's used range. EstimatedDate is the
// issue date of the nearest earlier used slip, falling back to the nearest
// later one, and nil when the book has no dated slips at all.
type MissingSlip struct {
	Number        int32
	EstimatedDate *time.Time
}

// Block is the derived state of one book. Missing holds the gaps strictly
// between MinUsed and MaxUsed; Pending holds the untouched tail after
// MaxUsed. A block is complete when neither remains.
type Block struct {
	Start    int32
	End      int32
	MinUsed  int32
	MaxUsed  int32
	Missing  []MissingSlip
	Pending  []int32
	Complete bool
}

// BuildBlocks partitions slips into fixed 50-slip blocks and computes each
// block's missing and pending slips. Books with no used slips simply do not
// appear. The input may be unsorted and may contain duplicate numbers; the
// result is ordered by Start ascending.
func BuildBlocks(slips []Slip) []Block {
	if len(slips) == 0 {
		return nil
	}

	sorted := make([]Slip, len(slips))
	copy(sorted, slips)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Number < sorted[j].Number })

	var blocks []Block
	i := 0
	for i < len(sorted) {
		start := BlockStart(sorted[i].Number)
		end := start + NotebookSize - 1

		j := i
		for j < len(sorted) && sorted[j].Number <= end {
			j++
		}
		blocks = append(blocks, buildBlock(start, end, sorted[i:j]))
		i = j
	}
	return blocks
}

// buildBlock computes one block from its used slips, which are sorted by
// number and non-empty.
func buildBlock(start, end int32, used []Slip) Block {
	b := Block{
		Start:   start,
		End:     end,
		MinUsed: used[0].Number,
		MaxUsed: used[len(used)-1].Number,
	}

	// Walk the used slips once, emitting every gap between consecutive
	// distinct numbers. Duplicates collapse because next-prev is then zero.
	for k := 1; k < len(used); k++ {
		for n := used[k-1].Number + 1; n < used[k].Number; n++ {
			b.Missing = append(b.Missing, MissingSlip{
				Number:        n,
				EstimatedDate: EstimateDate(used, n),
			})
		}
	}

	for n := b.MaxUsed + 1; n <= end; n++ {
		b.Pending = append(b.Pending, n)
	}

	b.Complete = len(b.Missing) == 0 && len(b.Pending) == 0
	return b
}

// EstimateDate guesses when a missing slip was torn out: the date of the
// nearest used slip before it, else the nearest after it, else nil. Zero
// dates are skipped so undated imports never pollute the estimate. The
// slips must be sorted by number.
func EstimateDate(sorted []Slip, missing int32) *time.Time {
	idx := sort.Search(len(sorted), func(i int) bool { return sorted[i].Number >= missing })

	for i := idx - 1; i >= 0; i-- {
		if !sorted[i].Date.IsZero() {
			d := sorted[i].Date
			return &d
		}
	}
	for i := idx; i < len(sorted); i++ {
		if !sorted[i].Date.IsZero() {
			d := sorted[i].Date
			return &d
		}
	}
	return nil
}
