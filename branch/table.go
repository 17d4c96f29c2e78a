package branch

import (
	"fmt"
	"io"
	"iter"
	"slices"
)

const (
	TABLE_SIZE  = 256  // Number of table slots.
	TABLE_MASK  = 0xff // Slot index mask, applied to address bits 9:2.
	RECORD_BITS = 66   // valid[65] taken[64] pc[63:32] target[31:0]
)

// TableIndex returns the slot for an address. Addresses that differ by a
// multiple of 1024 share a slot.
func TableIndex(addr uint32) int {
	return int((addr >> 2) & TABLE_MASK)
}

// Record is a single table slot.
type Record struct {
	Valid  bool
	Taken  bool
	PC     uint32
	Target uint32
}

// Hi returns record bits 65:64, the valid and taken flags.
func (rec Record) Hi() uint8 {
	var hi uint8
	if rec.Valid {
		hi |= 0b10
	}
	if rec.Taken {
		hi |= 0b01
	}
	return hi
}

// Lo returns record bits 63:0, the pc and target.
func (rec Record) Lo() uint64 {
	return (uint64(rec.PC) << 32) | uint64(rec.Target)
}

// String returns the record as 18 uppercase hex digits.
func (rec Record) String() string {
	return fmt.Sprintf("%02X%016X", rec.Hi(), rec.Lo())
}

// Table is the branch ground-truth lookup table.
type Table struct {
	Slot       [TABLE_SIZE]Record
	collisions int
}

// Put stores a fact in its slot, replacing whatever was there.
func (table *Table) Put(fact Fact) {
	slot := &table.Slot[TableIndex(fact.Address)]
	if slot.Valid {
		table.collisions++
	}
	*slot = Record{
		Valid:  true,
		Taken:  fact.Taken,
		PC:     fact.Address,
		Target: fact.Target,
	}
}

// Get returns the fact stored for addr's slot, if it was stored for addr.
func (table *Table) Get(addr uint32) (fact Fact, ok bool) {
	rec := table.Slot[TableIndex(addr)]
	if !rec.Valid || rec.PC != addr {
		return
	}

	fact = Fact{Address: rec.PC, Taken: rec.Taken, Target: rec.Target}
	ok = true

	return
}

// Len returns the number of occupied slots.
func (table *Table) Len() (count int) {
	for _, rec := range table.Slot {
		if rec.Valid {
			count++
		}
	}

	return
}

// Collisions returns how many stored facts were overwritten by a later
// fact for the same slot.
func (table *Table) Collisions() int {
	return table.collisions
}

// WriteTo writes every slot, 0 through TABLE_SIZE-1, as one line of 18
// uppercase hex digits. Empty slots are all zero.
func (table *Table) WriteTo(w io.Writer) (n int64, err error) {
	for _, rec := range table.Slot {
		var c int
		c, err = fmt.Fprintf(w, "%v\n", rec)
		n += int64(c)
		if err != nil {
			return
		}
	}

	return
}

// Pack builds a table from a sequence of facts. Later facts win slot
// collisions.
func Pack(facts iter.Seq[Fact]) (table *Table) {
	table = &Table{}
	for fact := range facts {
		table.Put(fact)
	}

	return
}

// PackSlice builds a table from a slice of facts.
func PackSlice(facts []Fact) (table *Table) {
	return Pack(slices.Values(facts))
}
