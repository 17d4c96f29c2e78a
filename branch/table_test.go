package branch

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableIndex(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		Addr  uint32
		Index int
	}{
		{0x000, 0},
		{0x004, 1},
		{0x003, 0},
		{0x3fc, 255},
		{0x400, 0},
		{0x404, 1},
		{0xfffffffc, 255},
	}

	for _, testcase := range table {
		assert.Equal(testcase.Index, TableIndex(testcase.Addr), "%#x", testcase.Addr)
	}
}

func TestRecord_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("000000000000000000", Record{}.String())
	assert.Equal("030000001000000008", Record{Valid: true, Taken: true, PC: 0x10, Target: 0x8}.String())
	assert.Equal("02FFFFFFFC00000000", Record{Valid: true, PC: 0xfffffffc}.String())
	assert.Equal(18, len(Record{}.String()))
}

func TestPack(t *testing.T) {
	assert := assert.New(t)

	facts := []Fact{
		{Address: 0x10, Taken: true, Target: 0x08},
		{Address: 0x40, Taken: false, Target: 0x100},
	}

	table := PackSlice(facts)
	assert.Equal(2, table.Len())
	assert.Equal(0, table.Collisions())

	assert.Equal(Record{Valid: true, Taken: true, PC: 0x10, Target: 0x08}, table.Slot[4])
	assert.Equal(Record{Valid: true, Taken: false, PC: 0x40, Target: 0x100}, table.Slot[16])

	fact, ok := table.Get(0x40)
	assert.True(ok)
	assert.Equal(facts[1], fact)

	_, ok = table.Get(0x44)
	assert.False(ok)
	_, ok = table.Get(0x440) // Same slot, different pc.
	assert.False(ok)
}

func TestPack_Collision(t *testing.T) {
	assert := assert.New(t)

	first := Fact{Address: 0x40, Taken: true, Target: 0x100}
	second := Fact{Address: 0x40 + 1024, Taken: false, Target: 0x200}
	third := Fact{Address: 0x40 + 4096, Taken: true, Target: 0x300}

	table := PackSlice([]Fact{first, second})
	assert.Equal(1, table.Len())
	assert.Equal(1, table.Collisions())
	assert.Equal(Record{Valid: true, PC: second.Address, Target: second.Target}, table.Slot[TableIndex(first.Address)])

	table.Put(third)
	assert.Equal(2, table.Collisions())
	fact, ok := table.Get(third.Address)
	assert.True(ok)
	assert.Equal(third, fact)

	// Order decides the winner.
	table = PackSlice([]Fact{second, first})
	fact, ok = table.Get(first.Address)
	assert.True(ok)
	assert.Equal(first, fact)
}

func TestPack_Idempotent(t *testing.T) {
	assert := assert.New(t)

	facts := []Fact{
		{Address: 0x10, Taken: true, Target: 0x08},
		{Address: 0x410, Taken: false, Target: 0x08},
		{Address: 0x3fc, Taken: true, Target: 0},
	}

	var out [2]bytes.Buffer
	for n := range out {
		_, err := PackSlice(facts).WriteTo(&out[n])
		assert.NoError(err)
	}

	assert.Equal(out[0].Bytes(), out[1].Bytes())
	assert.Equal(*PackSlice(facts), *PackSlice(facts))
}

func TestTable_WriteTo(t *testing.T) {
	assert := assert.New(t)

	table := PackSlice([]Fact{
		{Address: 0x10, Taken: true, Target: 0x08},
		{Address: 0x3fc, Taken: false, Target: 0x400},
	})

	buff := &bytes.Buffer{}
	n, err := table.WriteTo(buff)
	assert.NoError(err)
	assert.Equal(int64(TABLE_SIZE*19), n)

	lines := strings.Split(strings.TrimSuffix(buff.String(), "\n"), "\n")
	assert.Equal(TABLE_SIZE, len(lines))
	for index, line := range lines {
		assert.Equal(18, len(line))
		switch index {
		case 4:
			assert.Equal("030000001000000008", line)
		case 255:
			assert.Equal("02000003FC00000400", line)
		default:
			assert.Equal("000000000000000000", line)
		}
	}
}

func TestTable_Empty(t *testing.T) {
	assert := assert.New(t)

	table := PackSlice(nil)
	assert.Equal(0, table.Len())

	buff := &bytes.Buffer{}
	_, err := table.WriteTo(buff)
	assert.NoError(err)
	assert.Equal(strings.Repeat("000000000000000000\n", TABLE_SIZE), buff.String())
}
