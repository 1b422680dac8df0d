package bytecode

import "testing"

func FuzzOperandRoundTrip(f *testing.F) {
	seeds := []uint64{0, 1, 0x7f, 0x80, 0x3fff, 1 << 40, ^uint64(0), ^uint64(0) - 1}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, operand uint64) {
		c := New()
		c.WriteUnary(OpConstant, 1, operand)
		offset := 1
		got := c.ReadOperand(&offset)
		if got != operand {
			t.Fatalf("round trip of %d produced %d", operand, got)
		}
		if offset != c.Len() {
			t.Fatalf("decode of %d consumed %d bytes, chunk has %d", operand, offset-1, c.Len()-1)
		}
	})
}
