package rope

import (
	"testing"
)

// FuzzInsertDelete applies a sequence of insertions and cuts, decoded from the
// fuzzer's input, to a rope and to a plain byte slice. After every operation
// the updated rope and the removed text have to be valid red-black trees with
// the expected content.
//
// Input is consumed in records: an opcode byte, a position byte and a length
// byte, followed by length bytes of text for insertions.
func FuzzInsertDelete(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0, 0, 5, 'h', 'e', 'l', 'l', 'o'})
	f.Add([]byte{0, 0, 5, 'h', 'e', 'l', 'l', 'o', 1, 1, 3})
	f.Add([]byte{0, 0, 3, 'a', '\n', 'b', 0, 1, 4, 'x', 'y', 'z', '\n', 1, 2, 4, 0, 9, 2, 'q', 'r'})
	f.Add([]byte{0, 0, 9, '1', '2', '3', '4', '5', '6', '7', '8', '9', 1, 0, 255})

	f.Fuzz(func(t *testing.T, data []byte) {
		r := New(Config{AppendBlockSize: 8})
		var ref []byte
		for len(data) >= 3 {
			op, at, n := data[0]%2, int(data[1]), int(data[2])
			data = data[3:]
			pos := at % (len(ref) + 1)
			var next *Rope
			var err error
			if op == 0 {
				n = min(n, len(data))
				text := data[:n]
				data = data[n:]
				if next, err = r.InsertAt(uint64(pos), text); err != nil {
					t.Fatalf("insert %d bytes at %d: %v", n, pos, err)
				}
				ref = append(ref[:pos:pos], append(append([]byte(nil), text...), ref[pos:]...)...)
			} else {
				n = min(n, len(ref)-pos)
				var removed *Rope
				if next, removed, err = r.Cut(uint64(pos), uint64(n)); err != nil {
					t.Fatalf("cut [%d:+%d]: %v", pos, n, err)
				}
				if err := removed.Check(); err != nil {
					t.Fatalf("removed text of cut [%d:+%d]: %v", pos, n, err)
				}
				if got, want := removed.String(), string(ref[pos:pos+n]); got != want {
					t.Fatalf("removed text of cut [%d:+%d] = %q, want %q", pos, n, got, want)
				}
				removed.Release()
				ref = append(ref[:pos:pos], ref[pos+n:]...)
			}
			if err := next.Check(); err != nil {
				t.Fatalf("after edit at %d: %v", pos, err)
			}
			if got := next.String(); got != string(ref) {
				t.Fatalf("content mismatch: got %q, want %q", got, ref)
			}
			r.Release()
			r = next
		}
		r.Release()
	})
}
