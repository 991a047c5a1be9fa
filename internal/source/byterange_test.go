package source

import "testing"

func TestByteRangeCover(t *testing.T) {
	cases := []struct {
		name string
		a, b ByteRange
		want ByteRange
	}{
		{"disjoint", Range(10, 20), Range(30, 40), Range(10, 40)},
		{"overlapping", Range(10, 25), Range(20, 40), Range(10, 40)},
		{"b empty", Range(10, 20), ByteRange{}, Range(10, 20)},
		{"a empty", ByteRange{}, Range(10, 20), Range(10, 20)},
		{"both empty", ByteRange{}, ByteRange{}, ByteRange{}},
		{"contained", Range(10, 40), Range(15, 20), Range(10, 40)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.a.Cover(c.b); got != c.want {
				t.Fatalf("Cover() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestByteRangeValid(t *testing.T) {
	if !Range(0, 10).Valid(10) {
		t.Fatal("expected [0:10) to be valid for file_len 10")
	}
	if Range(0, 11).Valid(10) {
		t.Fatal("expected [0:11) to be invalid for file_len 10")
	}
	if Range(5, 3).Valid(10) {
		t.Fatal("expected start > end to be invalid")
	}
}

func TestByteRangeContains(t *testing.T) {
	if !Range(0, 100).Contains(Range(10, 20)) {
		t.Fatal("expected outer range to contain inner range")
	}
	if Range(10, 20).Contains(Range(0, 100)) {
		t.Fatal("expected inner range not to contain outer range")
	}
}

func TestBufferSlice(t *testing.T) {
	buf := NewBuffer([]byte("hello world"))
	if got := string(buf.Slice(Range(0, 5))); got != "hello" {
		t.Fatalf("Slice() = %q, want %q", got, "hello")
	}
	if got := buf.Slice(Range(5, 100)); got != nil {
		t.Fatalf("Slice() out of bounds = %v, want nil", got)
	}
}

func TestBufferLen(t *testing.T) {
	buf := NewBuffer([]byte("abc"))
	n, err := buf.Len()
	if err != nil {
		t.Fatalf("Len() error: %v", err)
	}
	if n != 3 {
		t.Fatalf("Len() = %d, want 3", n)
	}
}
