package document

import (
	"fmt"
	"strings"
	"testing"
)

func generateLines(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "line %d with some text\n", i)
	}
	return sb.String()
}

func BenchmarkLoad(b *testing.B) {
	for _, n := range []int{100, 1000, 10000} {
		text := generateLines(n)
		b.Run(fmt.Sprintf("lines=%d", n), func(b *testing.B) {
			s := NewStore(WithParser(lineParser))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := s.Load(text); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkReplace(b *testing.B) {
	for _, n := range []int{100, 1000, 10000} {
		b.Run(fmt.Sprintf("lines=%d", n), func(b *testing.B) {
			s := NewStore(WithParser(lineParser))
			if err := s.Load(generateLines(n)); err != nil {
				b.Fatal(err)
			}
			length := s.Length()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				off := (i * 37) % (length - 1)
				if _, err := s.Replace(off, off+1, "x"); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkBlockAt(b *testing.B) {
	s := NewStore(WithParser(lineParser))
	if err := s.Load(generateLines(10000)); err != nil {
		b.Fatal(err)
	}
	length := s.Length()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, ok := s.BlockAt((i * 251) % length); !ok {
			b.Fatal("BlockAt failed")
		}
	}
}

func BenchmarkUpdateText(b *testing.B) {
	base := generateLines(1000)
	edited := strings.Replace(base, "line 500", "line five hundred", 1)
	s := NewStore(WithParser(lineParser))
	if err := s.Load(base); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		target := edited
		if i%2 == 1 {
			target = base
		}
		if _, err := s.UpdateText(target); err != nil {
			b.Fatal(err)
		}
	}
}
