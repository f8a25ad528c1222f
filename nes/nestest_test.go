package nes

import (
	"bytes"
	"strings"
	"testing"
)

func TestNestestLogFormat(t *testing.T) {
	// an endless JMP $C000 at the automation entry
	var buf bytes.Buffer
	n, err := NestestRun(testROM([]byte{0x4C, 0x00, 0xC0}), &buf, 3)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("wrote %d lines, want 3", n)
	}
	want := []string{
		"1 c000 4c JMP 00 00 00 24 fd 7",
		"2 c000 4c JMP 00 00 00 24 fd 10",
		"3 c000 4c JMP 00 00 00 24 fd 13",
	}
	got := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i+1, got[i], want[i])
		}
	}
}

func TestNestestStopsOnIllegalOpcode(t *testing.T) {
	// LDA #$01 then an unassigned opcode
	var buf bytes.Buffer
	n, err := NestestRun(testROM([]byte{0xA9, 0x01, 0x02}), &buf, 0)
	if err == nil {
		t.Fatal("no error on an unassigned opcode")
	}
	if n != 1 {
		t.Errorf("wrote %d lines before stopping, want 1", n)
	}
}
