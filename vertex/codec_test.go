// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vertex

import (
	"errors"
	"testing"
)

func TestRoundTripAllPositions(t *testing.T) {
	for raw := int32(MinRaw); raw <= MaxRaw; raw++ {
		c := float32(raw) * Scale
		v := Vertex{Position: [3]float32{c, 0, c}, Corner: 2, Texture: 7}
		p, err := Encode(v)
		if err != nil {
			t.Fatalf("Encode(%v) error = %v", v.Position, err)
		}
		d := Decode(p)
		if d.Position != v.Position {
			t.Fatalf("Decode(Encode(%v)).Position = %v", v.Position, d.Position)
		}
	}
}

func TestRoundTripPerAxis(t *testing.T) {
	for raw := int32(MinRaw); raw <= MaxRaw; raw++ {
		c := float32(raw) * Scale
		for axis := 0; axis < 3; axis++ {
			var pos [3]float32
			pos[axis] = c
			p := MustEncode(Vertex{Position: pos})
			if got := Decode(p).Position; got != pos {
				t.Fatalf("axis %d: Decode(Encode(%v)) = %v", axis, pos, got)
			}
		}
	}
}

func TestSignExtension(t *testing.T) {
	tests := []struct {
		name  string
		raw   int32
		field uint32
		want  float32
	}{
		{"minus one", -1, 0x3FF, -0.5},
		{"max", 511, 0x1FF, 255.5},
		{"min", -512, 0x200, -256.0},
		{"zero", 0, 0x000, 0},
		{"one", 1, 0x001, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Pack(tt.raw, tt.raw, tt.raw, 0, 0, [4]AOCode{})
			for axis, shift := range []uint32{XShift, YShift, ZShift} {
				if f := p.Word0 >> shift & CoordMask; f != tt.field {
					t.Errorf("axis %d field = %#x, want %#x", axis, f, tt.field)
				}
			}
			d := Decode(p)
			for axis, got := range d.Position {
				if got != tt.want {
					t.Errorf("axis %d = %v, want %v", axis, got, tt.want)
				}
			}
		})
	}
}

func TestSignExtendIgnoresHighBits(t *testing.T) {
	if got := SignExtend(0xFFFFFC00 | 0x001); got != 1 {
		t.Errorf("SignExtend() = %d, want 1", got)
	}
	if got := SignExtend(0x3FF); got != -1 {
		t.Errorf("SignExtend(0x3FF) = %d, want -1", got)
	}
}

func TestUVTable(t *testing.T) {
	want := [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
	for corner := uint8(0); corner < 4; corner++ {
		p := Pack(0, 0, 0, corner, 0, [4]AOCode{})
		if got := Decode(p).UV; got != want[corner] {
			t.Errorf("corner %d: UV = %v, want %v", corner, got, want[corner])
		}
	}
}

func TestTextureIndexRange(t *testing.T) {
	p := MustEncode(Vertex{Texture: MaxTextureIndex, AO: [4]AOCode{1, 2, 3, 0}})
	d := Decode(p)
	if d.Texture != 1<<24-1 {
		t.Errorf("Texture = %d, want %d", d.Texture, 1<<24-1)
	}
	if d.AO != [4]AOCode{1, 2, 3, 0} {
		t.Errorf("AO = %v, want [1 2 3 0]", d.AO)
	}

	if _, err := Encode(Vertex{Texture: 1 << 24}); !errors.Is(err, ErrTextureIndexOverflow) {
		t.Errorf("Encode(1<<24) error = %v, want ErrTextureIndexOverflow", err)
	}
}

func TestWord1FieldsDisjoint(t *testing.T) {
	ao := [4]AOCode{3, 2, 1, 0}
	base := PackWord1(42, ao)

	// Bit 24 of the index is past the field and is dropped, AO untouched.
	if got := PackWord1(42|1<<24, ao); got != base {
		t.Errorf("PackWord1(index|1<<24) = %#x, want %#x", got, base)
	}

	// Every AO bit flips only AO codes.
	for bit := 0; bit < 8; bit++ {
		w := base ^ 1<<bit
		if got := w >> TexShift; got != 42 {
			t.Errorf("bit %d: texture = %d, want 42", bit, got)
		}
		if DecodeAO(w) == ao {
			t.Errorf("bit %d: AO unchanged", bit)
		}
	}

	// Every index bit flips only the index.
	for bit := TexShift; bit < 32; bit++ {
		w := base ^ 1<<bit
		if got := DecodeAO(w); got != ao {
			t.Errorf("bit %d: AO = %v, want %v", bit, got, ao)
		}
	}

	// An AO code wider than 2 bits is masked, not carried into its neighbor.
	if got := PackWord1(0, [4]AOCode{7, 0, 0, 0}); got != 3 {
		t.Errorf("PackWord1(ao0=7) = %#x, want 0x3", got)
	}
}

func TestWord0FieldsDisjoint(t *testing.T) {
	p := Pack(-1, 0, 0, 0, 0, [4]AOCode{})
	if p.Word0 != 0x3FF {
		t.Errorf("x=-1 word0 = %#x, want 0x3ff", p.Word0)
	}
	p = Pack(0, 0, -1, 3, 0, [4]AOCode{})
	if p.Word0 != 0xFFF00000 {
		t.Errorf("z=-1 corner=3 word0 = %#x, want 0xfff00000", p.Word0)
	}
	if c := Pack(0, 0, 0, 7, 0, [4]AOCode{}).Corner(); c != 3 {
		t.Errorf("corner 7 packs as %d, want 3", c)
	}
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name string
		v    Vertex
		want error
	}{
		{"above range", Vertex{Position: [3]float32{256, 0, 0}}, ErrPositionOutOfRange},
		{"below range", Vertex{Position: [3]float32{0, -256.5, 0}}, ErrPositionOutOfRange},
		{"off grid", Vertex{Position: [3]float32{0, 0, 0.25}}, ErrPositionNotAligned},
		{"corner", Vertex{Corner: 4}, ErrInvalidCorner},
		{"ao", Vertex{AO: [4]AOCode{0, 0, 4, 0}}, ErrInvalidAOCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Encode(tt.v); !errors.Is(err, tt.want) {
				t.Errorf("Encode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodeScenario(t *testing.T) {
	p := Pack(4, -6, 0, 1, 42, [4]AOCode{3, 0, 0, 0})
	d := Decode(p)

	if d.Position != [3]float32{2, -3, 0} {
		t.Errorf("Position = %v, want [2 -3 0]", d.Position)
	}
	if d.UV != [2]float32{1, 1} {
		t.Errorf("UV = %v, want [1 1]", d.UV)
	}
	if d.Texture != 42 {
		t.Errorf("Texture = %d, want 42", d.Texture)
	}
	if w := d.Weights(); w != [4]float32{1, 0.75, 0.75, 0.75} {
		t.Errorf("Weights = %v, want [1 0.75 0.75 0.75]", w)
	}

	enc := MustEncode(Vertex{Position: [3]float32{2, -3, 0}, Corner: 1, Texture: 42, AO: [4]AOCode{3, 0, 0, 0}})
	if enc != p {
		t.Errorf("Encode() = %+v, want %+v", enc, p)
	}
}

func TestDecodeTotal(t *testing.T) {
	words := []uint32{0, 1, 0x7FFFFFFF, 0x80000000, 0xFFFFFFFF, 0xDEADBEEF}
	for _, w0 := range words {
		for _, w1 := range words {
			d := Decode(Packed{w0, w1})
			for _, c := range d.Position {
				if c < MinCoord || c > MaxCoord {
					t.Errorf("Decode(%#x, %#x) position %v out of range", w0, w1, d.Position)
				}
			}
		}
	}
}
