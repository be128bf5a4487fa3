// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hwy

import "testing"

func TestDispatchLevelString(t *testing.T) {
	tests := []struct {
		level DispatchLevel
		want  string
	}{
		{DispatchScalar, "scalar"},
		{DispatchSSE2, "sse2"},
		{DispatchAVX2, "avx2"},
		{DispatchAVX512, "avx512"},
		{DispatchNEON, "neon"},
		{DispatchLevel(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("DispatchLevel(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestCurrentWidth(t *testing.T) {
	switch w := CurrentWidth(); w {
	case 16, 32, 64:
	default:
		t.Errorf("CurrentWidth() = %d, want 16, 32 or 64", w)
	}
	if CurrentName() == "" {
		t.Error("CurrentName() is empty")
	}
	if got := MaxLanes[float64](); got != CurrentWidth()/8 {
		t.Errorf("MaxLanes[float64]() = %d, want %d", got, CurrentWidth()/8)
	}
}

func TestSupportsWidth(t *testing.T) {
	if !SupportsWidth(8) || !SupportsWidth(16) {
		t.Error("64 and 128-bit widths must always be supported")
	}
	for _, w := range []int{0, 4, 24, 128} {
		if SupportsWidth(w) {
			t.Errorf("SupportsWidth(%d) = true, want false", w)
		}
	}
	if got, want := SupportsWidth(64), CurrentWidth() >= 64; got != want {
		t.Errorf("SupportsWidth(64) = %v, want %v at %s", got, want, CurrentName())
	}
	if got, want := SupportsWidth(32), CurrentWidth() >= 32; got != want {
		t.Errorf("SupportsWidth(32) = %v, want %v at %s", got, want, CurrentName())
	}
}

func TestNoSimdEnv(t *testing.T) {
	tests := []struct {
		val  string
		want bool
	}{
		{"", false},
		{"1", true},
		{"true", true},
		{"false", false},
		{"0", false},
		{"yes", true},
	}
	for _, tt := range tests {
		t.Setenv("HWY_NO_SIMD", tt.val)
		if got := NoSimdEnv(); got != tt.want {
			t.Errorf("NoSimdEnv() with %q = %v, want %v", tt.val, got, tt.want)
		}
	}
}

func TestTags(t *testing.T) {
	tests := []struct {
		tag   Tag
		name  string
		width int
		lanes int
	}{
		{FixedTag64[float64]{}, "64bit", 8, 1},
		{FixedTag128[float64]{}, "128bit", 16, 2},
		{FixedTag256[float64]{}, "256bit", 32, 4},
		{FixedTag512[float64]{}, "512bit", 64, 8},
		{FixedTag256[float32]{}, "256bit", 32, 8},
		{ScalableTag[float64]{}, CurrentName(), CurrentWidth(), CurrentWidth() / 8},
	}
	for _, tt := range tests {
		if got := tt.tag.Name(); got != tt.name {
			t.Errorf("Name() = %q, want %q", got, tt.name)
		}
		if got := tt.tag.Width(); got != tt.width {
			t.Errorf("%s.Width() = %d, want %d", tt.name, got, tt.width)
		}
		if got := tt.tag.MaxLanes(); got != tt.lanes {
			t.Errorf("%s.MaxLanes() = %d, want %d", tt.name, got, tt.lanes)
		}
	}
}
