// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package xrmath

import (
	"math"
	"testing"
)

func TestPose_TransformIdentity(t *testing.T) {
	p := Pose{
		Orientation: QuatFromAxisAngle(V3(0, 1, 0), 0.4),
		Position:    V3(1, 2, 3),
	}
	if got := p.Transform(PoseIdentity()); !got.Approx(p, 1e-6) {
		t.Errorf("p*identity = %v, want %v", got, p)
	}
	if got := PoseIdentity().Transform(p); !got.Approx(p, 1e-6) {
		t.Errorf("identity*p = %v, want %v", got, p)
	}
}

func TestPose_TransformTranslations(t *testing.T) {
	a := Pose{Orientation: QuatIdentity(), Position: V3(1, 0, 0)}
	b := Pose{Orientation: QuatIdentity(), Position: V3(0, 2, 0)}
	got := a.Transform(b)
	if !got.Position.Approx(V3(1, 2, 0), 1e-6) {
		t.Errorf("translation compose = %v, want (1,2,0)", got.Position)
	}
}

func TestPose_TransformRotatesChildPosition(t *testing.T) {
	// Parent rotates 90 degrees about Z, so the child's +X offset maps to +Y.
	a := Pose{
		Orientation: QuatFromAxisAngle(V3(0, 0, 1), float32(math.Pi/2)),
		Position:    V3(0, 0, 0),
	}
	b := Pose{Orientation: QuatIdentity(), Position: V3(1, 0, 0)}
	got := a.Transform(b)
	if !got.Position.Approx(V3(0, 1, 0), 1e-5) {
		t.Errorf("rotated child position = %v, want (0,1,0)", got.Position)
	}
}

func TestPose_InvertRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		p    Pose
	}{
		{"identity", PoseIdentity()},
		{"translation only", Pose{Orientation: QuatIdentity(), Position: V3(1, -2, 3)}},
		{"rotation only", Pose{Orientation: QuatFromAxisAngle(V3(1, 1, 0), 0.9), Position: V3(0, 0, 0)}},
		{"full", Pose{Orientation: QuatFromAxisAngle(V3(0, 1, 0), -1.3), Position: V3(4, 5, -6)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.p.Transform(tt.p.Invert())
			if !got.Approx(PoseIdentity(), 1e-5) {
				t.Errorf("p * p^-1 = %v, want identity", got)
			}
			got = tt.p.Invert().Transform(tt.p)
			if !got.Approx(PoseIdentity(), 1e-5) {
				t.Errorf("p^-1 * p = %v, want identity", got)
			}
		})
	}
}

func TestPose_Valid(t *testing.T) {
	nan := float32(math.NaN())

	if !PoseIdentity().Valid() {
		t.Error("identity pose should be valid")
	}
	if (Pose{Orientation: Quat{X: 2, W: 1}, Position: V3(0, 0, 0)}).Valid() {
		t.Error("denormalized orientation should be invalid")
	}
	if (Pose{Orientation: QuatIdentity(), Position: V3(nan, 0, 0)}).Valid() {
		t.Error("NaN position should be invalid")
	}
}

func TestLocate(t *testing.T) {
	view := Pose{Orientation: QuatIdentity(), Position: V3(0.032, 0, 0)}
	head := Pose{Orientation: QuatIdentity(), Position: V3(0, 1.7, 0)}

	t.Run("identity base passes through", func(t *testing.T) {
		got := Locate(view, head, PoseIdentity())
		want := head.Transform(view)
		if !got.Approx(want, 1e-6) {
			t.Errorf("Locate = %v, want %v", got, want)
		}
	})

	t.Run("base offset is subtracted", func(t *testing.T) {
		base := Pose{Orientation: QuatIdentity(), Position: V3(0, 1, 0)}
		got := Locate(view, head, base)
		if !got.Position.Approx(V3(0.032, 0.7, 0), 1e-5) {
			t.Errorf("position = %v, want (0.032, 0.7, 0)", got.Position)
		}
	})
}

func TestFov_Valid(t *testing.T) {
	ok := Fov{AngleLeft: -0.8, AngleRight: 0.8, AngleUp: 0.7, AngleDown: -0.7}
	if !ok.Valid() {
		t.Error("ordinary fov should be valid")
	}
	flipped := Fov{AngleLeft: 0.8, AngleRight: -0.8, AngleUp: 0.7, AngleDown: -0.7}
	if flipped.Valid() {
		t.Error("left >= right should be invalid")
	}
	nan := Fov{AngleLeft: float32(math.NaN()), AngleRight: 0.8, AngleUp: 0.7, AngleDown: -0.7}
	if nan.Valid() {
		t.Error("NaN angle should be invalid")
	}
}
