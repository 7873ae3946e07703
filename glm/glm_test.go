package glm

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestMat3TranslateScale(t *testing.T) {
	tr := TranslationMat3[float32](10, 20).Scale(2, 3)

	got := tr.Transform2(Vec2f{1, 1})
	if got != (Vec2f{12, 23}) {
		t.Fatalf("expected (12, 23), got %v", got)
	}
}

func TestMat4MulIdentity(t *testing.T) {
	m := TranslationMat4[float32](1, 2, 3).Mul(ScaleMat4[float32](2, 2, 2))

	if got := IdentityMat4[float32]().Mul(m); got != m {
		t.Fatalf("identity * m != m: %v", got)
	}

	got := m.Transform(Vec4f{1, 1, 1, 1})
	if got != (Vec4f{3, 4, 5, 1}) {
		t.Fatalf("expected (3, 4, 5, 1), got %v", got)
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3f{3, 4, 5}
	view := LookAt(eye, Vec3f{}, Vec3f{0, 1, 0})

	got := view.Transform(eye.Extend(1))
	for idx := range 3 {
		if !near(got[idx], 0) {
			t.Fatalf("eye should map to origin, got %v", got)
		}
	}
}

func TestRectangle(t *testing.T) {
	r := RectangleFromPoints(Vec2f{4, 4}, Vec2f{0, 0})

	if r.Min != (Vec2f{0, 0}) || r.Max != (Vec2f{4, 4}) {
		t.Fatalf("unexpected rectangle %v", r)
	}

	if r.Center() != (Vec2f{2, 2}) {
		t.Fatalf("unexpected center %v", r.Center())
	}

	if !r.Contains(Vec2f{4, 0}) || r.Contains(Vec2f{5, 0}) {
		t.Fatal("contains reports wrong result")
	}

	if got := r.Clamp(Vec2f{-1, 10}); got != (Vec2f{0, 4}) {
		t.Fatalf("unexpected clamp %v", got)
	}
}

func TestNormalizeZero(t *testing.T) {
	if got := (Vec3f{}).Normalize(); got != (Vec3f{}) {
		t.Fatalf("zero vector should stay zero, got %v", got)
	}
}
