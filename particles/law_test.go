package particles

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

var testLaw = LawConstants{
	FillDuration:     3,
	HoldDuration:     2,
	DisperseDuration: 2.5,
	MinSize:          0.01,
	MaxSize:          0.04,
	MinOpacity:       0,
	MaxOpacity:       0.9,
	Drift:            0.05,
	MaxOffset:        6,
}

func assertVecNear(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], 1e-4, "component %d of %v vs %v", i, want, got)
	}
}

func TestEvaluateLaw_StartsAtScreenEdge(t *testing.T) {
	dir := mgl32.Vec3{0.6, 0.8, 0}
	s := EvaluateLaw(dir, 0, mgl32.Vec2{}, testLaw)

	assertVecNear(t, mgl32.Vec3{3.6, 4.8, 0}, s.Position)
	assert.InDelta(t, testLaw.MinSize, s.Size, 1e-6)
	assert.InDelta(t, testLaw.MinOpacity, s.Opacity, 1e-6)
}

func TestEvaluateLaw_HoldStartsAtHome(t *testing.T) {
	dir := mgl32.Vec3{0, 0.6, 0.8}
	s := EvaluateLaw(dir, testLaw.FillDuration, mgl32.Vec2{}, testLaw)

	assertVecNear(t, HomePoint(dir), s.Position)
	assert.InDelta(t, testLaw.MaxSize, s.Size, 1e-6)
	assert.InDelta(t, testLaw.MaxOpacity, s.Opacity, 1e-6)
}

func TestEvaluateLaw_FillIsContinuousIntoHold(t *testing.T) {
	dir := mgl32.Vec3{-0.48, 0.6, 0.64}
	before := EvaluateLaw(dir, testLaw.FillDuration-1e-4, mgl32.Vec2{}, testLaw)
	after := EvaluateLaw(dir, testLaw.FillDuration, mgl32.Vec2{}, testLaw)
	assertVecNear(t, after.Position, before.Position)
}

func TestEvaluateLaw_DriftsDuringHold(t *testing.T) {
	dir := mgl32.Vec3{1, 0, 0}
	s := EvaluateLaw(dir, testLaw.FillDuration+1, mgl32.Vec2{}, testLaw)
	assertVecNear(t, HomePoint(dir).Add(dir.Mul(testLaw.Drift)), s.Position)
}

func TestEvaluateLaw_DisperseEasesOutward(t *testing.T) {
	dir := mgl32.Vec3{0, 0, 1}
	start := HomePoint(dir).Add(dir.Mul(testLaw.Drift * testLaw.HoldDuration))

	mid := testLaw.FillDuration + testLaw.HoldDuration + testLaw.DisperseDuration/2
	s := EvaluateLaw(dir, mid, mgl32.Vec2{}, testLaw)
	assertVecNear(t, start.Add(dir.Mul(testLaw.MaxOffset*0.125)), s.Position)
	assert.InDelta(t, 0.9*0.875, s.Opacity, 1e-5)

	end := EvaluateLaw(dir, testLaw.Period()-1e-4, mgl32.Vec2{}, testLaw)
	assert.InDelta(t, testLaw.MinOpacity, end.Opacity, 1e-3)
	assert.Greater(t, end.Position[2], s.Position[2])
}

func TestEvaluateLaw_IsCyclicAndPure(t *testing.T) {
	dir := mgl32.Vec3{0.36, 0.48, 0.8}
	for _, tt := range []float32{0, 0.7, 3.1, 5.9, 7.2} {
		a := EvaluateLaw(dir, tt, mgl32.Vec2{}, testLaw)
		b := EvaluateLaw(dir, tt, mgl32.Vec2{}, testLaw)
		c := EvaluateLaw(dir, tt+testLaw.Period(), mgl32.Vec2{}, testLaw)
		assert.Equal(t, a, b)
		assertVecNear(t, a.Position, c.Position)
	}
}

func TestEvaluateLaw_PointerShiftsScreenPlaneOnly(t *testing.T) {
	dir := mgl32.Vec3{0.6, 0, 0.8}
	base := EvaluateLaw(dir, 4, mgl32.Vec2{}, testLaw)
	moved := EvaluateLaw(dir, 4, mgl32.Vec2{1, -1}, testLaw)

	shift := PointerParallax * (0.5 + 0.5*Hash(dir))
	assert.InDelta(t, base.Position[0]+shift, moved.Position[0], 1e-5)
	assert.InDelta(t, base.Position[1]-shift, moved.Position[1], 1e-5)
	assert.Equal(t, base.Position[2], moved.Position[2])
}

func TestEvaluateLaw_ZeroPeriodRestsAtHome(t *testing.T) {
	dir := mgl32.Vec3{0, 1, 0}
	s := EvaluateLaw(dir, 12, mgl32.Vec2{}, LawConstants{MaxSize: 1, MaxOpacity: 1})
	assertVecNear(t, HomePoint(dir), s.Position)
	assert.Equal(t, float32(1), s.Size)
}

func TestHash_InUnitInterval(t *testing.T) {
	for _, d := range []mgl32.Vec3{{1, 0, 0}, {0, -1, 0}, {0.3, 0.4, -0.866}, {-0.7, -0.7, 0.14}} {
		h := Hash(d)
		assert.GreaterOrEqual(t, h, float32(0))
		assert.Less(t, h, float32(1))
	}
}

func TestHash_PinnedValues(t *testing.T) {
	cases := []struct {
		dir  mgl32.Vec3
		bits uint32
	}{
		{mgl32.Vec3{1, 0, 0}, 389317330},
		{mgl32.Vec3{0, -1, 0}, 3998546821},
		{mgl32.Vec3{0.6, 0.8, 0}, 1938917809},
		{mgl32.Vec3{0, 0, 0}, 2145236065},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.bits, HashBits(tc.dir), "%v", tc.dir)
		assert.Equal(t, float32(tc.bits>>8)/(1<<24), Hash(tc.dir), "%v", tc.dir)
	}
	assert.Equal(t, float32(1520770)/(1<<24), Hash(mgl32.Vec3{1, 0, 0}))
}

func TestEdgePoint_DegenerateDirection(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{6, 0, 1}, EdgePoint(mgl32.Vec3{0, 0, 1}, 6))
}
