package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/swipedeck/internal/core"
	"github.com/elektrokombinacija/swipedeck/internal/tick"
)

type fakeScroll struct {
	offset   float64
	velocity float64
	viewport float64
	content  float64
}

func (f *fakeScroll) Offset() float64           { return f.offset }
func (f *fakeScroll) SetOffset(v float64)       { f.offset = v }
func (f *fakeScroll) Velocity() float64         { return f.velocity }
func (f *fakeScroll) StopMotion()               { f.velocity = 0 }
func (f *fakeScroll) ViewportWidth() float64    { return f.viewport }
func (f *fakeScroll) SetContentWidth(w float64) { f.content = w }

type counter struct{ n int }

func (c *counter) Restart()      { c.n++ }
func (c *counter) ForceRefresh() { c.n++ }

func setup(t *testing.T, count int) (*Navigator, *tick.Scheduler, *fakeScroll, []*counter) {
	t.Helper()
	s := tick.NewScheduler()
	sc := &fakeScroll{viewport: 1000}
	var sections []*Section
	var counters []*counter
	for i := 0; i < count; i++ {
		c := &counter{}
		counters = append(counters, c)
		sections = append(sections, &Section{Name: "s", Animators: []core.Restartable{c}})
	}
	opts := DefaultOptions()
	opts.ScreenWidth = 1000
	n := New(s, sc, sections, opts)
	require.NoError(t, n.Err())
	return n, s, sc, counters
}

func settle(s *tick.Scheduler) {
	for i := 0; i < 40; i++ {
		s.Tick(0.05)
	}
}

func TestLayoutAndOffsets(t *testing.T) {
	n, _, sc, _ := setup(t, 3)
	assert.Equal(t, 3000.0, sc.content)
	assert.Equal(t, 1000.0, n.Section(1).X())

	tests := []struct {
		index int
		want  float64
	}{
		{0, 0},
		{1, 0.5},
		{2, 1},
		{3, 0},
		{-1, 0},
	}
	for _, tt := range tests {
		if got := n.Offset(tt.index); got != tt.want {
			t.Errorf("Offset(%d) = %v, want %v", tt.index, got, tt.want)
		}
	}
}

func TestOffsetWithoutScrollableContent(t *testing.T) {
	s := tick.NewScheduler()
	sc := &fakeScroll{viewport: 1000}
	n := New(s, sc, []*Section{{Name: "only"}}, DefaultOptions())
	assert.Equal(t, 0.0, n.Offset(0))
}

func TestGoToSectionImmediate(t *testing.T) {
	n, _, sc, counters := setup(t, 3)
	require.NoError(t, n.GoToSection(2, false))
	assert.Equal(t, n.Offset(2), sc.offset)
	assert.Equal(t, 2, n.Current())
	assert.Equal(t, 1, counters[2].n)

	require.NoError(t, n.GoToSection(2, false))
	assert.Equal(t, n.Offset(2), sc.offset)
	assert.Equal(t, Idle, n.State())
}

func TestGoToSectionInvalid(t *testing.T) {
	n, _, sc, _ := setup(t, 3)
	err := n.GoToSection(3, true)
	assert.ErrorIs(t, err, core.ErrInvalidIndex)
	assert.Equal(t, 0, n.Current())
	assert.Equal(t, 0.0, sc.offset)
	assert.ErrorIs(t, n.GoToSection(-1, false), core.ErrInvalidIndex)
}

func TestAnimatedSettleActivatesAfterGrace(t *testing.T) {
	n, s, sc, counters := setup(t, 3)
	n.NextSection()
	assert.Equal(t, 1, n.Current())
	assert.Equal(t, Settling, n.State())

	for i := 0; i < 3; i++ {
		s.Tick(0.05)
	}
	assert.Greater(t, sc.offset, 0.0)
	assert.Equal(t, 0, counters[1].n)

	settle(s)
	assert.Equal(t, 0.5, sc.offset)
	assert.Equal(t, Idle, n.State())
	assert.Equal(t, 1, counters[1].n)
}

func TestSectionIndexClamped(t *testing.T) {
	n, s, _, _ := setup(t, 3)
	n.PreviousSection()
	assert.Equal(t, 0, n.Current())

	require.NoError(t, n.GoToSection(2, false))
	n.NextSection()
	assert.Equal(t, 2, n.Current())
	settle(s)
	assert.Equal(t, 2, n.Current())
}

func TestSmallDragSnapsBack(t *testing.T) {
	n, s, sc, counters := setup(t, 3)
	before := counters[0].n

	n.DragBegin(500)
	assert.Equal(t, Dragging, n.State())
	sc.offset = 0.01
	n.DragEnd(460)

	assert.Equal(t, 0, n.Current())
	assert.Equal(t, Settling, n.State())
	settle(s)
	assert.Equal(t, 0.0, sc.offset)
	assert.Equal(t, 0, n.Current())
	// snapping back does not re-enter the section
	assert.Equal(t, before, counters[0].n)
}

func TestSwipeLeftPagesForward(t *testing.T) {
	n, s, sc, counters := setup(t, 3)
	n.DragBegin(500)
	n.DragEnd(440)
	assert.Equal(t, 1, n.Current())
	settle(s)
	assert.Equal(t, 0.5, sc.offset)
	assert.Equal(t, 1, counters[1].n)
}

func TestSwipeRightPagesBack(t *testing.T) {
	n, s, _, _ := setup(t, 3)
	require.NoError(t, n.GoToSection(1, false))
	n.DragBegin(400)
	n.DragEnd(500)
	assert.Equal(t, 0, n.Current())
	settle(s)
	assert.Equal(t, 0, n.Current())
}

func TestSwipePastEdgeResnaps(t *testing.T) {
	n, s, sc, counters := setup(t, 3)
	before := counters[0].n
	n.DragBegin(400)
	sc.offset = 0
	n.DragEnd(600)
	assert.Equal(t, 0, n.Current())
	settle(s)
	assert.Equal(t, 0.0, sc.offset)
	assert.Equal(t, before+1, counters[0].n, "edge section replays its intro")
}

func TestZeroSnapSpeedLandsAtOnce(t *testing.T) {
	s := tick.NewScheduler()
	sc := &fakeScroll{viewport: 1000}
	c := &counter{}
	sections := []*Section{{Name: "a"}, {Name: "b", Animators: []core.Restartable{c}}, {Name: "c"}}
	opts := DefaultOptions()
	opts.ScreenWidth = 1000
	opts.SnapSpeed = 0
	n := New(s, sc, sections, opts)
	require.NoError(t, n.GoToSection(1, true))

	s.Tick(0.05)
	assert.Equal(t, 0.5, sc.offset)
	settle(s)
	assert.Equal(t, Idle, n.State())
	assert.Equal(t, 1, c.n)
}

func TestDragBeginCancelsSettle(t *testing.T) {
	n, s, sc, counters := setup(t, 3)
	n.NextSection()
	s.Tick(0.05)
	s.Tick(0.05)
	n.DragBegin(100)
	mid := sc.offset
	s.Tick(0.05)
	assert.Equal(t, mid, sc.offset)
	assert.Equal(t, 0, counters[1].n)
}

func TestIdleLowVelocitySettles(t *testing.T) {
	n, s, sc, _ := setup(t, 3)
	sc.offset = 0.4
	sc.velocity = 10
	s.Tick(0.05)
	assert.Equal(t, Settling, n.State())
	assert.Equal(t, 1, n.Current())
	settle(s)
	assert.Equal(t, 0.5, sc.offset)
}

func TestIdleHighVelocityWaits(t *testing.T) {
	n, s, sc, _ := setup(t, 3)
	sc.offset = 0.4
	sc.velocity = 500
	s.Tick(0.05)
	assert.Equal(t, Idle, n.State())
}

func TestScaleEffect(t *testing.T) {
	n, s, sc, _ := setup(t, 3)
	s.Tick(0.05)
	assert.Equal(t, 1.0, n.SectionScale(0))
	assert.InDelta(t, 0.85, n.SectionScale(1), 1e-12)

	sc.offset = 0.25
	sc.velocity = 1000
	s.Tick(0.05)
	assert.InDelta(t, 1-0.15*0.75, n.SectionScale(0), 1e-9)
	assert.InDelta(t, 1-0.15*0.75, n.SectionScale(1), 1e-9)
	assert.InDelta(t, 0.85, n.SectionScale(2), 1e-9)

	sc.offset = 0.45
	s.Tick(0.05)
	assert.InDelta(t, 1-0.15*0.15, n.SectionScale(1), 1e-9)
}

func TestOnActivateOrder(t *testing.T) {
	n, _, _, _ := setup(t, 3)
	var got []string
	n.OnActivate(func(int) { got = append(got, "a") })
	off := n.OnActivate(func(int) { got = append(got, "b") })
	n.OnActivate(func(int) { got = append(got, "c") })
	require.NoError(t, n.GoToSection(1, false))
	off()
	require.NoError(t, n.GoToSection(2, false))
	assert.Equal(t, []string{"a", "b", "c", "a", "c"}, got)
}

func TestMissingCollaborators(t *testing.T) {
	s := tick.NewScheduler()
	n := New(s, nil, []*Section{{}}, DefaultOptions())
	assert.ErrorIs(t, n.Err(), core.ErrConfiguration)
	assert.NotPanics(t, func() {
		n.DragBegin(0)
		n.DragEnd(100)
		n.NextSection()
	})

	n = New(s, &fakeScroll{viewport: 100}, nil, DefaultOptions())
	assert.ErrorIs(t, n.GoToSection(0, true), core.ErrConfiguration)
}
