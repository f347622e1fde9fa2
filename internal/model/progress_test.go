package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildCourse makes a course with the given subsection count per section.
// IDs are deterministic: section s<i>, subsection s<i>u<j>.
func buildCourse(subsPerSection ...int) *Course {
	course := &Course{}
	course.ID = "course-1"
	for i, n := range subsPerSection {
		sec := Section{Title: "Section"}
		sec.ID = sectionID(i)
		for j := 0; j < n; j++ {
			sub := Subsection{Title: "Lesson", VideoURL: "https://cdn.example/v.mp4"}
			sub.ID = subID(i, j)
			sec.Subsections = append(sec.Subsections, sub)
		}
		course.Sections = append(course.Sections, sec)
	}
	return course
}

func sectionID(i int) string {
	return string(rune('a'+i)) + "-section"
}

func subID(i, j int) string {
	return sectionID(i) + "-sub-" + string(rune('0'+j))
}

func TestMarkCompleteIdempotent(t *testing.T) {
	m := ProgressMap{}
	m.MarkComplete("s1", "u1")
	once := m.Clone()

	m.MarkComplete("s1", "u1")
	assert.Equal(t, once, m)
	assert.True(t, m.IsComplete("s1", "u1"))
	assert.Len(t, m, 1)
}

func TestAbsentKeyIsIncomplete(t *testing.T) {
	m := ProgressMap{}
	assert.False(t, m.IsComplete("s1", "u1"))
}

func TestTotalProgressMonotonic(t *testing.T) {
	course := buildCourse(2, 3, 1)
	m := ProgressMap{}

	prev := 0
	marks := []struct{ sec, sub int }{
		{0, 0}, {1, 2}, {0, 0}, {2, 0}, {1, 0}, {1, 2},
	}
	for _, mk := range marks {
		m.MarkComplete(sectionID(mk.sec), subID(mk.sec, mk.sub))
		pc := m.TotalProgress(course)
		assert.GreaterOrEqual(t, pc.Completed, prev)
		prev = pc.Completed
	}
	assert.Equal(t, ProgressCount{Completed: 4, Total: 6}, m.TotalProgress(course))
}

func TestSectionProgress(t *testing.T) {
	course := buildCourse(3, 2)
	m := ProgressMap{}
	m.MarkComplete(sectionID(0), subID(0, 1))

	assert.Equal(t, ProgressCount{Completed: 1, Total: 3}, m.SectionProgress(&course.Sections[0]))
	assert.Equal(t, ProgressCount{Completed: 0, Total: 2}, m.SectionProgress(&course.Sections[1]))
}

func TestQuizPassBulkCompletesSection(t *testing.T) {
	course := buildCourse(3)
	m := ProgressMap{}
	sec := &course.Sections[0]

	// failing score leaves everything untouched
	assert.False(t, m.ApplyQuizResult(sec, 69))
	assert.Equal(t, ProgressCount{Completed: 0, Total: 3}, m.SectionProgress(sec))

	// passing score marks all three in one write
	assert.True(t, m.ApplyQuizResult(sec, 70))
	assert.Equal(t, ProgressCount{Completed: 3, Total: 3}, m.SectionProgress(sec))
	assert.True(t, m.SectionComplete(sec))
}

func TestResumePointFirstIncompleteInOrder(t *testing.T) {
	course := buildCourse(2, 2)
	m := ProgressMap{}
	m.MarkComplete(sectionID(0), subID(0, 0))
	m.MarkComplete(sectionID(0), subID(0, 1))
	m.MarkComplete(sectionID(1), subID(1, 0))

	rp := m.FindResumePoint(course)
	require.NotNil(t, rp)
	assert.Equal(t, sectionID(1), rp.SectionID)
	assert.Equal(t, subID(1, 1), rp.SubsectionID)
}

func TestResumePointNilWhenComplete(t *testing.T) {
	course := buildCourse(1, 1)
	m := ProgressMap{}
	m.MarkComplete(sectionID(0), subID(0, 0))
	m.MarkComplete(sectionID(1), subID(1, 0))
	assert.Nil(t, m.FindResumePoint(course))
}

func TestResumePointNilOnEmptyCourse(t *testing.T) {
	m := ProgressMap{}
	assert.Nil(t, m.FindResumePoint(&Course{}))
	assert.Nil(t, m.FindResumePoint(buildCourse(0, 0)))
}

// Two sections of two lessons each: one manual completion then a passing
// quiz on section one completes exactly that section, section two untouched.
func TestManualThenQuizPassScenario(t *testing.T) {
	course := buildCourse(2, 2)
	m := ProgressMap{}

	m.MarkComplete(sectionID(0), subID(0, 0))
	assert.Equal(t, ProgressCount{Completed: 1, Total: 4}, m.TotalProgress(course))

	applied := m.ApplyQuizResult(&course.Sections[0], 85)
	assert.True(t, applied)
	assert.Equal(t, ProgressCount{Completed: 2, Total: 4}, m.TotalProgress(course))
	assert.False(t, m.SectionComplete(&course.Sections[1]))
}

func TestCompletionKeyRoundTrip(t *testing.T) {
	key := CompletionKey("sec-1", "sub-9")
	sec, sub, ok := SplitCompletionKey(key)
	require.True(t, ok)
	assert.Equal(t, "sec-1", sec)
	assert.Equal(t, "sub-9", sub)

	_, _, ok = SplitCompletionKey("garbage")
	assert.False(t, ok)
}

func TestPercentage(t *testing.T) {
	course := buildCourse(2, 2)
	m := ProgressMap{}
	assert.Equal(t, 0.0, m.Percentage(course))
	assert.Equal(t, 0.0, m.Percentage(&Course{}))

	m.MarkComplete(sectionID(0), subID(0, 0))
	assert.InDelta(t, 25.0, m.Percentage(course), 0.001)
}
