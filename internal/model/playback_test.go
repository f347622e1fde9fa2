package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playbackCourse() *Course {
	course := buildCourse(2, 1)
	course.PreviewVideoURL = "https://cdn.example/preview.mp4"
	course.Sections[0].Subsections[0].VideoURL = "https://cdn.example/a0.mp4"
	course.Sections[0].Subsections[1].VideoURL = "https://cdn.example/a1.mp4"
	course.Sections[1].Subsections[0].VideoURL = "https://cdn.example/b0.mp4"
	return course
}

func TestSelectSubsectionBindsVideoAndNotifies(t *testing.T) {
	course := playbackCourse()
	s := NewPlaybackSession(course)

	var seen []Selection
	s.OnSelect(func(sel Selection) { seen = append(seen, sel) })

	require.NoError(t, s.SelectSubsection(sectionID(0), subID(0, 1)))
	assert.Equal(t, "https://cdn.example/a1.mp4", s.VideoURL())
	require.Len(t, seen, 1)
	assert.Equal(t, Selection{SectionID: sectionID(0), SubsectionID: subID(0, 1)}, seen[0])

	require.NoError(t, s.SelectSubsection(sectionID(1), subID(1, 0)))
	assert.Len(t, seen, 2)
}

func TestSelectUnknownSubsection(t *testing.T) {
	s := NewPlaybackSession(playbackCourse())
	assert.ErrorIs(t, s.SelectSubsection("nope", "nope"), ErrSubsectionNotFound)
	assert.Empty(t, s.VideoURL())
}

func TestPreviewPlayClearsSelection(t *testing.T) {
	s := NewPlaybackSession(playbackCourse())
	require.NoError(t, s.SelectSubsection(sectionID(0), subID(0, 0)))
	require.NotNil(t, s.Selection())

	s.PreviewPlay()
	assert.Equal(t, "https://cdn.example/preview.mp4", s.VideoURL())
	assert.Nil(t, s.Selection())
}

func TestMarkCurrentCompleteOnlyWithSelection(t *testing.T) {
	s := NewPlaybackSession(playbackCourse())
	m := ProgressMap{}

	// nothing selected yet: no-op
	assert.False(t, s.MarkCurrentComplete(m))
	assert.Empty(t, m)

	require.NoError(t, s.SelectSubsection(sectionID(0), subID(0, 0)))
	assert.True(t, s.MarkCurrentComplete(m))
	assert.True(t, m.IsComplete(sectionID(0), subID(0, 0)))

	// preview mode is a no-op again
	s.PreviewPlay()
	assert.False(t, s.MarkCurrentComplete(m))
	assert.Len(t, m, 1)
}
