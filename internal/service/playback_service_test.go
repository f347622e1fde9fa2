package service

import (
	"context"
	"testing"
	"time"

	"madrasa_backend/internal/model"
	"madrasa_backend/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCourseFinder struct {
	course *model.Course
}

func (f *fakeCourseFinder) FindByID(id string) (*model.Course, error) {
	return f.course, nil
}

type fakeProgressStore struct {
	maps map[string]model.ProgressMap
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{maps: make(map[string]model.ProgressMap)}
}

func (f *fakeProgressStore) Load(_ context.Context, userID uint, courseID string) (model.ProgressMap, error) {
	if m, ok := f.maps[courseID]; ok {
		return m.Clone(), nil
	}
	return model.ProgressMap{}, nil
}

func (f *fakeProgressStore) Save(_ context.Context, userID uint, courseID string, progress model.ProgressMap) error {
	f.maps[courseID] = progress.Clone()
	return nil
}

func playbackCourse() *model.Course {
	course := &model.Course{
		PreviewVideoURL: "https://cdn.example.com/trailer.mp4",
		Sections: []model.Section{
			{
				Subsections: []model.Subsection{
					{SectionID: "sec-1", VideoURL: "https://cdn.example.com/1-1.mp4"},
					{SectionID: "sec-1", VideoURL: "https://cdn.example.com/1-2.mp4"},
				},
			},
		},
	}
	course.ID = "course-1"
	course.Sections[0].ID = "sec-1"
	course.Sections[0].CourseID = "course-1"
	course.Sections[0].Subsections[0].ID = "sub-1"
	course.Sections[0].Subsections[1].ID = "sub-2"
	return course
}

func newPlaybackService(course *model.Course, clk clock.Clock) (*PlaybackService, *fakeProgressStore) {
	store := newFakeProgressStore()
	svc := NewPlaybackService(&fakeCourseFinder{course: course}, store, nil, clk)
	return svc, store
}

func TestOpenSessionStartsAtResumePoint(t *testing.T) {
	course := playbackCourse()
	clk := clock.NewFake(time.Now())
	svc, store := newPlaybackService(course, clk)

	store.maps["course-1"] = model.ProgressMap{"sec-1/sub-1": true}

	view, err := svc.OpenSession(context.Background(), 1, "course-1")
	require.NoError(t, err)
	require.NotNil(t, view.Selection)
	assert.Equal(t, "sub-2", view.Selection.SubsectionID)
	assert.Equal(t, "https://cdn.example.com/1-2.mp4", view.VideoURL)
}

func TestOpenSessionCompleteCourseFallsBackToPreview(t *testing.T) {
	course := playbackCourse()
	clk := clock.NewFake(time.Now())
	svc, store := newPlaybackService(course, clk)

	store.maps["course-1"] = model.ProgressMap{
		"sec-1/sub-1": true,
		"sec-1/sub-2": true,
	}

	view, err := svc.OpenSession(context.Background(), 1, "course-1")
	require.NoError(t, err)
	assert.Nil(t, view.Selection)
	assert.Equal(t, course.PreviewVideoURL, view.VideoURL)
}

func TestResumeNudgeDeliveredOnceAfterDelay(t *testing.T) {
	course := playbackCourse()
	clk := clock.NewFake(time.Now())
	svc, store := newPlaybackService(course, clk)
	store.maps["course-1"] = model.ProgressMap{"sec-1/sub-1": true}

	_, err := svc.OpenSession(context.Background(), 1, "course-1")
	require.NoError(t, err)

	// Before the delay elapses there is nothing to deliver.
	view, err := svc.Poll(1, "course-1")
	require.NoError(t, err)
	assert.Nil(t, view.ResumeNudge)

	clk.Advance(resumeNudgeDelay)

	view, err = svc.Poll(1, "course-1")
	require.NoError(t, err)
	require.NotNil(t, view.ResumeNudge)
	assert.Equal(t, "sec-1", view.ResumeNudge.SectionID)
	assert.Equal(t, "sub-2", view.ResumeNudge.SubsectionID)

	// Delivered exactly once.
	view, err = svc.Poll(1, "course-1")
	require.NoError(t, err)
	assert.Nil(t, view.ResumeNudge)
}

func TestSelectingCancelsPendingNudge(t *testing.T) {
	course := playbackCourse()
	clk := clock.NewFake(time.Now())
	svc, store := newPlaybackService(course, clk)
	store.maps["course-1"] = model.ProgressMap{"sec-1/sub-1": true}

	_, err := svc.OpenSession(context.Background(), 1, "course-1")
	require.NoError(t, err)

	view, err := svc.Select(context.Background(), 1, "course-1", "sec-1", "sub-1")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/1-1.mp4", view.VideoURL)

	clk.Advance(resumeNudgeDelay)

	view, err = svc.Poll(1, "course-1")
	require.NoError(t, err)
	assert.Nil(t, view.ResumeNudge)
}

func TestSelectUnknownSubsection(t *testing.T) {
	course := playbackCourse()
	svc, _ := newPlaybackService(course, clock.NewFake(time.Now()))

	_, err := svc.OpenSession(context.Background(), 1, "course-1")
	require.NoError(t, err)

	_, err = svc.Select(context.Background(), 1, "course-1", "sec-1", "missing")
	assert.ErrorIs(t, err, model.ErrSubsectionNotFound)
}

func TestPreviewClearsSelection(t *testing.T) {
	course := playbackCourse()
	svc, _ := newPlaybackService(course, clock.NewFake(time.Now()))

	_, err := svc.OpenSession(context.Background(), 1, "course-1")
	require.NoError(t, err)

	view, err := svc.Preview(context.Background(), 1, "course-1")
	require.NoError(t, err)
	assert.Nil(t, view.Selection)
	assert.Equal(t, course.PreviewVideoURL, view.VideoURL)
}

func TestCloseSessionDropsState(t *testing.T) {
	course := playbackCourse()
	svc, _ := newPlaybackService(course, clock.NewFake(time.Now()))

	_, err := svc.OpenSession(context.Background(), 1, "course-1")
	require.NoError(t, err)

	svc.CloseSession(1, "course-1")

	_, err = svc.Poll(1, "course-1")
	assert.Error(t, err)
}
