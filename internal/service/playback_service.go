package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"madrasa_backend/internal/model"
	"madrasa_backend/internal/util"
	"madrasa_backend/pkg/clock"
)

// resumeNudgeDelay is how long a freshly opened session waits before
// surfacing the resume hint, so the hint lands after the page settles.
const resumeNudgeDelay = 2 * time.Second

// CourseFinder is the slice of the course repository playback needs.
type CourseFinder interface {
	FindByID(id string) (*model.Course, error)
}

// ProgressStore is the slice of the progress repository playback needs.
type ProgressStore interface {
	Load(ctx context.Context, userID uint, courseID string) (model.ProgressMap, error)
	Save(ctx context.Context, userID uint, courseID string, progress model.ProgressMap) error
}

// PlaybackService keeps one in-memory playback session per user and course.
// Sessions are ephemeral: a restart loses them, the progress store does not.
type PlaybackService struct {
	Courses    CourseFinder
	Progress   ProgressStore
	Curriculum *CurriculumService
	Clock      clock.Clock

	mu       sync.Mutex
	sessions map[string]*playbackState
}

type playbackState struct {
	session   *model.PlaybackSession
	course    *model.Course
	nudge     clock.Task
	nudgeSent bool
	resumeAt  *model.ResumePoint
}

func NewPlaybackService(
	courses CourseFinder,
	progress ProgressStore,
	curriculum *CurriculumService,
	clk clock.Clock,
) *PlaybackService {
	return &PlaybackService{
		Courses:    courses,
		Progress:   progress,
		Curriculum: curriculum,
		Clock:      clk,
		sessions:   make(map[string]*playbackState),
	}
}

func sessionKey(userID uint, courseID string) string {
	return fmt.Sprintf("%d/%s", userID, courseID)
}

// PlayerView is the player state returned to the client.
type PlayerView struct {
	VideoURL    string             `json:"videoUrl"`
	Selection   *model.Selection   `json:"selection,omitempty"`
	ResumeNudge *model.ResumePoint `json:"resumeNudge,omitempty"`
}

// OpenSession builds (or rebuilds) the playback session for a course. The
// player starts on the first incomplete lesson, or in preview mode when the
// course is already complete. A resume nudge is scheduled and delivered on
// a later poll once the delay elapses.
func (s *PlaybackService) OpenSession(ctx context.Context, userID uint, courseID string) (*PlayerView, error) {
	course, err := s.Courses.FindByID(courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}

	progress, err := s.Progress.Load(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	session := model.NewPlaybackSession(course)
	state := &playbackState{session: session, course: course}

	resume := progress.FindResumePoint(course)
	if resume != nil {
		if err := session.SelectSubsection(resume.SectionID, resume.SubsectionID); err != nil {
			return nil, err
		}
		state.nudge = s.Clock.AfterFunc(resumeNudgeDelay, func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			state.resumeAt = resume
		})
	} else {
		session.PreviewPlay()
	}

	key := sessionKey(userID, courseID)
	s.mu.Lock()
	if old, ok := s.sessions[key]; ok && old.nudge != nil {
		old.nudge.Cancel()
	}
	s.sessions[key] = state
	view := s.viewLocked(state)
	s.mu.Unlock()

	return view, nil
}

func (s *PlaybackService) viewLocked(state *playbackState) *PlayerView {
	view := &PlayerView{
		VideoURL:  state.session.VideoURL(),
		Selection: state.session.Selection(),
	}
	if state.resumeAt != nil && !state.nudgeSent {
		view.ResumeNudge = state.resumeAt
		state.nudgeSent = true
	}
	return view
}

func (s *PlaybackService) state(userID uint, courseID string) (*playbackState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.sessions[sessionKey(userID, courseID)]
	return state, ok
}

// Select binds the player to a lesson. Selecting cancels any pending
// resume nudge, the learner has already chosen where to go.
func (s *PlaybackService) Select(ctx context.Context, userID uint, courseID, sectionID, subsectionID string) (*PlayerView, error) {
	state, ok := s.state(userID, courseID)
	if !ok {
		if _, err := s.OpenSession(ctx, userID, courseID); err != nil {
			return nil, err
		}
		state, _ = s.state(userID, courseID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := state.session.SelectSubsection(sectionID, subsectionID); err != nil {
		return nil, err
	}
	if state.nudge != nil {
		state.nudge.Cancel()
		state.resumeAt = nil
	}
	return s.viewLocked(state), nil
}

// Preview switches the player to the course trailer.
func (s *PlaybackService) Preview(ctx context.Context, userID uint, courseID string) (*PlayerView, error) {
	state, ok := s.state(userID, courseID)
	if !ok {
		if _, err := s.OpenSession(ctx, userID, courseID); err != nil {
			return nil, err
		}
		state, _ = s.state(userID, courseID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	state.session.PreviewPlay()
	if state.nudge != nil {
		state.nudge.Cancel()
		state.resumeAt = nil
	}
	return s.viewLocked(state), nil
}

// CompleteCurrent marks the selected lesson complete through the normal
// progress path. In preview mode nothing is selected and nothing happens.
func (s *PlaybackService) CompleteCurrent(ctx context.Context, userID uint, courseID string) (*ProgressView, error) {
	state, ok := s.state(userID, courseID)
	if !ok {
		return nil, util.ErrCourseNotFound
	}

	s.mu.Lock()
	sel := state.session.Selection()
	s.mu.Unlock()
	if sel == nil {
		return s.Curriculum.GetProgress(ctx, userID, courseID)
	}

	return s.Curriculum.MarkComplete(ctx, userID, courseID, sel.SectionID, sel.SubsectionID)
}

// Poll returns the current player view, delivering a scheduled resume
// nudge at most once.
func (s *PlaybackService) Poll(userID uint, courseID string) (*PlayerView, error) {
	state, ok := s.state(userID, courseID)
	if !ok {
		return nil, util.ErrCourseNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked(state), nil
}

// CloseSession drops the in-memory session and cancels its timer.
func (s *PlaybackService) CloseSession(userID uint, courseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := sessionKey(userID, courseID)
	if state, ok := s.sessions[key]; ok {
		if state.nudge != nil {
			state.nudge.Cancel()
		}
		delete(s.sessions, key)
	}
}
