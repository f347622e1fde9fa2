package model

import "errors"

var ErrSubsectionNotFound = errors.New("subsection not found in course")

// Selection identifies the lesson currently bound to the player.
type Selection struct {
	SectionID    string `json:"sectionId"`
	SubsectionID string `json:"subsectionId"`
}

// PlaybackSession binds a learner's lesson selection to a video URL.
// Preview mode plays the course trailer with no lesson selected, so marking
// complete in that state is a no-op.
type PlaybackSession struct {
	course    *Course
	videoURL  string
	selection *Selection
	observers []func(Selection)
}

func NewPlaybackSession(course *Course) *PlaybackSession {
	return &PlaybackSession{course: course}
}

// OnSelect registers an observer notified on every lesson selection change.
// The UI uses this for scroll-into-view; the server uses it to stamp the
// sync record's current position.
func (s *PlaybackSession) OnSelect(fn func(Selection)) {
	s.observers = append(s.observers, fn)
}

// SelectSubsection binds the player to a lesson video.
func (s *PlaybackSession) SelectSubsection(sectionID, subsectionID string) error {
	sub := s.course.FindSubsection(sectionID, subsectionID)
	if sub == nil {
		return ErrSubsectionNotFound
	}
	s.videoURL = sub.VideoURL
	sel := Selection{SectionID: sectionID, SubsectionID: subsectionID}
	s.selection = &sel
	for _, fn := range s.observers {
		fn(sel)
	}
	return nil
}

// PreviewPlay switches to the course preview video and clears the lesson
// selection.
func (s *PlaybackSession) PreviewPlay() {
	s.videoURL = s.course.PreviewVideoURL
	s.selection = nil
}

// VideoURL returns the currently bound video URL.
func (s *PlaybackSession) VideoURL() string {
	return s.videoURL
}

// Selection returns the current lesson selection, nil in preview mode.
func (s *PlaybackSession) Selection() *Selection {
	return s.selection
}

// MarkCurrentComplete records the selected lesson in the progress map.
// Reports whether anything was marked; preview mode marks nothing.
func (s *PlaybackSession) MarkCurrentComplete(m ProgressMap) bool {
	if s.selection == nil {
		return false
	}
	m.MarkComplete(s.selection.SectionID, s.selection.SubsectionID)
	return true
}
