package model

import (
	"strings"
	"time"
)

// ProgressMap records which subsections a user has completed within one
// course. Keys are stable-id completion keys, values are always true once
// set; absence means incomplete. The map only ever grows.
type ProgressMap map[string]bool

// CompletionKey addresses one subsection within one course.
func CompletionKey(sectionID, subsectionID string) string {
	return sectionID + "/" + subsectionID
}

// SplitCompletionKey is the inverse of CompletionKey. ok is false for keys
// that were not produced by it.
func SplitCompletionKey(key string) (sectionID, subsectionID string, ok bool) {
	i := strings.LastIndex(key, "/")
	if i <= 0 || i == len(key)-1 {
		return "", "", false
	}
	return key[:i], key[i+1:], true
}

// MarkComplete sets a subsection complete. Idempotent.
func (m ProgressMap) MarkComplete(sectionID, subsectionID string) {
	m[CompletionKey(sectionID, subsectionID)] = true
}

// IsComplete reports completion; an absent key is incomplete.
func (m ProgressMap) IsComplete(sectionID, subsectionID string) bool {
	return m[CompletionKey(sectionID, subsectionID)]
}

// ProgressCount is a completed/total pair.
type ProgressCount struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// SectionProgress counts completed subsections within one section.
func (m ProgressMap) SectionProgress(sec *Section) ProgressCount {
	pc := ProgressCount{Total: len(sec.Subsections)}
	for i := range sec.Subsections {
		if m.IsComplete(sec.ID, sec.Subsections[i].ID) {
			pc.Completed++
		}
	}
	return pc
}

// SectionComplete reports whether every subsection of a section is done.
// Empty sections count as complete.
func (m ProgressMap) SectionComplete(sec *Section) bool {
	pc := m.SectionProgress(sec)
	return pc.Completed == pc.Total
}

// TotalProgress sums section progress across the whole course.
func (m ProgressMap) TotalProgress(course *Course) ProgressCount {
	var pc ProgressCount
	for i := range course.Sections {
		sp := m.SectionProgress(&course.Sections[i])
		pc.Completed += sp.Completed
		pc.Total += sp.Total
	}
	return pc
}

// Percentage returns total completion as 0-100.
func (m ProgressMap) Percentage(course *Course) float64 {
	pc := m.TotalProgress(course)
	if pc.Total == 0 {
		return 0
	}
	return 100 * float64(pc.Completed) / float64(pc.Total)
}

// ResumePoint identifies the first incomplete subsection in curriculum
// order.
type ResumePoint struct {
	SectionID    string `json:"sectionId"`
	SubsectionID string `json:"subsectionId"`
}

// FindResumePoint scans sections then subsections in declaration order and
// returns the first incomplete subsection, or nil when the course is fully
// complete or has no subsections.
func (m ProgressMap) FindResumePoint(course *Course) *ResumePoint {
	for i := range course.Sections {
		sec := &course.Sections[i]
		for j := range sec.Subsections {
			if !m.IsComplete(sec.ID, sec.Subsections[j].ID) {
				return &ResumePoint{SectionID: sec.ID, SubsectionID: sec.Subsections[j].ID}
			}
		}
	}
	return nil
}

// ApplyQuizResult applies the quiz-pass gate: a passing score marks every
// subsection of the section complete in one bulk write, whether or not each
// was individually watched. There is no inverse. A failing score changes
// nothing. Reports whether the bulk write happened.
func (m ProgressMap) ApplyQuizResult(sec *Section, score int) bool {
	if score < PassThreshold {
		return false
	}
	for i := range sec.Subsections {
		m.MarkComplete(sec.ID, sec.Subsections[i].ID)
	}
	return true
}

// Clone returns an independent copy.
func (m ProgressMap) Clone() ProgressMap {
	c := make(ProgressMap, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// UserProgress is the best-effort relational mirror of a user's ProgressMap,
// kept for dashboards and instructor views. The key-value store remains the
// source of truth; failures updating this row never surface to the learner.
type UserProgress struct {
	BaseModel
	UserID               uint       `gorm:"uniqueIndex:idx_user_course;not null" json:"userId"`
	CourseID             string     `gorm:"uniqueIndex:idx_user_course;type:varchar(36);not null" json:"courseId"`
	CompletedSubsections int        `gorm:"default:0" json:"completedSubsections"`
	TotalSubsections     int        `gorm:"default:0" json:"totalSubsections"`
	ProgressPercentage   float64    `gorm:"default:0" json:"progressPercentage"`
	CurrentSectionID     string     `gorm:"type:varchar(36)" json:"currentSectionId"`
	CurrentSubsectionID  string     `gorm:"type:varchar(36)" json:"currentSubsectionId"`
	StartedAt            time.Time  `json:"startedAt"`
	LastAccessed         time.Time  `json:"lastAccessed"`
	CompletedAt          *time.Time `json:"completedAt,omitempty"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
