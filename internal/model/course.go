package model

type CourseLevel string

const (
	Beginner     CourseLevel = "Beginner"
	Intermediate CourseLevel = "Intermediate"
	Advanced     CourseLevel = "Advanced"
)

// CourseCategories are the fixed catalog categories of the platform.
var CourseCategories = []string{
	"Quran Studies",
	"Fiqh & Jurisprudence",
	"Islamic History",
	"Hadith & Sunnah",
	"Arabic Language",
	"Theology & Philosophy",
	"Islamic Ethics",
	"Spirituality & Sufism",
	"Comparative Religion",
	"Islamic Finance",
}

// Course is the curriculum aggregate. Sections and subsections are ordered
// by their Order column; progress is derived, never stored on the course.
// swagger:model Course
type Course struct {
	UUIDBase
	Title           string      `gorm:"size:255;not null" json:"title"`
	Slug            string      `gorm:"size:255;index" json:"slug"`
	Description     string      `gorm:"type:text" json:"description"`
	InstructorID    uint        `gorm:"index;not null" json:"instructorId"`
	Instructor      *User       `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	Category        string      `gorm:"size:100;index" json:"category"`
	Level           CourseLevel `gorm:"size:20;default:'Beginner'" json:"level"`
	Language        string      `gorm:"size:50;default:'English'" json:"language"`
	Price           float64     `gorm:"default:0" json:"price"`
	ThumbnailURL    string      `gorm:"size:255" json:"thumbnailUrl"`
	PreviewVideoURL string      `gorm:"size:255" json:"previewVideoUrl"`
	Tags            []string    `gorm:"type:json;serializer:json" json:"tags"`
	Published       bool        `gorm:"default:false;index" json:"published"`
	TotalDuration   int         `gorm:"default:0" json:"totalDuration"` // minutes
	Sections        []Section   `gorm:"foreignKey:CourseID" json:"sections,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// swagger:model Section
type Section struct {
	UUIDBase
	CourseID    string       `gorm:"index;type:varchar(36);not null" json:"courseId"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Order       int          `gorm:"column:sort_order;default:0" json:"order"`
	Duration    string       `gorm:"size:50" json:"duration"`
	Summary     string       `gorm:"type:text" json:"summary"`
	Subsections []Subsection `gorm:"foreignKey:SectionID" json:"subsections,omitempty"`
	Resources   []Resource   `gorm:"foreignKey:SectionID" json:"resources,omitempty"`
	Quiz        *Quiz        `gorm:"foreignKey:SectionID" json:"quiz,omitempty"`
}

func (Section) TableName() string {
	return "sections"
}

// swagger:model Subsection
type Subsection struct {
	UUIDBase
	SectionID       string `gorm:"index;type:varchar(36);not null" json:"sectionId"`
	Title           string `gorm:"size:255;not null" json:"title"`
	Order           int    `gorm:"column:sort_order;default:0" json:"order"`
	Duration        string `gorm:"size:50" json:"duration"`
	VideoURL        string `gorm:"size:255" json:"videoUrl"`
	IsPreview       bool   `gorm:"default:false" json:"isPreview"`
	InstructorNotes string `gorm:"type:text" json:"instructorNotes"`
	Summary         string `gorm:"type:text" json:"summary"`
}

func (Subsection) TableName() string {
	return "subsections"
}

// TotalSubsections counts lessons across all sections.
func (c *Course) TotalSubsections() int {
	total := 0
	for i := range c.Sections {
		total += len(c.Sections[i].Subsections)
	}
	return total
}

// FindSection returns the section with the given id, or nil.
func (c *Course) FindSection(sectionID string) *Section {
	for i := range c.Sections {
		if c.Sections[i].ID == sectionID {
			return &c.Sections[i]
		}
	}
	return nil
}

// FindSubsection returns the subsection with the given id within the given
// section, or nil.
func (c *Course) FindSubsection(sectionID, subsectionID string) *Subsection {
	sec := c.FindSection(sectionID)
	if sec == nil {
		return nil
	}
	for i := range sec.Subsections {
		if sec.Subsections[i].ID == subsectionID {
			return &sec.Subsections[i]
		}
	}
	return nil
}
