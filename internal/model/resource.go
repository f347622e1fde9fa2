package model

type ResourceType string

const (
	PDF      ResourceType = "pdf"
	Image    ResourceType = "image"
	VideoRes ResourceType = "video"
	Document ResourceType = "document"
)

// Resource is a downloadable study material attached to a section.
// swagger:model Resource
type Resource struct {
	BaseModel
	SectionID   string       `gorm:"index;type:varchar(36);not null" json:"sectionId"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Type        ResourceType `gorm:"type:enum('pdf','image','video','document');not null" json:"type"`
	Size        string       `gorm:"size:50" json:"size"`
	DownloadURL string       `gorm:"size:255;not null" json:"downloadUrl"`
	UploaderID  uint         `gorm:"index" json:"uploaderId"`
	Duration    float64      `gorm:"default:0" json:"duration,omitempty"` // seconds, video only
	Format      string       `gorm:"size:50" json:"format,omitempty"`
	Thumbnail   string       `gorm:"size:255" json:"thumbnail,omitempty"`
}

func (Resource) TableName() string {
	return "resources"
}
