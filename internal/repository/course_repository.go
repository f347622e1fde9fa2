package repository

import (
	"madrasa_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

// CourseFilter narrows catalog queries.
type CourseFilter struct {
	Category      string
	Level         string
	Search        string
	PublishedOnly bool
	InstructorID  uint
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

// FindByID loads the full curriculum aggregate with sections, subsections,
// resources and quizzes in declaration order.
func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Instructor").
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("sections.sort_order ASC")
		}).
		Preload("Sections.Subsections", func(db *gorm.DB) *gorm.DB {
			return db.Order("subsections.sort_order ASC")
		}).
		Preload("Sections.Resources").
		Preload("Sections.Quiz").
		Preload("Sections.Quiz.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_questions.sort_order ASC")
		}).
		First(&course, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) List(filter CourseFilter, page, limit int) ([]model.Course, int64, error) {
	query := r.DB.Model(&model.Course{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Level != "" {
		query = query.Where("level = ?", filter.Level)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if filter.PublishedOnly {
		query = query.Where("published = ?", true)
	}
	if filter.InstructorID != 0 {
		query = query.Where("instructor_id = ?", filter.InstructorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []model.Course
	err := query.Preload("Instructor").
		Offset((page - 1) * limit).Limit(limit).
		Order("created_at DESC").
		Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) Delete(id string) error {
	return r.DB.Delete(&model.Course{}, "id = ?", id).Error
}

func (r *CourseRepository) CreateSection(section *model.Section) error {
	return r.DB.Create(section).Error
}

func (r *CourseRepository) FindSectionByID(id string) (*model.Section, error) {
	var section model.Section
	err := r.DB.
		Preload("Subsections", func(db *gorm.DB) *gorm.DB {
			return db.Order("subsections.sort_order ASC")
		}).
		Preload("Resources").
		Preload("Quiz").
		First(&section, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *CourseRepository) UpdateSection(section *model.Section) error {
	return r.DB.Save(section).Error
}

func (r *CourseRepository) DeleteSection(id string) error {
	return r.DB.Delete(&model.Section{}, "id = ?", id).Error
}

func (r *CourseRepository) CreateSubsection(sub *model.Subsection) error {
	return r.DB.Create(sub).Error
}

func (r *CourseRepository) FindSubsectionByID(id string) (*model.Subsection, error) {
	var sub model.Subsection
	err := r.DB.First(&sub, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *CourseRepository) UpdateSubsection(sub *model.Subsection) error {
	return r.DB.Save(sub).Error
}

func (r *CourseRepository) DeleteSubsection(id string) error {
	return r.DB.Delete(&model.Subsection{}, "id = ?", id).Error
}

func (r *CourseRepository) CreateResource(res *model.Resource) error {
	return r.DB.Create(res).Error
}

func (r *CourseRepository) FindResourceByID(id uint) (*model.Resource, error) {
	var res model.Resource
	err := r.DB.First(&res, id).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *CourseRepository) DeleteResource(id uint) error {
	return r.DB.Delete(&model.Resource{}, id).Error
}
