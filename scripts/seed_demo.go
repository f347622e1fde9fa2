// Seeds a demo instructor and course so a fresh install has something to
// browse.
//
// Usage: go run scripts/seed_demo.go

package main

import (
	"log"

	"madrasa_backend/internal/config"
	"madrasa_backend/internal/model"
	"madrasa_backend/pkg/database"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	var count int64
	db.Model(&model.Course{}).Count(&count)
	if count > 0 {
		log.Println("courses already present, nothing to seed")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	instructor := &model.User{
		Name:     "Sheikh Abdullah Rahman",
		Email:    "instructor@example.com",
		Password: string(hashed),
		Role:     model.Instructor,
		Bio:      "Teaches tajweed and Quranic recitation.",
	}
	if err := db.Create(instructor).Error; err != nil {
		log.Fatalf("failed to create instructor: %v", err)
	}

	course := &model.Course{
		Title:        "Foundations of Quranic Recitation",
		Slug:         "foundations-of-quranic-recitation",
		Description:  "Tajweed rules from the alphabet up to fluent recitation.",
		InstructorID: instructor.ID,
		Category:     "Quran Studies",
		Level:        model.Beginner,
		Language:     "English",
		Published:    true,
		Sections: []model.Section{
			{
				Title: "The Arabic Alphabet",
				Order: 1,
				Subsections: []model.Subsection{
					{Title: "Letter Forms", Order: 1, Duration: "12:30"},
					{Title: "Points of Articulation", Order: 2, Duration: "18:05"},
				},
			},
			{
				Title: "Rules of Noon Saakin",
				Order: 2,
				Subsections: []model.Subsection{
					{Title: "Izhaar", Order: 1, Duration: "09:40"},
					{Title: "Idghaam", Order: 2, Duration: "11:15"},
				},
			},
		},
	}
	if err := db.Create(course).Error; err != nil {
		log.Fatalf("failed to create course: %v", err)
	}

	quiz := &model.Quiz{
		SectionID:       course.Sections[0].ID,
		Title:           "Alphabet Check",
		PassingScore:    model.PassThreshold,
		AttemptsAllowed: 3,
		Questions: []model.QuizQuestion{
			{
				Text:          "How many letters does the Arabic alphabet have?",
				Options:       []string{"26", "28", "30"},
				CorrectAnswer: 1,
				Order:         1,
			},
			{
				Text:          "Which letter is articulated from the deepest part of the throat?",
				Options:       []string{"Haa", "Ayn", "Hamza"},
				CorrectAnswer: 2,
				Order:         2,
			},
		},
	}
	if err := db.Create(quiz).Error; err != nil {
		log.Fatalf("failed to create quiz: %v", err)
	}

	log.Println("demo data seeded")
}
