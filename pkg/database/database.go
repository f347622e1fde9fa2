package database

import (
	"fmt"
	"log"

	"madrasa_backend/internal/config"
	"madrasa_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Section{},
		&model.Subsection{},
		&model.Resource{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.QuizAttemptRecord{},
		&model.UserProgress{},
		&model.Certificate{},
		&model.Enrollment{},
		&model.Review{},
		&model.StudyGroup{},
		&model.GroupMembership{},
		&model.Poll{},
		&model.PollOption{},
		&model.PollVote{},
		&model.LiveQuestion{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}
