package main

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tutorhub/internal/config"
	"tutorhub/internal/database"
	"tutorhub/internal/domain"
	jwtsvc "tutorhub/internal/pkg/jwt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Subject{},
		&domain.TutorSubject{},
		&domain.Booking{},
		&domain.Notification{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM tutor_subjects")
	db.Exec("DELETE FROM subjects")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")

	tutorHash, _ := bcrypt.GenerateFromPassword([]byte("tutor123"), bcrypt.DefaultCost)
	tutor := domain.User{
		Email:           "aizhan@tutorhub.kz",
		PasswordHash:    string(tutorHash),
		Role:            domain.RoleTutor,
		Name:            "Aizhan Nurlanova",
		TutorStatus:     domain.TutorVerified,
		ProfileComplete: true,
	}
	db.Create(&tutor)

	unverifiedHash, _ := bcrypt.GenerateFromPassword([]byte("tutor123"), bcrypt.DefaultCost)
	unverified := domain.User{
		Email:        "marat@tutorhub.kz",
		PasswordHash: string(unverifiedHash),
		Role:         domain.RoleTutor,
		Name:         "Marat Seitkali",
		TutorStatus:  domain.TutorPending,
	}
	db.Create(&unverified)

	studentHash, _ := bcrypt.GenerateFromPassword([]byte("student123"), bcrypt.DefaultCost)
	student := domain.User{
		Email:           "bekzat@tutorhub.kz",
		PasswordHash:    string(studentHash),
		Role:            domain.RoleStudent,
		Name:            "Bekzat Omarov",
		ProfileComplete: true,
	}
	db.Create(&student)

	log.Println("Creating subjects...")

	math := domain.Subject{Name: "Mathematics"}
	physics := domain.Subject{Name: "Physics"}
	english := domain.Subject{Name: "English"}
	db.Create(&math)
	db.Create(&physics)
	db.Create(&english)

	db.Create(&domain.TutorSubject{TutorID: tutor.ID, SubjectID: math.ID, HourlyRate: 20})
	db.Create(&domain.TutorSubject{TutorID: tutor.ID, SubjectID: physics.ID, HourlyRate: 25})

	log.Println("Creating bookings...")

	now := time.Now().UTC()

	// starts soon so the reminder sweep has something to pick up
	soon := domain.Booking{
		TutorID:   tutor.ID,
		StudentID: student.ID,
		SubjectID: math.ID,
		StartTime: now.Add(30 * time.Minute),
		EndTime:   now.Add(90 * time.Minute),
		Status:    domain.BookingConfirmed,
	}
	db.Create(&soon)

	tomorrow := domain.Booking{
		TutorID:     tutor.ID,
		StudentID:   student.ID,
		SubjectID:   physics.ID,
		StartTime:   now.Add(25 * time.Hour),
		EndTime:     now.Add(26 * time.Hour),
		Description: "Exam preparation",
		Status:      domain.BookingPending,
	}
	db.Create(&tomorrow)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	tutorToken, _ := j.GenerateToken(tutor.ID, tutor.Role)
	studentToken, _ := j.GenerateToken(student.ID, student.Role)

	log.Println("Seed complete.")
	log.Printf("Tutor:   aizhan@tutorhub.kz / tutor123   token=%s", tutorToken)
	log.Printf("Student: bekzat@tutorhub.kz / student123 token=%s", studentToken)
}
