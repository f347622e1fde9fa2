package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"madrasa_backend/internal/model"
	"madrasa_backend/internal/repository"
	"madrasa_backend/internal/util"
	"madrasa_backend/pkg/logger"
	"madrasa_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// CertificateService issues completion certificates. Certificates are
// display records only: the id is derived from the completion timestamp,
// nothing is signed and nothing can be revoked.
type CertificateService struct {
	CertRepo   *repository.CertificateRepository
	CourseRepo *repository.CourseRepository
	UserRepo   *repository.UserRepository
	Storage    *StorageService
}

func NewCertificateService(
	certRepo *repository.CertificateRepository,
	courseRepo *repository.CourseRepository,
	userRepo *repository.UserRepository,
	storage *StorageService,
) *CertificateService {
	return &CertificateService{
		CertRepo:   certRepo,
		CourseRepo: courseRepo,
		UserRepo:   userRepo,
		Storage:    storage,
	}
}

// IssueIfEligible issues a certificate when the final score passes. Issuing
// twice for the same course returns the existing certificate.
func (s *CertificateService) IssueIfEligible(userID uint, courseID string, score int) (*model.Certificate, error) {
	if !model.ShouldIssueCertificate(score) {
		return nil, nil
	}

	if existing, err := s.CertRepo.FindByUserAndCourse(userID, courseID); err == nil {
		return existing, nil
	} else if !repository.IsNotFound(err) {
		return nil, err
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}

	instructorName := ""
	if course.Instructor != nil {
		instructorName = course.Instructor.Name
	}

	cert := model.BuildCertificate(user.Name, course.Title, time.Now(), instructorName)
	cert.UserID = userID
	cert.CourseID = courseID
	cert.Score = score

	// Best-effort stub artifact; the stored row is the record of truth.
	if s.Storage != nil {
		pdf := stubCertificatePDF(&cert)
		objectName := fmt.Sprintf("certificates/%d/%s.pdf", userID, cert.DisplayID)
		url, err := s.Storage.Upload(context.Background(), objectName, bytes.NewReader(pdf), int64(len(pdf)), "application/pdf")
		if err != nil {
			logger.Log.Warn("certificate pdf upload failed",
				zap.Uint("user_id", userID),
				zap.String("course_id", courseID),
				zap.Error(err))
		} else {
			cert.PDFURL = url
		}
	}

	if err := s.CertRepo.Create(&cert); err != nil {
		return nil, err
	}
	monitoring.CertificateCounter.Inc()
	logger.Log.Info("certificate issued",
		zap.Uint("user_id", userID),
		zap.String("course_id", courseID),
		zap.String("display_id", cert.DisplayID))

	return &cert, nil
}

func (s *CertificateService) ListByUser(userID uint) ([]model.Certificate, error) {
	return s.CertRepo.ListByUser(userID)
}

// Get returns a certificate owned by the user; admins may read any.
func (s *CertificateService) Get(id uint, userID uint, role model.UserRole) (*model.Certificate, error) {
	cert, err := s.CertRepo.FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrCertificateNotFound
		}
		return nil, err
	}
	if role != model.Admin && cert.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return cert, nil
}

// stubCertificatePDF writes a minimal single-page PDF naming the student,
// course and date. It is a placeholder artifact, not a rendered design.
func stubCertificatePDF(cert *model.Certificate) []byte {
	content := fmt.Sprintf(
		"BT /F1 24 Tf 72 700 Td (Certificate of Completion) Tj ET\n"+
			"BT /F1 14 Tf 72 650 Td (%s) Tj ET\n"+
			"BT /F1 14 Tf 72 620 Td (%s) Tj ET\n"+
			"BT /F1 12 Tf 72 590 Td (Instructor: %s) Tj ET\n"+
			"BT /F1 12 Tf 72 560 Td (Completed: %s) Tj ET\n"+
			"BT /F1 10 Tf 72 520 Td (%s) Tj ET\n",
		pdfEscape(cert.StudentName),
		pdfEscape(cert.CourseName),
		pdfEscape(cert.InstructorName),
		cert.CompletedAt.Format("January 2, 2006"),
		pdfEscape(cert.DisplayID),
	)

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, 6)

	writeObj := func(n int, body string) {
		offsets[n] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", n, body)
	}

	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	writeObj(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>")
	writeObj(4, fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", len(content), content))
	writeObj(5, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	xref := buf.Len()
	buf.WriteString("xref\n0 6\n0000000000 65535 f \n")
	for n := 1; n <= 5; n++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[n])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xref)

	return buf.Bytes()
}

func pdfEscape(s string) string {
	var b bytes.Buffer
	for _, r := range s {
		switch r {
		case '(', ')', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
