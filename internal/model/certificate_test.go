package model

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShouldIssueCertificateThreshold(t *testing.T) {
	assert.False(t, ShouldIssueCertificate(69))
	assert.True(t, ShouldIssueCertificate(70))
	assert.True(t, ShouldIssueCertificate(100))
	assert.False(t, ShouldIssueCertificate(0))
}

func TestBuildCertificate(t *testing.T) {
	completed := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	cert := BuildCertificate("Aisha Rahman", "Foundations of Tajweed", completed, "Sh. Yusuf Ali")

	assert.Equal(t, "Aisha Rahman", cert.StudentName)
	assert.Equal(t, "Foundations of Tajweed", cert.CourseName)
	assert.Equal(t, "Sh. Yusuf Ali", cert.InstructorName)
	assert.Equal(t, completed, cert.CompletedAt)

	// display id is derived from the completion timestamp in millis
	assert.Equal(t, "CERT-"+strconv.FormatInt(completed.UnixMilli(), 10), cert.DisplayID)
}
