package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/eduverse/core"
	"github.com/trezcool/eduverse/core/catalog"
)

func TestService_Course(t *testing.T) {
	svc, _ := setup(t)

	c, err := svc.Course("2")
	require.NoError(t, err)
	assert.Equal(t, "Machine Learning and AI Fundamentals", c.Title)
	assert.Len(t, c.Lessons, 2)

	_, err = svc.Course("42")
	assert.Equal(t, catalog.ErrCourseNotFound, err)
	assert.True(t, core.IsNotFound(err))
}

func TestService_Featured(t *testing.T) {
	svc, _ := setup(t)
	featured, err := svc.Featured()
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, ids(featured))
}

func TestService_Webinars(t *testing.T) {
	svc, _ := setup(t)

	live, err := svc.LiveWebinars()
	require.NoError(t, err)
	upcoming, err := svc.UpcomingWebinars()
	require.NoError(t, err)

	require.Len(t, live, 1)
	assert.Equal(t, "w2", live[0].ID)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "w1", upcoming[0].ID)
	assert.Equal(t, "w3", upcoming[1].ID)
	assert.True(t, upcoming[0].IsFree())
	assert.Equal(t, 11, live[0].SeatsLeft())
}

func TestService_Certificates(t *testing.T) {
	svc, _ := setup(t)

	certs, err := svc.CertificatesFor("1")
	require.NoError(t, err)
	require.Len(t, certs, 1)
	assert.Equal(t, "WD-2024-001234", certs[0].CertificateNumber)

	certs, err = svc.CertificatesFor("2")
	require.NoError(t, err)
	assert.Empty(t, certs)

	_, err = svc.Certificate("2", "cert1")
	assert.Equal(t, catalog.ErrCertificateNotFound, err)

	cert, err := svc.CertificateByNumber("WD-2024-001234")
	require.NoError(t, err)
	assert.Equal(t, "cert1", cert.ID)
}
