package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/sigma/models"
	"github.com/akinalp/sigma/pkg"
	"github.com/akinalp/sigma/repository"
	"github.com/akinalp/sigma/ws"
)

type enrollmentFixture struct {
	svc        EnrollmentService
	pub        *fakePublisher
	vouchers   repository.VoucherRepository
	courses    repository.CourseRepository
	student    *models.Account
	instructor *models.Account
	stranger   *models.Account
	course     *models.Course
}

func newEnrollmentFixture(t *testing.T) *enrollmentFixture {
	t.Helper()
	db := newTestDB(t)
	ctx := context.Background()

	f := &enrollmentFixture{
		pub:      newFakePublisher(),
		vouchers: repository.NewSQLiteVoucherRepo(db.Conn),
		courses:  repository.NewSQLiteCourseRepo(db.Conn),
	}
	instructors := repository.NewSQLiteInstructorRepo(db.Conn)
	f.student = seedAccount(t, repository.NewSQLiteUserRepo(db.Conn), "student@example.com", models.RoleUser)
	f.instructor = seedAccount(t, instructors, "teach@example.com", models.RoleInstructor)
	f.stranger = seedAccount(t, instructors, "stranger@example.com", models.RoleInstructor)

	f.course = &models.Course{InstructorID: f.instructor.ID, Title: "Go Basics", Price: 10000, Published: true}
	require.NoError(t, f.courses.Create(ctx, f.course))

	f.svc = NewEnrollmentService(
		db.Conn,
		f.courses,
		repository.NewSQLiteEnrollmentRepo(db.Conn),
		f.vouchers,
		repository.NewSQLiteCertificateRepo(db.Conn),
		f.pub,
	)
	return f
}

func TestEnrollWithoutVoucher(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	e, err := f.svc.Enroll(ctx, f.student.ID, f.course.ID, &models.EnrollRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(10000), e.PricePaid)
	assert.Nil(t, e.VoucherCode)

	events := f.pub.byUser[f.instructor.ID]
	require.Len(t, events, 1)
	assert.Equal(t, ws.OpEnrollmentCreate, events[0].Op)
	data := events[0].Data.(ws.EnrollmentCreateData)
	assert.Equal(t, e.ID, data.EnrollmentID)
	assert.Equal(t, "Go Basics", data.CourseTitle)

	list, err := f.svc.ListByUser(ctx, f.student.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, f.course.ID, list[0].CourseID)
}

func TestEnrollWithVoucher(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	one := 1
	require.NoError(t, f.vouchers.Upsert(ctx, &models.Voucher{Code: "SAVE25", DiscountPercent: 25, MaxUses: &one}))

	e, err := f.svc.Enroll(ctx, f.student.ID, f.course.ID, &models.EnrollRequest{VoucherCode: " save25 "})
	require.NoError(t, err)
	assert.Equal(t, int64(7500), e.PricePaid)
	require.NotNil(t, e.VoucherCode)
	assert.Equal(t, "SAVE25", *e.VoucherCode)

	v, err := f.vouchers.GetByCode(ctx, "SAVE25")
	require.NoError(t, err)
	assert.Equal(t, 1, v.UsedCount)
}

func TestEnrollDuplicateDoesNotConsumeVoucher(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	require.NoError(t, f.vouchers.Upsert(ctx, &models.Voucher{Code: "HALF", DiscountPercent: 50}))

	_, err := f.svc.Enroll(ctx, f.student.ID, f.course.ID, &models.EnrollRequest{})
	require.NoError(t, err)

	_, err = f.svc.Enroll(ctx, f.student.ID, f.course.ID, &models.EnrollRequest{VoucherCode: "HALF"})
	assert.ErrorIs(t, err, pkg.ErrAlreadyExists)

	v, err := f.vouchers.GetByCode(ctx, "HALF")
	require.NoError(t, err)
	assert.Equal(t, 0, v.UsedCount)
}

func TestEnrollRejections(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	draft := &models.Course{InstructorID: f.instructor.ID, Title: "Draft Course", Price: 100}
	require.NoError(t, f.courses.Create(ctx, draft))

	_, err := f.svc.Enroll(ctx, f.student.ID, draft.ID, &models.EnrollRequest{})
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	_, err = f.svc.Enroll(ctx, f.student.ID, "missing", &models.EnrollRequest{})
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	_, err = f.svc.Enroll(ctx, f.student.ID, f.course.ID, &models.EnrollRequest{VoucherCode: "NOPE"})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)

	past := time.Now().Add(-time.Hour)
	require.NoError(t, f.vouchers.Upsert(ctx, &models.Voucher{Code: "OLD", DiscountPercent: 10, ExpiresAt: &past}))
	_, err = f.svc.Enroll(ctx, f.student.ID, f.course.ID, &models.EnrollRequest{VoucherCode: "OLD"})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)

	assert.Empty(t, f.pub.byUser[f.instructor.ID])
}

func TestCompleteIssuesCertificate(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	e, err := f.svc.Enroll(ctx, f.student.ID, f.course.ID, &models.EnrollRequest{})
	require.NoError(t, err)

	_, err = f.svc.Complete(ctx, f.stranger.ID, e.ID)
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	cert, err := f.svc.Complete(ctx, f.instructor.ID, e.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(cert.Number, "SGM-"))
	assert.Equal(t, e.ID, cert.EnrollmentID)

	again, err := f.svc.Complete(ctx, f.instructor.ID, e.ID)
	require.NoError(t, err)
	assert.Equal(t, cert.Number, again.Number)
	assert.Equal(t, cert.ID, again.ID)

	_, err = f.svc.Complete(ctx, f.stranger.ID, e.ID)
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	got, err := f.svc.VerifyCertificate(ctx, strings.ToLower(cert.Number))
	require.NoError(t, err)
	assert.Equal(t, cert.Number, got.Number)
	assert.Equal(t, "Go Basics", got.CourseTitle)
	assert.Equal(t, f.student.Name, got.HolderName)

	_, err = f.svc.VerifyCertificate(ctx, "SGM-UNKNOWN")
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	_, err = f.svc.VerifyCertificate(ctx, " ")
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}
