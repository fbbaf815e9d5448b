// Package main: Repository katmanı başlatma.
package main

import (
	"database/sql"

	"github.com/akinalp/sigma/repository"
)

// Repositories, tüm repository instance'larını tutan container struct.
type Repositories struct {
	User              repository.AccountRepository
	Instructor        repository.AccountRepository
	Category          repository.CategoryRepository
	Course            repository.CourseRepository
	Enrollment        repository.EnrollmentRepository
	Certificate       repository.CertificateRepository
	Voucher           repository.VoucherRepository
	BankAccount       repository.BankAccountRepository
	VerificationToken repository.VerificationTokenRepository
}

// initRepositories, veritabanı bağlantısından tüm repository'leri oluşturur.
// *sql.DB goroutine-safe bir connection pool'dur; hepsi aynısını paylaşır.
func initRepositories(conn *sql.DB) *Repositories {
	return &Repositories{
		User:              repository.NewSQLiteUserRepo(conn),
		Instructor:        repository.NewSQLiteInstructorRepo(conn),
		Category:          repository.NewSQLiteCategoryRepo(conn),
		Course:            repository.NewSQLiteCourseRepo(conn),
		Enrollment:        repository.NewSQLiteEnrollmentRepo(conn),
		Certificate:       repository.NewSQLiteCertificateRepo(conn),
		Voucher:           repository.NewSQLiteVoucherRepo(conn),
		BankAccount:       repository.NewSQLiteBankAccountRepo(conn),
		VerificationToken: repository.NewSQLiteVerificationTokenRepo(conn),
	}
}
