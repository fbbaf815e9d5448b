// Package seed, YAML dosyasından başlangıç verisi (kategoriler, kuponlar,
// admin hesapları) yükler. İşlem idempotent'tir: aynı dosya tekrar
// uygulandığında mevcut kayıtlar çoğaltılmaz.
//
//	categories:
//	  - name: Development
//	    subcategories: [Web, Mobile]
//	vouchers:
//	  - code: WELCOME10
//	    discount_percent: 10
//	    expires_at: 2027-01-01T00:00:00Z
//	    max_uses: 100
//	admins:
//	  - email: admin@example.com
//	    name: Admin
//	    password_hash: "$argon2id$v=19$..."   # sigma hash-password çıktısı
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/akinalp/sigma/models"
	"github.com/akinalp/sigma/pkg"
	"github.com/akinalp/sigma/pkg/password"
	"github.com/akinalp/sigma/repository"
)

// File, seed dosyasının şekli.
type File struct {
	Categories []CategorySeed  `yaml:"categories"`
	Vouchers   []models.Voucher `yaml:"vouchers"`
	Admins     []AdminSeed      `yaml:"admins"`
}

type CategorySeed struct {
	Name          string   `yaml:"name"`
	Subcategories []string `yaml:"subcategories"`
}

// AdminSeed, admin hesabı. Şifre düz metin olarak değil hash olarak verilir.
type AdminSeed struct {
	Email        string `yaml:"email"`
	Name         string `yaml:"name"`
	PasswordHash string `yaml:"password_hash"`
}

// Summary, uygulanan değişikliklerin sayısı.
type Summary struct {
	CategoriesCreated int
	VouchersUpserted  int
	AdminsCreated     int
}

// Parse, YAML içeriğini okur. Bilinmeyen alanlar hata sayılır.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &f, nil
}

// Seeder, seed dosyasını repository'ler üzerinden uygular.
type Seeder struct {
	categoryRepo repository.CategoryRepository
	voucherRepo  repository.VoucherRepository
	userRepo     repository.AccountRepository
}

func NewSeeder(
	categoryRepo repository.CategoryRepository,
	voucherRepo repository.VoucherRepository,
	userRepo repository.AccountRepository,
) *Seeder {
	return &Seeder{
		categoryRepo: categoryRepo,
		voucherRepo:  voucherRepo,
		userRepo:     userRepo,
	}
}

// Apply, dosyadaki tüm kayıtları uygular. İlk hatada durur.
func (s *Seeder) Apply(ctx context.Context, f *File) (*Summary, error) {
	sum := &Summary{}

	if err := s.applyCategories(ctx, f.Categories, sum); err != nil {
		return sum, err
	}

	for i := range f.Vouchers {
		v := f.Vouchers[i]
		if err := v.Validate(); err != nil {
			return sum, fmt.Errorf("voucher %q: %w", v.Code, err)
		}
		if err := s.voucherRepo.Upsert(ctx, &v); err != nil {
			return sum, err
		}
		sum.VouchersUpserted++
	}

	for _, a := range f.Admins {
		created, err := s.applyAdmin(ctx, a)
		if err != nil {
			return sum, err
		}
		if created {
			sum.AdminsCreated++
		}
	}

	return sum, nil
}

// applyCategories, isim eşleşmesiyle eksik kök ve alt kategorileri oluşturur.
func (s *Seeder) applyCategories(ctx context.Context, seeds []CategorySeed, sum *Summary) error {
	existing, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	roots := make(map[string]string)       // isim → id
	children := make(map[string]struct{}) // parentID + "/" + isim
	for _, c := range existing {
		if c.ParentID == nil {
			roots[c.Name] = c.ID
		} else {
			children[*c.ParentID+"/"+c.Name] = struct{}{}
		}
	}

	for _, cs := range seeds {
		rootID, ok := roots[cs.Name]
		if !ok {
			root, err := s.createCategory(ctx, cs.Name, nil)
			if err != nil {
				return err
			}
			rootID = root.ID
			roots[cs.Name] = rootID
			sum.CategoriesCreated++
		}

		for _, name := range cs.Subcategories {
			key := rootID + "/" + name
			if _, ok := children[key]; ok {
				continue
			}
			if _, err := s.createCategory(ctx, name, &rootID); err != nil {
				return err
			}
			children[key] = struct{}{}
			sum.CategoriesCreated++
		}
	}
	return nil
}

func (s *Seeder) createCategory(ctx context.Context, name string, parentID *string) (*models.Category, error) {
	req := &models.CreateCategoryRequest{Name: name, ParentID: parentID}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("category %q: %w", name, err)
	}
	c := &models.Category{Name: req.Name, ParentID: req.ParentID}
	if err := s.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// applyAdmin, hesap yoksa admin rolüyle oluşturur. Var olan hesaba dokunulmaz.
func (s *Seeder) applyAdmin(ctx context.Context, a AdminSeed) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(a.Email))
	if !models.EmailRegex().MatchString(email) {
		return false, fmt.Errorf("admin %q: invalid email format", a.Email)
	}
	name := strings.TrimSpace(a.Name)
	if name == "" {
		name = "Admin"
	}

	if err := password.Verify("", a.PasswordHash); errors.Is(err, password.ErrUnknownFormat) {
		return false, fmt.Errorf("admin %q: password_hash must be an argon2id or bcrypt hash", a.Email)
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		log.Printf("[seed] admin %s already exists, skipping", email)
		return false, nil
	}
	if !errors.Is(err, pkg.ErrNotFound) {
		return false, err
	}

	account := &models.Account{
		Email:        email,
		Name:         name,
		PasswordHash: a.PasswordHash,
		Role:         models.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, account); err != nil {
		return false, err
	}
	return true, nil
}
