package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akinalp/sigma/models"
	"github.com/akinalp/sigma/pkg"
	"github.com/akinalp/sigma/repository"
)

// VoucherService, kupon sorgulama ve seed işlemleri.
type VoucherService interface {
	// Lookup, kodu bulur ve şu an kullanılabilir olduğunu doğrular.
	Lookup(ctx context.Context, code string) (*models.Voucher, error)
	Upsert(ctx context.Context, v *models.Voucher) error
}

type voucherService struct {
	voucherRepo repository.VoucherRepository
	now         func() time.Time
}

func NewVoucherService(voucherRepo repository.VoucherRepository) VoucherService {
	return &voucherService{voucherRepo: voucherRepo, now: time.Now}
}

func (s *voucherService) Lookup(ctx context.Context, code string) (*models.Voucher, error) {
	return usableVoucher(ctx, s.voucherRepo, code, s.now())
}

func (s *voucherService) Upsert(ctx context.Context, v *models.Voucher) error {
	if err := v.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}
	return s.voucherRepo.Upsert(ctx, v)
}

// usableVoucher, Lookup ve Enroll'un ortak kontrolü: bilinmeyen kod 404,
// süresi dolmuş veya tükenmiş kod 400.
func usableVoucher(ctx context.Context, repo repository.VoucherRepository, code string, now time.Time) (*models.Voucher, error) {
	code = models.NormalizeVoucherCode(code)
	if code == "" {
		return nil, fmt.Errorf("%w: voucher code is required", pkg.ErrBadRequest)
	}

	v, err := repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: voucher not found", pkg.ErrNotFound)
		}
		return nil, err
	}

	if err := v.Usable(now); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}
	return v, nil
}
