package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/sigma/models"
	"github.com/akinalp/sigma/pkg"
	"github.com/akinalp/sigma/repository"
)

func TestVoucherLookup(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	svc := NewVoucherService(repository.NewSQLiteVoucherRepo(db.Conn)).(*voucherService)
	svc.now = fixedClock(now)

	expires := now.Add(time.Hour)
	one := 1
	require.NoError(t, svc.Upsert(ctx, &models.Voucher{Code: "spring", DiscountPercent: 20, ExpiresAt: &expires}))
	require.NoError(t, svc.Upsert(ctx, &models.Voucher{Code: "ONCE", DiscountPercent: 10, MaxUses: &one}))
	require.NoError(t, repository.NewSQLiteVoucherRepo(db.Conn).IncrementUse(ctx, "ONCE"))

	v, err := svc.Lookup(ctx, " Spring ")
	require.NoError(t, err)
	assert.Equal(t, "SPRING", v.Code)
	assert.Equal(t, 20, v.DiscountPercent)

	_, err = svc.Lookup(ctx, "ONCE")
	assert.ErrorIs(t, err, pkg.ErrBadRequest)

	_, err = svc.Lookup(ctx, "UNKNOWN")
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	svc.now = fixedClock(expires)
	_, err = svc.Lookup(ctx, "SPRING")
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestVoucherUpsertValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewVoucherService(repository.NewSQLiteVoucherRepo(db.Conn))

	err := svc.Upsert(context.Background(), &models.Voucher{Code: "BAD", DiscountPercent: 0})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
	err = svc.Upsert(context.Background(), &models.Voucher{Code: " ", DiscountPercent: 10})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}
