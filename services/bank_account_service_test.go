package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/sigma/models"
	"github.com/akinalp/sigma/pkg"
	"github.com/akinalp/sigma/pkg/crypto"
	"github.com/akinalp/sigma/repository"
)

func TestBankAccountServiceEncryptsAndMasks(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedAccount(t, repository.NewSQLiteInstructorRepo(db.Conn), "teach@example.com", models.RoleInstructor)

	key, err := crypto.ParseKey(strings.Repeat("ab", 32))
	require.NoError(t, err)
	cipher, err := crypto.NewFieldCipher(key)
	require.NoError(t, err)

	repo := repository.NewSQLiteBankAccountRepo(db.Conn)
	svc := NewBankAccountService(repo, cipher)

	created, err := svc.Create(ctx, owner.ID, &models.CreateBankAccountRequest{
		BankName:      "Ziraat",
		HolderName:    "Teach Er",
		AccountNumber: "TR33 0006 1005 1978 6457 8413 26",
	})
	require.NoError(t, err)
	assert.Equal(t, "****1326", created.MaskedNumber)

	stored, err := repo.ListByInstructor(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.NotEqual(t, "TR330006100519786457841326", stored[0].AccountNumberEnc)

	list, err := svc.List(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "TR330006100519786457841326", list[0].AccountNumber)
	assert.Equal(t, "****1326", list[0].MaskedNumber)

	_, err = svc.Create(ctx, owner.ID, &models.CreateBankAccountRequest{BankName: "X", HolderName: "Y", AccountNumber: "12"})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}
