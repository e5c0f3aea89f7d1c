package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mateoAlonso06/core-banking-api-sub001/internal/domain"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/usecase"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/usecase/mocks"
)

func TestStatementUseCase_ListByAccount(t *testing.T) {
	ctrl := gomock.NewController(t)

	txRepo := mocks.NewGomockTransactionRepository(ctrl)
	uc := usecase.NewStatementUseCase(txRepo)

	txRepo.EXPECT().ListByAccount(gomock.Any(), "acc-1", 20, 0).Return([]*domain.Transaction{
		{ID: "tx-1", AccountID: "acc-1", Type: domain.TransactionTypeDeposit},
		{ID: "tx-2", AccountID: "acc-1", Type: domain.TransactionTypeWithdrawal},
	}, nil)

	entries, err := uc.ListByAccount(context.Background(), usecase.ListByAccountInput{AccountID: "acc-1"})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestStatementUseCase_ListByAccount_ClampsPagination(t *testing.T) {
	ctrl := gomock.NewController(t)

	txRepo := mocks.NewGomockTransactionRepository(ctrl)
	uc := usecase.NewStatementUseCase(txRepo)

	// Oversized limit is clamped, negative offset normalized.
	txRepo.EXPECT().ListByAccount(gomock.Any(), "acc-1", 100, 0).Return(nil, nil)

	_, err := uc.ListByAccount(context.Background(), usecase.ListByAccountInput{
		AccountID: "acc-1",
		Limit:     5000,
		Offset:    -3,
	})
	require.NoError(t, err)
}

func TestStatementUseCase_GetByReference(t *testing.T) {
	ctrl := gomock.NewController(t)

	txRepo := mocks.NewGomockTransactionRepository(ctrl)
	uc := usecase.NewStatementUseCase(txRepo)

	txRepo.EXPECT().GetByReference(gomock.Any(), "REF-1").Return(&domain.Transaction{ID: "tx-1"}, nil)

	tx, err := uc.GetByReference(context.Background(), "REF-1")
	require.NoError(t, err)
	assert.Equal(t, "tx-1", tx.ID)
}
