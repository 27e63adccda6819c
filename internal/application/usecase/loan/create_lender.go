// Package loan contains lender and loan use cases.
package loan

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/cashplan/backend/internal/application/adapter"
	"github.com/cashplan/backend/internal/domain/entity"
	domainerror "github.com/cashplan/backend/internal/domain/error"
)

// CreateLenderInput represents the input for lender creation.
type CreateLenderInput struct {
	Name        string
	ContactInfo string
}

// CreateLenderOutput represents the output of lender creation.
type CreateLenderOutput struct {
	Lender *entity.Lender
}

// CreateLenderUseCase handles lender creation.
type CreateLenderUseCase struct {
	lenderRepo adapter.LenderRepository
}

// NewCreateLenderUseCase creates a new CreateLenderUseCase instance.
func NewCreateLenderUseCase(lenderRepo adapter.LenderRepository) *CreateLenderUseCase {
	return &CreateLenderUseCase{lenderRepo: lenderRepo}
}

// Execute performs the lender creation.
func (uc *CreateLenderUseCase) Execute(ctx context.Context, input CreateLenderInput) (*CreateLenderOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.ErrLenderNameRequired
	}

	lender := entity.NewLender(name, strings.TrimSpace(input.ContactInfo))

	if err := uc.lenderRepo.Create(ctx, lender); err != nil {
		return nil, fmt.Errorf("failed to create lender: %w", err)
	}

	return &CreateLenderOutput{Lender: lender}, nil
}

// ListLendersUseCase lists all lenders.
type ListLendersUseCase struct {
	lenderRepo adapter.LenderRepository
}

// NewListLendersUseCase creates a new ListLendersUseCase instance.
func NewListLendersUseCase(lenderRepo adapter.LenderRepository) *ListLendersUseCase {
	return &ListLendersUseCase{lenderRepo: lenderRepo}
}

// Execute lists the lenders.
func (uc *ListLendersUseCase) Execute(ctx context.Context) ([]*entity.Lender, error) {
	lenders, err := uc.lenderRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list lenders: %w", err)
	}
	return lenders, nil
}

// DeleteLenderUseCase deletes a lender. Deletion is blocked while the lender
// still has active loans.
type DeleteLenderUseCase struct {
	lenderRepo adapter.LenderRepository
	loanRepo   adapter.LoanRepository
}

// NewDeleteLenderUseCase creates a new DeleteLenderUseCase instance.
func NewDeleteLenderUseCase(lenderRepo adapter.LenderRepository, loanRepo adapter.LoanRepository) *DeleteLenderUseCase {
	return &DeleteLenderUseCase{
		lenderRepo: lenderRepo,
		loanRepo:   loanRepo,
	}
}

// Execute performs the deletion.
func (uc *DeleteLenderUseCase) Execute(ctx context.Context, lenderID uuid.UUID) error {
	if _, err := uc.lenderRepo.FindByID(ctx, lenderID); err != nil {
		return err
	}

	active, err := uc.loanRepo.CountActiveByLender(ctx, lenderID)
	if err != nil {
		return fmt.Errorf("failed to count active loans: %w", err)
	}
	if active > 0 {
		return domainerror.ErrLenderHasActiveLoans
	}

	if err := uc.lenderRepo.Delete(ctx, lenderID); err != nil {
		return fmt.Errorf("failed to delete lender: %w", err)
	}
	return nil
}
