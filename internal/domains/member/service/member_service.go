package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"gpevim-backend/internal/domains/member/model"
	"gpevim-backend/internal/shared/store"
)

type ServiceInterface interface {
	List(ctx context.Context) ([]model.Member, error)
	GetByID(ctx context.Context, id int64) (*model.Member, error)
	Create(ctx context.Context, req *model.MemberRequest) (*model.Member, error)
	Update(ctx context.Context, id int64, req *model.MemberRequest) (*model.Member, error)
	Delete(ctx context.Context, id int64) error
	ExportToExcel(ctx context.Context) (*excelize.File, error)
}

type memberService struct {
	repo store.Store[model.Member]
}

func NewMemberService(repo store.Store[model.Member]) ServiceInterface {
	return &memberService{repo: repo}
}

// List returns members by category rank, then collated name.
func (s *memberService) List(ctx context.Context) ([]model.Member, error) {
	members, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = make([]model.Member, 0)
	}
	model.SortForDisplay(members)
	return members, nil
}

func (s *memberService) GetByID(ctx context.Context, id int64) (*model.Member, error) {
	if id <= 0 {
		return nil, model.ErrInvalidID
	}
	return s.repo.GetByID(ctx, id)
}

func (s *memberService) Create(ctx context.Context, req *model.MemberRequest) (*model.Member, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, req.ToEntity())
}

func (s *memberService) Update(ctx context.Context, id int64, req *model.MemberRequest) (*model.Member, error) {
	if id <= 0 {
		return nil, model.ErrInvalidID
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, req.ToEntity())
}

func (s *memberService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return model.ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}

// ExportToExcel builds a workbook with the members in display order.
func (s *memberService) ExportToExcel(ctx context.Context) (*excelize.File, error) {
	members, err := s.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	f, err := buildMembersExcelFile(members)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}
	return f, nil
}
