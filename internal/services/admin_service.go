package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"sellerhub/internal/apperr"
	"sellerhub/internal/domain"
	"sellerhub/internal/repos"
)

type AdminService struct {
	Sellers *repos.SellerRepo
	Now     func() time.Time
}

func NewAdminService(sellers *repos.SellerRepo) *AdminService {
	return &AdminService{Sellers: sellers, Now: time.Now}
}

// ListAllSellers returns the whole queue, oldest application first.
func (s *AdminService) ListAllSellers(ctx context.Context) ([]domain.Seller, error) {
	out, err := s.Sellers.ListAll(ctx)
	if err != nil {
		return nil, apperr.Store("Failed to fetch sellers", err)
	}
	return out, nil
}

func (s *AdminService) ListPending(ctx context.Context) ([]domain.Seller, error) {
	out, err := s.Sellers.ListByStatus(ctx, domain.StatusPending)
	if err != nil {
		return nil, apperr.Store("Failed to fetch pending sellers", err)
	}
	return out, nil
}

// Approve marks the application approved and promotes its user to the seller role
// in the same transaction.
func (s *AdminService) Approve(ctx context.Context, sellerID int64) (domain.Seller, error) {
	out, err := s.Sellers.Decide(ctx, sellerID, repos.Decision{Status: domain.StatusApproved, At: stamp(s.Now)})
	return out, decisionErr(err, "Failed to approve seller")
}

// Reject marks the application rejected and keeps the reason for the applicant.
func (s *AdminService) Reject(ctx context.Context, sellerID int64, reason string) (domain.Seller, error) {
	out, err := s.Sellers.Decide(ctx, sellerID, repos.Decision{
		Status: domain.StatusRejected,
		Reason: strings.TrimSpace(reason),
		At:     stamp(s.Now),
	})
	return out, decisionErr(err, "Failed to reject seller")
}

func decisionErr(err error, storeMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return apperr.NotFound("Seller not found")
	case errors.Is(err, domain.ErrInvalidTransition):
		return apperr.InvalidTransition("Seller application has already been reviewed", err)
	default:
		return apperr.Store(storeMsg, err)
	}
}
