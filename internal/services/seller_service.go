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
	"sellerhub/internal/validate"
)

// ApplyInput is the request body of a seller application.
type ApplyInput struct {
	StoreName        string `json:"storeName" validate:"required,max=120"`
	StoreDescription string `json:"storeDescription" validate:"max=2000"`
	GSTNumber        string `json:"gstNumber" validate:"omitempty,gstin"`
	Address          string `json:"address" validate:"required,max=500"`
	PhoneNumber      string `json:"phoneNumber" validate:"required,phone"`
}

func (in ApplyInput) profile() (domain.StoreProfile, error) {
	in.StoreName = strings.TrimSpace(in.StoreName)
	in.StoreDescription = strings.TrimSpace(in.StoreDescription)
	in.Address = strings.TrimSpace(in.Address)
	in.GSTNumber = validate.GSTIN(in.GSTNumber)
	in.PhoneNumber = validate.Phone(in.PhoneNumber)
	if err := validate.Struct(in); err != nil {
		return domain.StoreProfile{}, apperr.Validation(validate.Message(err))
	}
	return domain.StoreProfile{
		StoreName:        in.StoreName,
		StoreDescription: in.StoreDescription,
		GSTNumber:        in.GSTNumber,
		Address:          in.Address,
		PhoneNumber:      in.PhoneNumber,
	}, nil
}

type SellerService struct {
	Users   *repos.UserRepo
	Sellers *repos.SellerRepo
	Now     func() time.Time
}

func NewSellerService(users *repos.UserRepo, sellers *repos.SellerRepo) *SellerService {
	return &SellerService{Users: users, Sellers: sellers, Now: time.Now}
}

const msgDuplicate = "You have already applied to become a seller"

// Apply files a pending seller application for user. Identity fields are copied from
// the user row, never from the request body.
func (s *SellerService) Apply(ctx context.Context, user *domain.User, in ApplyInput) (domain.Seller, error) {
	if user == nil {
		return domain.Seller{}, apperr.Unauthenticated("Unauthorized: User not authenticated.")
	}
	_, err := s.Sellers.ByUserID(ctx, user.ID)
	switch {
	case err == nil:
		return domain.Seller{}, apperr.DuplicateApplication(msgDuplicate)
	case !errors.Is(err, sql.ErrNoRows):
		return domain.Seller{}, apperr.Store("Failed to submit application", err)
	}

	p, err := in.profile()
	if err != nil {
		return domain.Seller{}, err
	}

	at := stamp(s.Now)
	seller := domain.Seller{
		UserID:           user.ID,
		FirebaseUID:      user.FirebaseUID,
		Email:            user.Email,
		Name:             user.Name,
		StoreName:        p.StoreName,
		StoreDescription: p.StoreDescription,
		GSTNumber:        p.GSTNumber,
		Address:          p.Address,
		PhoneNumber:      p.PhoneNumber,
		ApprovalStatus:   domain.StatusPending,
		CreatedAt:        at,
		UpdatedAt:        at,
	}
	if err := s.Sellers.Create(ctx, &seller); err != nil {
		if errors.Is(err, repos.ErrDuplicate) {
			return domain.Seller{}, apperr.DuplicateApplication(msgDuplicate)
		}
		return domain.Seller{}, apperr.Store("Failed to submit application", err)
	}
	return seller, nil
}

// Reapply returns a rejected application to the review queue with a new profile.
func (s *SellerService) Reapply(ctx context.Context, user *domain.User, in ApplyInput) (domain.Seller, error) {
	if user == nil {
		return domain.Seller{}, apperr.Unauthenticated("Unauthorized: User not authenticated.")
	}
	p, err := in.profile()
	if err != nil {
		return domain.Seller{}, err
	}
	seller, err := s.Sellers.Resubmit(ctx, user.ID, p, stamp(s.Now))
	switch {
	case err == nil:
		return seller, nil
	case errors.Is(err, sql.ErrNoRows):
		return domain.Seller{}, apperr.NotFound("Seller profile not found.")
	case errors.Is(err, domain.ErrInvalidTransition):
		return domain.Seller{}, apperr.InvalidTransition("Only rejected applications can be resubmitted", err)
	default:
		return domain.Seller{}, apperr.Store("Failed to resubmit application", err)
	}
}

// OwnProfile resolves the caller's user row by external identity, then its seller row.
func (s *SellerService) OwnProfile(ctx context.Context, p domain.Principal) (domain.Seller, error) {
	if p.UID == "" {
		return domain.Seller{}, apperr.Unauthenticated("Unauthorized: User not authenticated.")
	}
	user, err := s.Users.ByFirebaseUID(ctx, p.UID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Seller{}, apperr.NotFound("User not found.")
	} else if err != nil {
		return domain.Seller{}, apperr.Store("Failed to fetch seller profile", err)
	}

	seller, err := s.Sellers.ByUserID(ctx, user.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Seller{}, apperr.NotFound("Seller profile not found.")
	} else if err != nil {
		return domain.Seller{}, apperr.Store("Failed to fetch seller profile", err)
	}
	return seller, nil
}
