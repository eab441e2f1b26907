package service

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pustakalaya/intake-service/internal/errs"
	"github.com/pustakalaya/intake-service/internal/model"
	"github.com/pustakalaya/intake-service/internal/repository"
	"github.com/pustakalaya/intake-service/internal/storage"
	"github.com/pustakalaya/intake-service/pkg/auth"
	"github.com/pustakalaya/intake-service/pkg/kafka"
	"github.com/pustakalaya/intake-service/pkg/validate"
)

type Service struct {
	log    *zap.Logger
	repo   repository.Repository
	store  *storage.CertificateStore
	events kafka.Enqueuer
	auth   auth.Config
}

// NewService wires the intake business logic. events may be nil when no
// broker is configured; publishing is then skipped.
func NewService(repo repository.Repository, store *storage.CertificateStore, events kafka.Enqueuer, authCfg auth.Config, log *zap.Logger) *Service {
	return &Service{
		log:    log,
		repo:   repo,
		store:  store,
		events: events,
		auth:   authCfg,
	}
}

// AddBooks validates the donor descriptor and runs the intake transaction.
// Book-level shape checks happen at binding time; the donor checks depend
// on is_new_user and live here.
func (s *Service) AddBooks(ctx context.Context, req model.AddBooksRequest) (model.AddBooksResponse, error) {
	if req.IsNewUser {
		if req.UserData.Name == "" || req.UserData.Mobile == "" {
			return model.AddBooksResponse{}, errs.NewValidationError("user name and mobile are required")
		}
		if !validate.Mobile(req.UserData.Mobile) {
			return model.AddBooksResponse{}, errs.NewValidationError("invalid mobile number format")
		}
	} else if req.UserData.UID <= 0 {
		return model.AddBooksResponse{}, errs.NewValidationError("user id is required for existing user")
	}

	resp, err := s.repo.CreateDonation(ctx, req)
	if err != nil {
		return model.AddBooksResponse{}, err
	}

	s.publishDonation(resp, req.LibrarianID)
	return resp, nil
}

// publishDonation is best effort: a broker failure never fails the intake.
func (s *Service) publishDonation(resp model.AddBooksResponse, librarianID int) {
	if s.events == nil {
		return
	}
	event := kafka.DonationEvent{
		DonorID:     resp.UserID,
		BookIDs:     resp.BookIDs,
		LibrarianID: librarianID,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.events.Enqueue(kafka.DonationTopic, event); err != nil {
		s.log.Warn("publish donation event", zap.Error(err))
	}
}

func (s *Service) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	email := strings.TrimSpace(req.Email)

	librarian, err := s.repo.GetLibrarianByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.LoginResponse{}, errs.ErrInvalidCredentials
		}
		return model.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(librarian.PasswordHash), []byte(req.Password)); err != nil {
		return model.LoginResponse{}, errs.ErrInvalidCredentials
	}

	if err := s.repo.TouchLastLogin(ctx, librarian.ID); err != nil {
		s.log.Warn("touch last login", zap.Int("id", librarian.ID), zap.Error(err))
	}

	token, err := auth.NewToken(s.auth, auth.Profile{
		ID:    librarian.ID,
		Name:  librarian.Name,
		Email: librarian.Email,
		Role:  librarian.Role,
	})
	if err != nil {
		return model.LoginResponse{}, errors.Wrap(err, "sign token")
	}

	librarian.PasswordHash = ""
	return model.LoginResponse{
		User:  librarian,
		Token: token,
	}, nil
}

func (s *Service) SearchDonor(ctx context.Context, mobile string) (model.Donor, error) {
	mobile = strings.TrimSpace(mobile)
	if mobile == "" {
		return model.Donor{}, errs.NewValidationError("mobile number is required")
	}
	if !validate.Mobile(mobile) {
		return model.Donor{}, errs.NewValidationError("invalid mobile number format")
	}
	return s.repo.GetDonorByMobile(ctx, mobile)
}

func (s *Service) SaveCertificate(fh *multipart.FileHeader) (model.UploadResult, error) {
	return s.store.Save(fh)
}
