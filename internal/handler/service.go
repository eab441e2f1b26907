package handler

import (
	"context"
	"mime/multipart"

	"github.com/pustakalaya/intake-service/internal/model"
	"github.com/pustakalaya/intake-service/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type IntakeService interface {
	AddBooks(ctx context.Context, req model.AddBooksRequest) (model.AddBooksResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error)
	SearchDonor(ctx context.Context, mobile string) (model.Donor, error)
	SaveCertificate(fh *multipart.FileHeader) (model.UploadResult, error)
}

var _ IntakeService = (*service.Service)(nil)
