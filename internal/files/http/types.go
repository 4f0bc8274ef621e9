package http

import "github.com/codehive-ide/codehive-backend/internal/files/service"

// Handler bundles the dependencies for file HTTP endpoints.
type Handler struct {
	svc *service.FileService
}

func New(svc *service.FileService) *Handler {
	return &Handler{svc: svc}
}
