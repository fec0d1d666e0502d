package services

import (
	"context"

	"github.com/dmitrijs2005/irccwatch/internal/client/client"
	"github.com/dmitrijs2005/irccwatch/internal/client/models"
)

// AdminService backs the admin screen. The backend enforces the role; a
// non-admin caller gets client.ErrForbidden.
type AdminService interface {
	Dashboard(ctx context.Context) (*models.AdminStats, error)
	CheckAll(ctx context.Context) (string, error)
	TestEmail(ctx context.Context) (string, error)
}

type adminService struct {
	api client.API
}

func NewAdminService(api client.API) AdminService {
	return &adminService{api: api}
}

func (s *adminService) Dashboard(ctx context.Context) (*models.AdminStats, error) {
	return s.api.AdminDashboard(ctx)
}

func (s *adminService) CheckAll(ctx context.Context) (string, error) {
	return s.api.CheckAll(ctx)
}

func (s *adminService) TestEmail(ctx context.Context) (string, error) {
	return s.api.TestEmail(ctx)
}
