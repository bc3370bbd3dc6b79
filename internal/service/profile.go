package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rihla-travel/portal/internal/intake"
	"github.com/rihla-travel/portal/internal/model"
	"github.com/rihla-travel/portal/internal/repository"
	"github.com/rihla-travel/portal/internal/validation"
)

type ProfileService struct {
	profileRepo     repository.ProfileRepository
	applicationRepo repository.ApplicationRepository
}

func NewProfileService(profileRepo repository.ProfileRepository, applicationRepo repository.ApplicationRepository) *ProfileService {
	return &ProfileService{
		profileRepo:     profileRepo,
		applicationRepo: applicationRepo,
	}
}

func (s *ProfileService) ByUserID(userID string) (*model.Profile, error) {
	return s.profileRepo.ByUserID(userID)
}

// Update changes name and phone. An empty local number keeps the phone unset.
func (s *ProfileService) Update(userID, name, countryCode, phone string) error {
	name = strings.TrimSpace(name)

	err := validation.ValidateName(name)
	if err != nil {
		return err
	}

	normalized := ""
	if strings.TrimSpace(phone) != "" {
		normalized, err = validation.NormalizePhone(countryCode, phone)
		if err != nil {
			return err
		}
	}

	return s.profileRepo.Update(userID, name, normalized)
}

// UserApplications is the user's own submissions for one service.
type UserApplications struct {
	Service *intake.Service
	Rows    []model.Row
}

// Applications lists the user's submissions, newest first, grouped by
// service. Services without submissions are left out.
func (s *ProfileService) Applications(ctx context.Context, userID string) ([]UserApplications, error) {
	var out []UserApplications
	for _, svc := range intake.Services() {
		if svc.Form == nil {
			continue
		}
		rows, err := s.applicationRepo.Select(ctx, repository.Query{
			Table:   svc.Table,
			Columns: []string{"id", "created_at"},
			OrderBy: "created_at",
			Limit:   intake.DashboardLimit,
			Filter:  map[string]any{"user_id": userID},
		})
		if err != nil {
			return nil, fmt.Errorf("list %s applications: %w", svc.Key, err)
		}
		if len(rows) > 0 {
			out = append(out, UserApplications{Service: svc, Rows: rows})
		}
	}
	return out, nil
}
