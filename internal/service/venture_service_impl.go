package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/miv-platform/miv/internal/db"
	"github.com/miv-platform/miv/internal/domain"
	"github.com/miv-platform/miv/internal/repository"
)

type ventureService struct {
	uow        db.UnitOfWork
	ventures   repository.VentureRepo
	documents  repository.DocumentRepo
	capital    repository.CapitalActivityRepo
	activities repository.ActivityRepo
}

// NewVentureService creates the venture use-case layer. Read paths go
// through the supplied repos; every mutation runs in its own transaction
// together with its audit-trail write.
func NewVentureService(
	uow db.UnitOfWork,
	ventures repository.VentureRepo,
	documents repository.DocumentRepo,
	capital repository.CapitalActivityRepo,
	activities repository.ActivityRepo,
) VentureService {
	return &ventureService{
		uow:        uow,
		ventures:   ventures,
		documents:  documents,
		capital:    capital,
		activities: activities,
	}
}

func (s *ventureService) Create(ctx context.Context, actorID string, in CreateVentureInput) (*domain.Venture, error) {
	var fe fieldErrors
	if strings.TrimSpace(in.Name) == "" {
		fe.add("name", "name is required")
	}
	if strings.TrimSpace(in.Sector) == "" {
		fe.add("sector", "sector is required")
	}
	if strings.TrimSpace(in.Location) == "" {
		fe.add("location", "location is required")
	}
	stage := domain.VentureStage(in.Stage)
	if in.Stage == "" {
		stage = domain.StageIntake
	} else if !domain.ValidVentureStages[stage] {
		fe.add("stage", fmt.Sprintf("unknown stage %q", in.Stage))
	}
	status := domain.VentureStatus(in.Status)
	if in.Status == "" {
		status = domain.VentureActive
	} else if !domain.ValidVentureStatuses[status] {
		fe.add("status", fmt.Sprintf("unknown status %q", in.Status))
	}
	if in.ContactEmail != "" && !domain.ValidEmail(in.ContactEmail) {
		fe.add("contactEmail", "must be a valid email address")
	}
	if in.FundingRaised < 0 {
		fe.add("fundingRaised", "must be non-negative")
	}
	if in.FundingSought < 0 {
		fe.add("fundingSought", "must be non-negative")
	}
	if in.TeamSize < 0 {
		fe.add("teamSize", "must be non-negative")
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	venture := &domain.Venture{
		ID:                   uuid.New().String(),
		Name:                 in.Name,
		Sector:               in.Sector,
		Location:             in.Location,
		Stage:                stage,
		Status:               status,
		FundingRaised:        in.FundingRaised,
		FundingSought:        in.FundingSought,
		TeamSize:             in.TeamSize,
		ContactEmail:         in.ContactEmail,
		ContactPhone:         in.ContactPhone,
		Website:              in.Website,
		OperationalReadiness: in.OperationalReadiness,
		CapitalReadiness:     in.CapitalReadiness,
		CreatedByID:          actorID,
		AssignedToID:         in.AssignedToID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txVentures := repository.NewSQLiteVentureRepo(tx)
		txActivities := repository.NewSQLiteActivityRepo(tx)

		if err := txVentures.Create(ctx, venture); err != nil {
			return err
		}
		return txActivities.Create(ctx, &domain.Activity{
			ID:        uuid.New().String(),
			Type:      domain.ActivityVentureCreated,
			Title:     "Venture created",
			VentureID: &venture.ID,
			UserID:    actorID,
			Metadata:  map[string]string{"ventureName": venture.Name},
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return venture, nil
}

// Get assembles the venture detail inside a read-only transaction so the
// relations and counts reflect a single view of the store.
func (s *ventureService) Get(ctx context.Context, id string) (*VentureDetail, error) {
	var detail *VentureDetail
	err := s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		d, err := loadVentureDetail(ctx, tx, id)
		if err != nil {
			return err
		}
		detail = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func loadVentureDetail(ctx context.Context, tx db.DBTX, id string) (*VentureDetail, error) {
	ventures := repository.NewSQLiteVentureRepo(tx)
	metrics := repository.NewSQLiteMetricRepo(tx)
	documents := repository.NewSQLiteDocumentRepo(tx)
	activities := repository.NewSQLiteActivityRepo(tx)
	capital := repository.NewSQLiteCapitalActivityRepo(tx)

	venture, err := ventures.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &VentureDetail{Venture: *venture}

	if detail.Metrics, err = metrics.ListByVenture(ctx, id); err != nil {
		return nil, err
	}
	if detail.Documents, err = documents.ListByVenture(ctx, id); err != nil {
		return nil, err
	}
	if detail.Activities, err = activities.ListByVenture(ctx, id, recentActivityLimit); err != nil {
		return nil, err
	}
	if detail.CapitalActivities, err = capital.ListByVenture(ctx, id); err != nil {
		return nil, err
	}
	counts, err := ventures.CountChildren(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.Counts = *counts
	return detail, nil
}

func (s *ventureService) List(ctx context.Context, filter repository.VentureFilter) ([]*domain.Venture, error) {
	return s.ventures.List(ctx, filter)
}

func (s *ventureService) Update(ctx context.Context, actorID, id string, in UpdateVentureInput) (*VentureDetail, error) {
	if err := validateVentureUpdate(in); err != nil {
		return nil, err
	}

	var detail *VentureDetail
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txVentures := repository.NewSQLiteVentureRepo(tx)
		txActivities := repository.NewSQLiteActivityRepo(tx)

		venture, err := txVentures.GetByID(ctx, id)
		if err != nil {
			return err
		}

		changed := applyVentureUpdate(venture, in)
		if len(changed) > 0 {
			venture.UpdatedAt = time.Now().UTC()
			if err := txVentures.Update(ctx, venture); err != nil {
				return err
			}
			// Field names only: the ledger must not leak the values.
			if err := txActivities.Create(ctx, &domain.Activity{
				ID:        uuid.New().String(),
				Type:      domain.ActivityVentureUpdated,
				Title:     "Venture updated",
				VentureID: &venture.ID,
				UserID:    actorID,
				Metadata:  map[string]string{"changedFields": strings.Join(changed, ",")},
				CreatedAt: venture.UpdatedAt,
			}); err != nil {
				return err
			}
		}

		detail, err = loadVentureDetail(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func validateVentureUpdate(in UpdateVentureInput) error {
	var fe fieldErrors
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		fe.add("name", "name cannot be empty")
	}
	if in.Sector != nil && strings.TrimSpace(*in.Sector) == "" {
		fe.add("sector", "sector cannot be empty")
	}
	if in.Location != nil && strings.TrimSpace(*in.Location) == "" {
		fe.add("location", "location cannot be empty")
	}
	if in.Stage != nil && !domain.ValidVentureStages[domain.VentureStage(*in.Stage)] {
		fe.add("stage", fmt.Sprintf("unknown stage %q", *in.Stage))
	}
	if in.Status != nil && !domain.ValidVentureStatuses[domain.VentureStatus(*in.Status)] {
		fe.add("status", fmt.Sprintf("unknown status %q", *in.Status))
	}
	if in.ContactEmail != nil && *in.ContactEmail != "" && !domain.ValidEmail(*in.ContactEmail) {
		fe.add("contactEmail", "must be a valid email address")
	}
	if in.FundingRaised != nil && *in.FundingRaised < 0 {
		fe.add("fundingRaised", "must be non-negative")
	}
	if in.FundingSought != nil && *in.FundingSought < 0 {
		fe.add("fundingSought", "must be non-negative")
	}
	if in.TeamSize != nil && *in.TeamSize < 0 {
		fe.add("teamSize", "must be non-negative")
	}
	return fe.err()
}

// applyVentureUpdate copies supplied fields onto the venture and returns the
// names of the fields that were supplied.
func applyVentureUpdate(v *domain.Venture, in UpdateVentureInput) []string {
	var changed []string
	if in.Name != nil {
		v.Name = *in.Name
		changed = append(changed, "name")
	}
	if in.Sector != nil {
		v.Sector = *in.Sector
		changed = append(changed, "sector")
	}
	if in.Location != nil {
		v.Location = *in.Location
		changed = append(changed, "location")
	}
	if in.Stage != nil {
		v.Stage = domain.VentureStage(*in.Stage)
		changed = append(changed, "stage")
	}
	if in.Status != nil {
		v.Status = domain.VentureStatus(*in.Status)
		changed = append(changed, "status")
	}
	if in.FundingRaised != nil {
		v.FundingRaised = *in.FundingRaised
		changed = append(changed, "fundingRaised")
	}
	if in.FundingSought != nil {
		v.FundingSought = *in.FundingSought
		changed = append(changed, "fundingSought")
	}
	if in.TeamSize != nil {
		v.TeamSize = *in.TeamSize
		changed = append(changed, "teamSize")
	}
	if in.ContactEmail != nil {
		v.ContactEmail = *in.ContactEmail
		changed = append(changed, "contactEmail")
	}
	if in.ContactPhone != nil {
		v.ContactPhone = *in.ContactPhone
		changed = append(changed, "contactPhone")
	}
	if in.Website != nil {
		v.Website = *in.Website
		changed = append(changed, "website")
	}
	if in.OperationalReadiness != nil {
		v.OperationalReadiness = *in.OperationalReadiness
		changed = append(changed, "operationalReadiness")
	}
	if in.CapitalReadiness != nil {
		v.CapitalReadiness = *in.CapitalReadiness
		changed = append(changed, "capitalReadiness")
	}
	if in.AssignedToID != nil {
		v.AssignedToID = in.AssignedToID
		changed = append(changed, "assignedToId")
	}
	return changed
}

// Delete removes the venture and its children via cascade, then records the
// deletion as a non-venture-scoped ledger entry (the venture row is gone, so
// the audit record cannot reference it).
func (s *ventureService) Delete(ctx context.Context, actorID, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txVentures := repository.NewSQLiteVentureRepo(tx)
		txActivities := repository.NewSQLiteActivityRepo(tx)

		venture, err := txVentures.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := txVentures.Delete(ctx, id); err != nil {
			return err
		}
		return txActivities.Create(ctx, &domain.Activity{
			ID:          uuid.New().String(),
			Type:        domain.ActivityVentureDeleted,
			Title:       "Venture deleted",
			Description: fmt.Sprintf("Venture %q was removed from the pipeline", venture.Name),
			UserID:      actorID,
			Metadata: map[string]string{
				"ventureId":   venture.ID,
				"ventureName": venture.Name,
			},
			CreatedAt: time.Now().UTC(),
		})
	})
}

func (s *ventureService) AddDocument(ctx context.Context, actorID, ventureID string, in CreateDocumentInput) (*domain.Document, error) {
	var fe fieldErrors
	if strings.TrimSpace(in.Name) == "" {
		fe.add("name", "name is required")
	}
	if strings.TrimSpace(in.URL) == "" {
		fe.add("url", "url is required")
	}
	if in.Size < 0 {
		fe.add("size", "must be non-negative")
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := &domain.Document{
		ID:         uuid.New().String(),
		VentureID:  ventureID,
		Name:       in.Name,
		Type:       in.Type,
		URL:        in.URL,
		Size:       in.Size,
		MimeType:   in.MimeType,
		UploadedAt: now,
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txVentures := repository.NewSQLiteVentureRepo(tx)
		txDocuments := repository.NewSQLiteDocumentRepo(tx)
		txActivities := repository.NewSQLiteActivityRepo(tx)

		if _, err := txVentures.GetByID(ctx, ventureID); err != nil {
			return err
		}
		if err := txDocuments.Create(ctx, doc); err != nil {
			return err
		}
		return txActivities.Create(ctx, &domain.Activity{
			ID:        uuid.New().String(),
			Type:      domain.ActivityDocumentUploaded,
			Title:     "Document uploaded",
			VentureID: &ventureID,
			UserID:    actorID,
			Metadata:  map[string]string{"documentName": doc.Name},
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *ventureService) ListDocuments(ctx context.Context, ventureID string) ([]*domain.Document, error) {
	if _, err := s.ventures.GetByID(ctx, ventureID); err != nil {
		return nil, err
	}
	return s.documents.ListByVenture(ctx, ventureID)
}

func (s *ventureService) AddCapitalActivity(ctx context.Context, actorID, ventureID string, in CreateCapitalActivityInput) (*domain.CapitalActivity, error) {
	var fe fieldErrors
	capType := domain.CapitalType(in.Type)
	if !domain.ValidCapitalTypes[capType] {
		fe.add("type", fmt.Sprintf("unknown capital type %q", in.Type))
	}
	capStatus := domain.CapitalStatus(in.Status)
	if in.Status == "" {
		capStatus = domain.CapitalRequested
	} else if !domain.ValidCapitalStatuses[capStatus] {
		fe.add("status", fmt.Sprintf("unknown capital status %q", in.Status))
	}
	if in.Amount < 0 {
		fe.add("amount", "must be non-negative")
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}
	ca := &domain.CapitalActivity{
		ID:        uuid.New().String(),
		VentureID: ventureID,
		Type:      capType,
		Amount:    in.Amount,
		Currency:  currency,
		Status:    capStatus,
		Note:      in.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txVentures := repository.NewSQLiteVentureRepo(tx)
		txCapital := repository.NewSQLiteCapitalActivityRepo(tx)
		txActivities := repository.NewSQLiteActivityRepo(tx)

		if _, err := txVentures.GetByID(ctx, ventureID); err != nil {
			return err
		}
		if err := txCapital.Create(ctx, ca); err != nil {
			return err
		}
		return txActivities.Create(ctx, &domain.Activity{
			ID:        uuid.New().String(),
			Type:      domain.ActivityCapitalActivityAdded,
			Title:     "Capital activity recorded",
			VentureID: &ventureID,
			UserID:    actorID,
			Metadata:  map[string]string{"capitalType": string(ca.Type)},
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return ca, nil
}

func (s *ventureService) ListCapitalActivities(ctx context.Context, ventureID string) ([]*domain.CapitalActivity, error) {
	if _, err := s.ventures.GetByID(ctx, ventureID); err != nil {
		return nil, err
	}
	return s.capital.ListByVenture(ctx, ventureID)
}

func (s *ventureService) RecentActivities(ctx context.Context, limit int) ([]*repository.ActivityWithContext, error) {
	if limit <= 0 {
		limit = recentActivityLimit
	}
	return s.activities.ListRecent(ctx, limit)
}
