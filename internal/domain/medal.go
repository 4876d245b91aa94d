package domain

import (
	"bytes"
	"context"
	"errors"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/vitalcycle/backend/internal/domain/medal"
	"github.com/vitalcycle/backend/internal/entity"
	"github.com/vitalcycle/backend/internal/model"
	"github.com/vitalcycle/backend/internal/repository"
	"github.com/vitalcycle/backend/pkg/enum"
	"github.com/vitalcycle/backend/pkg/errorx"
	"github.com/vitalcycle/backend/pkg/xcontext"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type MedalDomain interface {
	ImportMedalCatalog(context.Context, *model.ImportMedalCatalogRequest) (*model.ImportMedalCatalogResponse, error)
	GetAllMedals(context.Context, *model.GetAllMedalsRequest) (*model.GetAllMedalsResponse, error)
}

type medalDomain struct {
	medalRepo repository.MedalRepository
	factory   *medal.Factory
}

func NewMedalDomain(medalRepo repository.MedalRepository, factory *medal.Factory) *medalDomain {
	return &medalDomain{medalRepo: medalRepo, factory: factory}
}

// ImportMedalCatalog creates or updates the medals of a catalog file by name.
// The whole catalog is rejected if any medal is invalid.
func (d *medalDomain) ImportMedalCatalog(
	ctx context.Context, req *model.ImportMedalCatalogRequest,
) (*model.ImportMedalCatalogResponse, error) {
	catalog := model.MedalCatalog{}
	switch req.Format {
	case model.CatalogFormatTOML:
		if _, err := toml.NewDecoder(bytes.NewReader(req.Data)).Decode(&catalog); err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid toml catalog: %v", err)
		}

	case model.CatalogFormatYAML:
		if err := yaml.Unmarshal(req.Data, &catalog); err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid yaml catalog: %v", err)
		}

	default:
		return nil, errorx.New(errorx.BadRequest, "Invalid catalog format %s", req.Format)
	}

	medals := []*entity.Medal{}
	seen := map[string]bool{}
	for _, m := range catalog.Medals {
		e, err := d.toEntity(ctx, m)
		if err != nil {
			return nil, err
		}

		if seen[e.Name] {
			return nil, errorx.New(errorx.BadRequest, "Duplicated medal %s", e.Name)
		}
		seen[e.Name] = true

		medals = append(medals, e)
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	names := []string{}
	created := []string{}
	for _, e := range medals {
		existing, err := d.medalRepo.GetByName(ctx, e.Name)
		switch {
		case err == nil:
			e.ID = existing.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			created = append(created, e.Name)
		default:
			xcontext.Logger(ctx).Errorf("Cannot get medal %s: %v", e.Name, err)
			return nil, errorx.Unknown
		}

		if err := d.medalRepo.Upsert(ctx, e); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot upsert medal %s: %v", e.Name, err)
			return nil, errorx.Unknown
		}

		names = append(names, e.Name)
	}

	if _, err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit transaction: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.Logger(ctx).Infof("Imported %d medals, %d new", len(names), len(created))
	return &model.ImportMedalCatalogResponse{Names: names, Created: created}, nil
}

func (d *medalDomain) toEntity(ctx context.Context, m model.CatalogMedal) (*entity.Medal, error) {
	if m.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Require medal name")
	}

	if m.RequiredPoints < 0 || m.RequiredCycleNumber < 0 {
		return nil, errorx.New(errorx.BadRequest, "Medal %s has negative requirements", m.Name)
	}

	level := entity.LevelNovato
	if m.RequiredLevel != "" {
		var err error
		level, err = enum.ToEnum[entity.Level](m.RequiredLevel)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Medal %s has invalid level %s", m.Name, m.RequiredLevel)
		}
	}

	criterionType := entity.PointsAndLevelCriterion
	if m.Criterion.Type != "" {
		var err error
		criterionType, err = enum.ToEnum[entity.MedalCriterionType](m.Criterion.Type)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Medal %s has invalid criterion %s", m.Name, m.Criterion.Type)
		}
	}

	isActive := true
	if m.IsActive != nil {
		isActive = *m.IsActive
	}

	e := &entity.Medal{
		Base:                entity.Base{ID: uuid.NewString()},
		Name:                m.Name,
		Description:         m.Description,
		IconURL:             m.IconURL,
		RequiredPoints:      m.RequiredPoints,
		RequiredLevel:       level,
		RequiredCycleNumber: m.RequiredCycleNumber,
		Criterion: entity.MedalCriterion{
			Type: criterionType,
			Data: m.Criterion.Data,
		},
		IsActive: isActive,
	}

	if _, err := d.factory.NewCriterion(ctx, *e); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Medal %s has invalid criterion: %v", m.Name, err)
	}

	return e, nil
}

func (d *medalDomain) GetAllMedals(
	ctx context.Context, req *model.GetAllMedalsRequest,
) (*model.GetAllMedalsResponse, error) {
	medals, err := d.medalRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get medals: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Medal{}
	for i := range medals {
		statement := ""
		criterion, err := d.factory.NewCriterion(ctx, medals[i])
		if err != nil {
			xcontext.Logger(ctx).Warnf("Medal %s has invalid criterion: %v", medals[i].Name, err)
		} else {
			statement = criterion.Statement()
		}

		result = append(result, model.ConvertMedal(&medals[i], statement))
	}

	return &model.GetAllMedalsResponse{Medals: result}, nil
}
