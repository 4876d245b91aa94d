package main

import (
	"github.com/urfave/cli/v2"
	"github.com/vitalcycle/backend/internal/model"
	"github.com/vitalcycle/backend/migration"
	"github.com/vitalcycle/backend/pkg/xcontext"
)

func (s *srv) startMigrate(cctx *cli.Context) error {
	if err := migration.Run(s.ctx, cctx.String("version")); err != nil {
		return err
	}

	if !cctx.Bool("seed") {
		xcontext.Logger(s.ctx).Infof("Migrated database")
		return nil
	}

	if err := s.loadDomains(); err != nil {
		return err
	}

	resp, err := s.medalDomain.ImportMedalCatalog(s.ctx, &model.ImportMedalCatalogRequest{
		Format: model.CatalogFormatTOML,
		Data:   migration.DefaultMedalCatalog,
	})
	if err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Migrated database and seeded %d medals", len(resp.Names))
	return nil
}
