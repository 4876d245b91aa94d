package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"github.com/vitalcycle/backend/internal/model"
)

func (s *srv) startMedalImport(cctx *cli.Context) error {
	if err := s.loadDomains(); err != nil {
		return err
	}

	path := cctx.String("file")
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	format := cctx.String("format")
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			format = model.CatalogFormatYAML
		default:
			format = model.CatalogFormatTOML
		}
	}

	resp, err := s.medalDomain.ImportMedalCatalog(s.ctx, &model.ImportMedalCatalogRequest{
		Format: format,
		Data:   data,
	})
	if err != nil {
		return err
	}

	return printJSON(resp)
}

func (s *srv) startMedalList(*cli.Context) error {
	if err := s.loadDomains(); err != nil {
		return err
	}

	resp, err := s.medalDomain.GetAllMedals(s.ctx, &model.GetAllMedalsRequest{})
	if err != nil {
		return err
	}

	return printJSON(resp)
}
