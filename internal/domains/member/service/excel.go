package service

import (
	"github.com/xuri/excelize/v2"

	"gpevim-backend/internal/domains/member/model"
)

const MembersSheet = "Membros"

// ExcelHeaders is shared with the importer so an export can be re-imported.
var ExcelHeaders = []string{
	"id",
	"name",
	"role",
	"category",
	"image_url",
	"lattes_url",
	"research_topic",
	"created_at",
}

func buildMembersExcelFile(members []model.Member) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", MembersSheet); err != nil {
		return nil, err
	}

	for col, header := range ExcelHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(MembersSheet, cell, header); err != nil {
			return nil, err
		}
	}

	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		last, _ := excelize.CoordinatesToCellName(len(ExcelHeaders), 1)
		_ = f.SetCellStyle(MembersSheet, "A1", last, style)
	}

	for i, m := range members {
		row := []interface{}{
			m.ID,
			m.Name,
			m.Role,
			m.Category,
			m.ImageURL,
			deref(m.LattesURL),
			deref(m.ResearchTopic),
			m.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(MembersSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
