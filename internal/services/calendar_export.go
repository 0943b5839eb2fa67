package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/models"
)

type calendarRow struct {
	Room     models.Room
	Calendar models.RoomCalendar
}

var statusFill = map[models.LiveStatus]string{
	models.LiveStatusReserved:    "#FFF2CC",
	models.LiveStatusOccupied:    "#F8CBAD",
	models.LiveStatusMaintenance: "#D9D9D9",
	models.LiveStatusInactive:    "#BFBFBF",
}

func renderCalendarWorkbook(year int, month time.Month, rows []calendarRow) (out []byte, err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", cerr)
		}
	}()

	sheet := fmt.Sprintf("%04d-%02d", year, int(month))
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	statusStyles := make(map[models.LiveStatus]int, len(statusFill))
	for status, color := range statusFill {
		id, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create %s style: %w", status, err)
		}
		statusStyles[status] = id
	}

	days := models.NewDate(year, month+1, 1).AddDays(-1).Day
	headers := []interface{}{"Habitación", "Piso", "Tipo"}
	for d := 1; d <= days; d++ {
		headers = append(headers, d)
	}
	if err := setRow(f, sheet, 1, headers); err != nil {
		return nil, err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, r := range rows {
		rowNum := i + 2
		values := []interface{}{r.Room.Number, r.Room.Floor, string(r.Room.Type)}
		for _, day := range r.Calendar.Days {
			values = append(values, string(day.Status))
		}
		if err := setRow(f, sheet, rowNum, values); err != nil {
			return nil, err
		}

		for j, day := range r.Calendar.Days {
			style, ok := statusStyles[day.Status]
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(4+j, rowNum)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
				return nil, fmt.Errorf("failed to style %s: %w", cell, err)
			}
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      3,
		YSplit:      1,
		TopLeftCell: "D2",
		ActivePane:  "bottomRight",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
