// Package export renders aggregator output as a multi-sheet spreadsheet for
// the admin export endpoint.
package export

import (
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/models"
)

const (
	SheetSummary = "Summary"
	SheetDaily   = "Daily"
	SheetHourly  = "Hourly"
	SheetDevices = "Devices"
	SheetRecent  = "Recent Activity"
)

// Workbook builds an xlsx workbook from a campaign's analytics.
func Workbook(a *models.CampaignAnalytics) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("failed to name summary sheet: %w", err)
	}

	writeSummary(f, a)
	if err := writeDaily(f, a.DailyData); err != nil {
		return nil, err
	}
	if err := writeHourly(f, a.HourlyData); err != nil {
		return nil, err
	}
	if err := writeDevices(f, a.DeviceBreakdown); err != nil {
		return nil, err
	}
	if err := writeRecent(f, a.RecentActivity); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, a *models.CampaignAnalytics) {
	rows := [][2]interface{}{
		{"Campaign Code", a.CampaignCode},
		{"Business Name", a.BusinessName},
		{"Target URL", a.TargetURL},
		{"Created At", a.CreatedAt.UTC().Format(time.RFC3339)},
		{"Total Scans", a.TotalScans},
		{"Unique Visitors", a.UniqueVisitors},
		{"Scans Today", a.ScansToday},
		{"Scans This Week", a.ScansThisWeek},
	}
	for i, row := range rows {
		f.SetCellValue(SheetSummary, fmt.Sprintf("A%d", i+1), row[0])
		f.SetCellValue(SheetSummary, fmt.Sprintf("B%d", i+1), row[1])
	}
}

func writeDaily(f *excelize.File, daily []models.DailyBucket) error {
	if _, err := f.NewSheet(SheetDaily); err != nil {
		return fmt.Errorf("failed to add daily sheet: %w", err)
	}
	f.SetCellValue(SheetDaily, "A1", "Date")
	f.SetCellValue(SheetDaily, "B1", "Scans")
	for i, bucket := range daily {
		f.SetCellValue(SheetDaily, fmt.Sprintf("A%d", i+2), bucket.Date)
		f.SetCellValue(SheetDaily, fmt.Sprintf("B%d", i+2), bucket.Count)
	}
	return nil
}

func writeHourly(f *excelize.File, hourly []models.HourlyBucket) error {
	if _, err := f.NewSheet(SheetHourly); err != nil {
		return fmt.Errorf("failed to add hourly sheet: %w", err)
	}
	f.SetCellValue(SheetHourly, "A1", "Hour (UTC)")
	f.SetCellValue(SheetHourly, "B1", "Scans")
	for i, bucket := range hourly {
		f.SetCellValue(SheetHourly, fmt.Sprintf("A%d", i+2), bucket.Hour)
		f.SetCellValue(SheetHourly, fmt.Sprintf("B%d", i+2), bucket.Count)
	}
	return nil
}

func writeDevices(f *excelize.File, devices map[string]int) error {
	if _, err := f.NewSheet(SheetDevices); err != nil {
		return fmt.Errorf("failed to add devices sheet: %w", err)
	}
	f.SetCellValue(SheetDevices, "A1", "Device")
	f.SetCellValue(SheetDevices, "B1", "Scans")

	// Stable row order for a reproducible workbook.
	names := make([]string, 0, len(devices))
	for name := range devices {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		f.SetCellValue(SheetDevices, fmt.Sprintf("A%d", i+2), name)
		f.SetCellValue(SheetDevices, fmt.Sprintf("B%d", i+2), devices[name])
	}
	return nil
}

func writeRecent(f *excelize.File, recent []models.ScanActivity) error {
	if _, err := f.NewSheet(SheetRecent); err != nil {
		return fmt.Errorf("failed to add recent activity sheet: %w", err)
	}
	f.SetCellValue(SheetRecent, "A1", "Timestamp")
	f.SetCellValue(SheetRecent, "B1", "City")
	f.SetCellValue(SheetRecent, "C1", "Country")
	f.SetCellValue(SheetRecent, "D1", "Device")

	for i, activity := range recent {
		row := i + 2
		f.SetCellValue(SheetRecent, fmt.Sprintf("A%d", row), activity.Timestamp.UTC().Format(time.RFC3339))
		if activity.City != nil {
			f.SetCellValue(SheetRecent, fmt.Sprintf("B%d", row), *activity.City)
		}
		if activity.Country != nil {
			f.SetCellValue(SheetRecent, fmt.Sprintf("C%d", row), *activity.Country)
		}
		f.SetCellValue(SheetRecent, fmt.Sprintf("D%d", row), activity.DeviceType)
	}
	return nil
}
