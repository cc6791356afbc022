package sweep

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/faresweep/faresweep/offer"
)

// ExportXLSX writes the ranked offers to a spreadsheet, one row per
// offer, layover minutes joined into a single cell.
func ExportXLSX(path string, offers []offer.Offer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []interface{}{"Airline", "Price", "Total minutes", "Stops", "Layover minutes", "Date"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.Wrap(err, "write header")
	}

	for i, o := range offers {
		layovers := make([]string, 0, len(o.LayoverMinutes))
		for _, m := range o.LayoverMinutes {
			layovers = append(layovers, fmt.Sprint(m))
		}
		row := []interface{}{o.Airline, o.Price, o.TotalMinutes, o.Stops, strings.Join(layovers, ", "), o.Tag}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.Wrapf(err, "write row %d", i+2)
		}
	}

	return errors.Wrapf(f.SaveAs(path), "save %s", path)
}
