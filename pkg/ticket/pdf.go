package ticket

import (
	"bytes"
	"fmt"

	"bus-booking/internal/data/entity"

	"github.com/phpdave11/gofpdf"
)

// Render builds a printable boarding ticket for one booking.
func Render(booking *entity.Booking, schedule *entity.Schedule, bus *entity.Bus) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetTitle("Bus Ticket", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "BUS TICKET", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Booking %s", booking.ID.String()), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(40, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}

	row("Passenger", booking.UserName)
	row("Bus", bus.Name)
	row("From", schedule.StartingPoint)
	row("To", schedule.Destination)
	row("Departure", schedule.DepartureTime.Format("2006-01-02 15:04"))
	row("Arrival", schedule.ArrivalTime.Format("2006-01-02 15:04"))

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 14, fmt.Sprintf("SEAT %d", booking.SeatNumber), "1", 1, "C", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, fmt.Sprintf("Issued %s", booking.CreatedAt.Format("2006-01-02 15:04:05")), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render ticket %s: %w", booking.ID.String(), err)
	}

	return buf.Bytes(), nil
}
