package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/monastery360/service-travel/internal/domain/booking"
	"github.com/phpdave11/gofpdf"
)

// BookingReceipt renders a one-page PDF confirmation for rec.
func BookingReceipt(rec booking.Record, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.UTC
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Receipt", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING CONFIRMED")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		"Booking ID  : " + rec.ID(),
		"Booked at   : " + rec.BookedAt().In(loc).Format("2006-01-02 15:04"),
		"Status      : " + rec.Status().String(),
		"From        : " + rec.Source().Name,
		"To          : " + rec.Destination().Name,
		"Transport   : " + rec.TransportName(),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, fmt.Sprintf("Fare: Rs. %d", rec.Fare()))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please show this receipt to your driver. Carry a valid ID and any permits required for restricted areas.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
