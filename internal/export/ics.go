// Package export renders festivals, monasteries and bookings into
// downloadable calendar, GPS and PDF documents.
package export

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/monastery360/service-travel/internal/domain/festival"
)

// ICSProductID identifies calendars produced by this service.
const ICSProductID = "-//Sikkim Tourism//Festival Calendar//EN"

// FestivalsICS renders festivals as an all-day VCALENDAR.
// DTEND carries the festival's last day as given, not the exclusive next day.
func FestivalsICS(festivals []festival.Festival, stamp time.Time) (string, error) {
	cal := ics.NewCalendar()
	cal.SetProductId(ICSProductID)
	cal.SetMethod(ics.MethodPublish)

	for _, f := range festivals {
		start, err := time.Parse(festival.DateLayout, f.StartDate)
		if err != nil {
			return "", fmt.Errorf("festival %d start date: %w", f.ID, err)
		}
		endRaw := f.EndDate
		if endRaw == "" {
			endRaw = f.StartDate
		}
		end, err := time.Parse(festival.DateLayout, endRaw)
		if err != nil {
			return "", fmt.Errorf("festival %d end date: %w", f.ID, err)
		}

		event := cal.AddEvent(fmt.Sprintf("%d@sikkimtourism.com", f.ID))
		event.SetDtStampTime(stamp.UTC())
		event.SetAllDayStartAt(start)
		event.SetAllDayEndAt(end)
		event.SetSummary(f.Name)
		event.SetDescription(strings.ReplaceAll(f.Description, "\r\n", "\n"))
		event.SetLocation(f.Location)
	}
	return cal.Serialize(), nil
}
