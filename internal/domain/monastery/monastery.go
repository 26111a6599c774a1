// Package monastery is the fixed catalog of monasteries shown on the map.
package monastery

// Monastery is one catalog entry.
type Monastery struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Town        string  `json:"town"`
	Description string  `json:"description"`
	Visiting    string  `json:"visiting"`
	Link        string  `json:"link"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

var catalog = []Monastery{
	{ID: 1, Name: "Rumtek Monastery", Town: "Gangtok", Description: "Seat-in-exile of the Karmapa, near Gangtok.",
		Visiting: "Open: 9 AM – 6 PM", Link: "https://rumtek.org/", Lat: 27.3258, Lng: 88.6012},
	{ID: 2, Name: "Pemayangtse Monastery", Town: "Pelling", Description: "Historic Nyingma monastery near Pelling.",
		Visiting: "Open: 9 AM – 5 PM", Link: "https://www.sikkimstdc.com/", Lat: 27.30453, Lng: 88.25204},
	{ID: 3, Name: "Tashiding Monastery", Town: "Tashiding", Description: "Pilgrimage site known for Bumchu's sacred water ritual.",
		Visiting: "Open: 8 AM – 5 PM", Link: "https://www.sikkimtourism.gov.in/", Lat: 27.274, Lng: 88.287},
	{ID: 4, Name: "Enchey Monastery", Town: "Gangtok", Description: "A 200-year-old monastery with rich murals and ceremonies.",
		Visiting: "Open: 9 AM – 6 PM", Link: "https://www.sikkimtourism.gov.in/", Lat: 27.3381, Lng: 88.6132},
	{ID: 5, Name: "Ralang Monastery", Town: "Ralang", Description: "Known for its stunning architecture and prayer halls.",
		Visiting: "Open: 8 AM – 5 PM", Link: "https://www.sikkimtourism.gov.in/", Lat: 27.1675, Lng: 88.6622},
	{ID: 6, Name: "Phodong Monastery", Town: "Phodong", Description: "Seat of the Nyingma sect with rich cultural heritage.",
		Visiting: "Open: 9 AM – 5 PM", Link: "https://www.sikkimtourism.gov.in/", Lat: 27.428, Lng: 88.613},
}

// All returns the catalog in display order.
func All() []Monastery {
	out := make([]Monastery, len(catalog))
	copy(out, catalog)
	return out
}

// FindByID looks up a monastery.
func FindByID(id int) (Monastery, bool) {
	for _, m := range catalog {
		if m.ID == id {
			return m, true
		}
	}
	return Monastery{}, false
}
