package recommend

import "github.com/marcus/persona-map/internal/types"

// catalogEntry is one verified real place used for backfill. Entries carry
// no ID; one is assigned when the entry is accepted into a result set.
type catalogEntry struct {
	Name        string
	Address     string
	Description string
	Category    types.Category
	Coordinates types.Coordinates
	Rating      float64
	Website     string
}

// backfillCatalog is a small fixed list of well-known, verified Toronto
// places used to top up a short result set. Order matters: earlier entries
// are preferred.
var backfillCatalog = []catalogEntry{
	{
		Name:        "CN Tower",
		Address:     "290 Bremner Blvd, Toronto, ON M5V 3L9",
		Description: "Toronto's defining landmark with observation decks over the city and lake.",
		Category:    types.CategoryAttraction,
		Coordinates: types.Coordinates{Lat: 43.6426, Lng: -79.3871},
		Rating:      4.6,
		Website:     "https://www.cntower.ca",
	},
	{
		Name:        "St. Lawrence Market",
		Address:     "93 Front St E, Toronto, ON M5E 1C3",
		Description: "Historic market hall packed with local food vendors and produce stalls.",
		Category:    types.CategoryShopping,
		Coordinates: types.Coordinates{Lat: 43.6487, Lng: -79.3716},
		Rating:      4.6,
		Website:     "https://www.stlawrencemarket.com",
	},
	{
		Name:        "Royal Ontario Museum",
		Address:     "100 Queens Park, Toronto, ON M5S 2C6",
		Description: "Canada's largest museum of world cultures and natural history.",
		Category:    types.CategoryMuseum,
		Coordinates: types.Coordinates{Lat: 43.6677, Lng: -79.3948},
		Rating:      4.7,
		Website:     "https://www.rom.on.ca",
	},
	{
		Name:        "High Park",
		Address:     "1873 Bloor St W, Toronto, ON M6R 2Z3",
		Description: "Toronto's largest public park with trails, gardens, and a spring cherry blossom season.",
		Category:    types.CategoryPark,
		Coordinates: types.Coordinates{Lat: 43.6465, Lng: -79.4637},
		Rating:      4.7,
	},
	{
		Name:        "Art Gallery of Ontario",
		Address:     "317 Dundas St W, Toronto, ON M5T 1G4",
		Description: "One of North America's largest art museums, from the Group of Seven to contemporary work.",
		Category:    types.CategoryArt,
		Coordinates: types.Coordinates{Lat: 43.6536, Lng: -79.3925},
		Rating:      4.7,
		Website:     "https://ago.ca",
	},
	{
		Name:        "Distillery Historic District",
		Address:     "55 Mill St, Toronto, ON M5A 3C4",
		Description: "Pedestrian-only Victorian industrial district of galleries, cafes, and shops.",
		Category:    types.CategoryEntertainment,
		Coordinates: types.Coordinates{Lat: 43.6503, Lng: -79.3596},
		Rating:      4.6,
		Website:     "https://www.thedistillerydistrict.com",
	},
	{
		Name:        "Kensington Market",
		Address:     "Kensington Ave, Toronto, ON M5T 2K2",
		Description: "Eclectic multicultural neighbourhood of vintage shops, cafes, and street food.",
		Category:    types.CategoryShopping,
		Coordinates: types.Coordinates{Lat: 43.6547, Lng: -79.4005},
		Rating:      4.5,
	},
	{
		Name:        "Toronto Islands",
		Address:     "9 Queens Quay W, Toronto, ON M5J 2H3",
		Description: "Car-free island park chain with beaches and skyline views, a short ferry ride from downtown.",
		Category:    types.CategoryOutdoor,
		Coordinates: types.Coordinates{Lat: 43.6205, Lng: -79.3790},
		Rating:      4.7,
	},
}
