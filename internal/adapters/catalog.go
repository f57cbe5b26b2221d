package adapters

import "context"

// Room describes one bookable venue room (capacity + feature matching for
// Step 3, spec §4.3.3).
type Room struct {
	ID         string
	Name       string
	Capacity   int
	Features   []string
	RatePerDay float64
}

// Product is a sellable add-on or catering line offered in Step 4's offer
// composition (spec §4.3.4).
type Product struct {
	ID        string
	Name      string
	UnitPrice float64
	PerPerson bool
}

// Catalog is the read-only room/product/menu lookup the kernel consults when
// evaluating room availability and composing offers. Implementations should
// be read-mostly and cheap to call repeatedly within a turn.
type Catalog interface {
	Rooms(ctx context.Context) ([]Room, error)
	Products(ctx context.Context) ([]Product, error)
}

// StaticCatalog is a Catalog backed by an in-memory slice, used in tests and
// as the default when no catalog integration is configured.
type StaticCatalog struct {
	rooms    []Room
	products []Product
}

// NewStaticCatalog builds a catalog fake from fixed room/product lists.
func NewStaticCatalog(rooms []Room, products []Product) *StaticCatalog {
	return &StaticCatalog{rooms: rooms, products: products}
}

// DefaultStaticCatalog returns the venue's baseline room set, matching
// original_source's load_rooms fallback when no rooms.json is present.
func DefaultStaticCatalog() *StaticCatalog {
	return NewStaticCatalog(
		[]Room{
			{ID: "punkt-null", Name: "Punkt.Null", Capacity: 120, Features: []string{"hdmi", "projector", "sound_system"}, RatePerDay: 1400},
			{ID: "room-a", Name: "Room A", Capacity: 40, Features: []string{"hdmi", "projector"}, RatePerDay: 600},
			{ID: "room-b", Name: "Room B", Capacity: 80, Features: []string{"hdmi", "projector", "sound_system"}, RatePerDay: 900},
			{ID: "room-c", Name: "Room C", Capacity: 20, Features: []string{"hdmi"}, RatePerDay: 350},
		},
		[]Product{
			{ID: "coffee-break", Name: "Coffee Break", UnitPrice: 8.5, PerPerson: true},
			{ID: "lunch-buffet", Name: "Lunch Buffet", UnitPrice: 28, PerPerson: true},
			{ID: "av-technician", Name: "AV Technician", UnitPrice: 250, PerPerson: false},
		},
	)
}

func (c *StaticCatalog) Rooms(_ context.Context) ([]Room, error) {
	out := make([]Room, len(c.rooms))
	copy(out, c.rooms)
	return out, nil
}

func (c *StaticCatalog) Products(_ context.Context) ([]Product, error) {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out, nil
}
