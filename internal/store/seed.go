package store

import (
	"github.com/shopspring/decimal"

	"github.com/campusone/campus-hub-api/internal/model"
)

func price(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// SeedShops is the fixed catalog persisted on first run, before any seller
// has taken ownership of a shop.
func SeedShops() []model.Shop {
	return []model.Shop{
		{
			ID:       "shop-1",
			Name:     "North Campus Stationary",
			Category: model.CategoryStationary,
			Location: "North Campus, Block A",
			Timing:   "09:00 AM - 08:00 PM",
			Contact:  "9988776655",
			ImageURL: "https://picsum.photos/seed/stationary/400/300",
			Offering: model.Retail{Items: []model.InventoryItem{
				{ID: "item-1", Name: "A4 Notebook (160 pgs)", Price: price(60), Available: true, Stock: 45},
				{ID: "item-2", Name: "Blue Gel Pen", Price: price(10), Available: true, Stock: 120},
				{ID: "item-3", Name: "Lab Coat (L)", Price: price(350), Available: false, Stock: 0},
				{ID: "item-4", Name: "Scientific Calculator", Price: price(1200), Available: true, Stock: 5},
			}},
		},
		{
			ID:       "shop-2",
			Name:     "A2Z Electronic Resources",
			Category: model.CategoryElectronics,
			Location: "South Campus, Main Arcade",
			Timing:   "10:00 AM - 07:00 PM",
			Contact:  "9944556677",
			ImageURL: "https://picsum.photos/seed/electronics/400/300",
			Offering: model.Retail{Items: []model.InventoryItem{
				{ID: "elec-1", Name: "Arduino Uno R3", Price: price(650), Available: true, Stock: 12},
				{ID: "elec-2", Name: "Jumper Wires (M-M) 40pcs", Price: price(120), Available: true, Stock: 30},
				{ID: "elec-3", Name: "Raspberry Pi 4 (4GB)", Price: price(4500), Available: false, Stock: 0},
				{ID: "elec-4", Name: "Soldering Kit", Price: price(850), Available: true, Stock: 8},
			}},
		},
		{
			ID:       "shop-3",
			Name:     "Mandi Salon Elite",
			Category: model.CategorySalon,
			Location: "North Campus, Amenities Center",
			Timing:   "08:00 AM - 09:00 PM",
			Contact:  "9911223344",
			ImageURL: "https://picsum.photos/seed/salon/400/300",
			Offering: model.Services{Services: []model.ServiceItem{
				{ID: "srv-1", Name: "Haircut (Classic)", Price: price(100), Duration: "30 mins"},
				{ID: "srv-2", Name: "Beard Trim", Price: price(50), Duration: "15 mins"},
				{ID: "srv-3", Name: "Head Massage", Price: price(80), Duration: "20 mins"},
				{ID: "srv-4", Name: "Hair Coloring", Price: price(500), Duration: "60 mins"},
			}},
		},
		{
			ID:       "shop-4",
			Name:     "Tumbler Laundry Services",
			Category: model.CategoryLaundry,
			Location: "South Campus, Near Hostel D3",
			Timing:   "07:00 AM - 10:00 PM",
			Contact:  "9900998877",
			ImageURL: "https://picsum.photos/seed/laundry/400/300",
			Offering: model.Services{Services: []model.ServiceItem{
				{ID: "wash-1", Name: "Wash & Fold (per kg)", Price: price(40), Duration: "24 hrs"},
				{ID: "wash-2", Name: "Wash & Iron (per kg)", Price: price(60), Duration: "36 hrs"},
				{ID: "wash-3", Name: "Dry Cleaning (Suit)", Price: price(250), Duration: "72 hrs"},
				{ID: "wash-4", Name: "Blanket Wash", Price: price(150), Duration: "48 hrs"},
			}},
		},
	}
}
