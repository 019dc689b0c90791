package listing

import "mottars_backend/internal/domain"

func strPtr(s string) *string { return &s }

// Brands shown on the home page.
var Brands = []Brand{
	{Name: "Toyota", Logo: "https://cdn.simpleicons.org/toyota"},
	{Name: "Honda", Logo: "https://cdn.simpleicons.org/honda"},
	{Name: "Mercedes", Logo: "https://cdn.simpleicons.org/mercedes"},
	{Name: "Lexus", Logo: "https://upload.wikimedia.org/wikipedia/commons/thumb/6/69/Lexus_logo_2024.svg/1024px-Lexus_logo_2024.svg.png"},
	{Name: "Ford", Logo: "https://cdn.simpleicons.org/ford"},
	{Name: "Hyundai", Logo: "https://cdn.simpleicons.org/hyundai"},
	{Name: "BMW", Logo: "https://cdn.simpleicons.org/bmw"},
	{Name: "Tesla", Logo: "https://cdn.simpleicons.org/tesla"},
}

// FixtureSellers returns the seed sellers.
func FixtureSellers() []Seller {
	return []Seller{
		{
			ID:                 "s1",
			Name:               "Mikano Motors Verified",
			IsVerified:         true,
			VerificationStatus: domain.VerificationVerified,
			Rating:             4.8,
			ReviewCount:        124,
			JoinedDate:         "2021-05-12",
			Type:               domain.SellerDealer,
			LogoURL:            strPtr("https://images.unsplash.com/photo-1560250097-0b93528c311a?auto=format&fit=crop&q=80&w=200&h=200"),
		},
		{
			ID:                 "s2",
			Name:               "Chinedu Autos",
			IsVerified:         false,
			VerificationStatus: domain.VerificationUnverified,
			Rating:             4.2,
			ReviewCount:        15,
			JoinedDate:         "2023-01-20",
			Type:               domain.SellerPrivate,
			LogoURL:            strPtr("https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?auto=format&fit=crop&q=80&w=200&h=200"),
		},
	}
}

// FixtureCars returns the seed cars in dataset order.
func FixtureCars() []Car {
	cars := []Car{
		{
			ID: "c1", Make: "Toyota", Model: "Camry XSE", Year: 2021, Price: 28500000, Mileage: 15000,
			Location: "Lagos, Victoria Island", Condition: domain.ConditionForeignUsed, Transmission: domain.TransmissionAutomatic,
			SellerID:    "s1",
			Images:      []string{"https://images.unsplash.com/photo-1621007947382-bb3c399a7eeb?auto=format&fit=crop&q=80&w=1200"},
			Description: "Clean title, accident free, full option 2021 Toyota Camry XSE. Panoramic roof, leather seats, navigation system.",
			Features:    []string{"Bluetooth", "Backup Camera", "Leather Seats", "Navigation", "Sunroof"},
		},
		{
			ID: "c2", Make: "Lexus", Model: "RX 350", Year: 2020, Price: 35000000, Mileage: 24000,
			Location: "Abuja, Maitama", Condition: domain.ConditionForeignUsed, Transmission: domain.TransmissionAutomatic,
			SellerID:    "s1",
			Images:      []string{"https://images.unsplash.com/photo-1590076215667-875d4ef2d743?auto=format&fit=crop&q=80&w=1200"},
			Description: "Pristine condition Lexus RX 350. Well maintained by certified mechanics. Keyless entry and start.",
			Features:    []string{"Keyless Entry", "Heated Seats", "Premium Audio", "All-Wheel Drive"},
		},
		{
			ID: "c3", Make: "Honda", Model: "Accord", Year: 2018, Price: 12500000, Mileage: 45000,
			Location: "Lagos, Ikeja", Condition: domain.ConditionNigerianUsed, Transmission: domain.TransmissionAutomatic,
			SellerID:    "s2",
			Images:      []string{"https://images.unsplash.com/photo-1592750430926-526b75a27766?auto=format&fit=crop&q=80&w=1200"},
			Description: "Buy and drive Honda Accord. Engine and gear in perfect condition. AC chilling.",
			Features:    []string{"Alloy Wheels", "Cruise Control", "Power Windows"},
		},
		{
			ID: "c4", Make: "Mercedes-Benz", Model: "C300", Year: 2019, Price: 22000000, Mileage: 30000,
			Location: "Port Harcourt", Condition: domain.ConditionForeignUsed, Transmission: domain.TransmissionAutomatic,
			SellerID:    "s1",
			Images:      []string{"https://images.unsplash.com/photo-1617788138017-80ad40651399?auto=format&fit=crop&q=80&w=1200"},
			Description: "Luxury C300 with AMG package. Direct Belgium import.",
			Features:    []string{"AMG Kit", "Burmester Sound", "Leather Interior"},
		},
		{
			ID: "c5", Make: "Ford", Model: "Mustang GT", Year: 2022, Price: 45000000, Mileage: 5000,
			Location: "Lagos, Lekki", Condition: domain.ConditionForeignUsed, Transmission: domain.TransmissionAutomatic,
			SellerID:    "s1",
			Images:      []string{"https://images.unsplash.com/photo-1584345604476-8ec5e12e42dd?auto=format&fit=crop&q=80&w=1200"},
			Description: "Almost new Ford Mustang GT. V8 Engine, roar is unmistakable. Perfect weekend car.",
			Features:    []string{"V8 Engine", "Sport Mode", "Leather Seats", "Apple CarPlay"},
		},
		{
			ID: "c6", Make: "Toyota", Model: "Land Cruiser", Year: 2023, Price: 120000000, Mileage: 1200,
			Location: "Abuja, Central", Condition: domain.ConditionNew, Transmission: domain.TransmissionAutomatic,
			SellerID:    "s1",
			Images:      []string{"https://images.unsplash.com/photo-1533473359331-0135ef1b58bf?auto=format&fit=crop&q=80&w=1200"},
			Description: "Brand new 2023 Land Cruiser. Twin Turbo V6. The ultimate luxury SUV.",
			Features:    []string{"Twin Turbo", "360 Camera", "Cool Box", "Rear Entertainment"},
		},
		{
			ID: "c7", Make: "Hyundai", Model: "Elantra", Year: 2017, Price: 7500000, Mileage: 68000,
			Location: "Lagos, Surulere", Condition: domain.ConditionNigerianUsed, Transmission: domain.TransmissionAutomatic,
			SellerID:    "s2",
			Images:      []string{"https://images.unsplash.com/photo-1626859343360-1405e364670c?auto=format&fit=crop&q=80&w=1200"},
			Description: "Fuel efficient Hyundai Elantra. Good for daily commute. New tires.",
			Features:    []string{"Bluetooth", "Fabric Seats", "Economy Mode"},
		},
		{
			ID: "c8", Make: "Mercedes-Benz", Model: "G-Wagon G63", Year: 2021, Price: 180000000, Mileage: 10000,
			Location: "Lagos, Ikoyi", Condition: domain.ConditionForeignUsed, Transmission: domain.TransmissionAutomatic,
			SellerID:    "s1",
			Images:      []string{"https://images.unsplash.com/photo-1520031441872-265e4ff70366?auto=format&fit=crop&q=80&w=1200"},
			Description: "Matte Black G63 AMG. Red interior. Fully loaded.",
			Features:    []string{"Night Package", "Massage Seats", "Carbon Fiber Trim"},
		},
		{
			ID: "c9", Make: "Range Rover", Model: "Velar", Year: 2020, Price: 42000000, Mileage: 28000,
			Location: "Abuja, Wuse 2", Condition: domain.ConditionForeignUsed, Transmission: domain.TransmissionAutomatic,
			SellerID:    "s1",
			Images:      []string{"https://images.unsplash.com/photo-1606220838315-056192d5e927?auto=format&fit=crop&q=80&w=1200"},
			Description: "Sleek Range Rover Velar. White exterior, black roof. Head-turner.",
			Features:    []string{"Touch Pro Duo", "Matrix LED", "Meridian Sound"},
		},
		{
			ID: "c10", Make: "Toyota", Model: "Corolla", Year: 2015, Price: 6500000, Mileage: 85000,
			Location: "Ibadan", Condition: domain.ConditionNigerianUsed, Transmission: domain.TransmissionAutomatic,
			SellerID:    "s2",
			Images:      []string{"https://images.unsplash.com/photo-1623869675781-80aa31012a5a?auto=format&fit=crop&q=80&w=1200"},
			Description: "Rugged and reliable Corolla. Engine is sound. First body.",
			Features:    []string{"Fabric Seats", "CD Player", "Air Conditioning"},
		},
	}
	for i := range cars {
		cars[i].Position = i
	}
	return cars
}

// FixtureReviews returns the shared sample reviews.
func FixtureReviews() []Review {
	return []Review{
		{ID: "r1", Position: 0, Author: "Tunde B.", Rating: 5, Text: "Great seller! The car was exactly as described.", Date: "2023-10-15"},
		{ID: "r2", Position: 1, Author: "Ngozi A.", Rating: 4, Text: "Transaction was smooth, though delivery took a day longer.", Date: "2023-09-22"},
	}
}
