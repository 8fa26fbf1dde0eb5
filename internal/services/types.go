package services

import "time"

// Property is a rental listing.
type Property struct {
	ID           string   `json:"_id"`
	HostID       string   `json:"hostId"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	City         string   `json:"city"`
	Country      string   `json:"country"`
	PricePerNight float64 `json:"pricePerNight"`
	Currency     string   `json:"currency"`
	MaxGuests    int      `json:"maxGuests"`
	Bedrooms     int      `json:"bedrooms"`
	Rating       float64  `json:"rating,omitempty"`
	ReviewCount  int      `json:"reviewCount,omitempty"`
	Images       []string `json:"images,omitempty"`
	Featured     bool     `json:"featured,omitempty"`
}

// SearchFilters narrows a property search.
type SearchFilters struct {
	Query     string
	City      string
	CheckIn   string // YYYY-MM-DD
	CheckOut  string // YYYY-MM-DD
	Guests    int
	MinPrice  float64
	MaxPrice  float64
	Page      int
	PageSize  int
}

// Booking is a reservation of a property.
type Booking struct {
	ID         string    `json:"_id"`
	PropertyID string    `json:"propertyId"`
	GuestID    string    `json:"guestId"`
	CheckIn    string    `json:"checkIn"`
	CheckOut   string    `json:"checkOut"`
	Guests     int       `json:"guests"`
	TotalPrice float64   `json:"totalPrice"`
	Currency   string    `json:"currency"`
	Status     string    `json:"status"` // pending, confirmed, cancelled, completed
	CreatedAt  time.Time `json:"createdAt"`
}

// BookingRequest creates a new booking.
type BookingRequest struct {
	PropertyID string `json:"propertyId"`
	CheckIn    string `json:"checkIn"`
	CheckOut   string `json:"checkOut"`
	Guests     int    `json:"guests"`
}

// Review is guest feedback on a property.
type Review struct {
	ID         string    `json:"_id"`
	PropertyID string    `json:"propertyId"`
	AuthorID   string    `json:"authorId"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ReviewRequest creates a new review.
type ReviewRequest struct {
	PropertyID string `json:"propertyId"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment,omitempty"`
}

// User is a traveler or host profile.
type User struct {
	ID        string `json:"_id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Role      string `json:"role,omitempty"` // traveler, host
}

// ProfileUpdate carries mutable profile fields.
type ProfileUpdate struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Collection is a named wishlist of properties.
type Collection struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	PropertyIDs []string `json:"propertyIds"`
}

// Policies are a host's booking policies.
type Policies struct {
	CancellationPolicy string `json:"cancellationPolicy"` // flexible, moderate, strict
	CheckInTime        string `json:"checkInTime"`
	CheckOutTime       string `json:"checkOutTime"`
	InstantBook        bool   `json:"instantBook"`
}

// Earnings summarizes a host's payout position.
type Earnings struct {
	Currency   string  `json:"currency"`
	ThisMonth  float64 `json:"thisMonth"`
	YearToDate float64 `json:"yearToDate"`
	Pending    float64 `json:"pending"`
	Paid       float64 `json:"paid"`
}

// Credentials authenticates a user.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration creates an account.
type Registration struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Session is the authenticated session returned by login/register.
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}
