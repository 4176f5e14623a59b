package inbound

// Update requests use pointers: nil leaves a field untouched. For optional
// references an empty string clears the reference.

type CreateOwnerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Address string `json:"address"`
	Status  string `json:"status"`
}

type UpdateOwnerRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
	Address *string `json:"address"`
	Status  *string `json:"status"`
}

type CreateLocationRequest struct {
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	City      string   `json:"city"`
	Country   string   `json:"country"`
	Type      string   `json:"type"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type UpdateLocationRequest struct {
	Name      *string  `json:"name"`
	Address   *string  `json:"address"`
	City      *string  `json:"city"`
	Country   *string  `json:"country"`
	Type      *string  `json:"type"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type CreateSourceRequest struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	ContactEmail string `json:"contactEmail"`
	Status       string `json:"status"`
}

type UpdateSourceRequest struct {
	Name         *string `json:"name"`
	Type         *string `json:"type"`
	ContactEmail *string `json:"contactEmail"`
	Status       *string `json:"status"`
}

type CreateVehicleRequest struct {
	VIN         string  `json:"vin"`
	PlateNumber string  `json:"plateNumber"`
	Make        string  `json:"make"`
	Model       string  `json:"model"`
	Year        int     `json:"year"`
	Color       string  `json:"color"`
	Status      string  `json:"status"`
	OwnerID     *string `json:"ownerId"`
	LocationID  *string `json:"locationId"`
	SourceID    *string `json:"sourceId"`
}

type UpdateVehicleRequest struct {
	VIN         *string `json:"vin"`
	PlateNumber *string `json:"plateNumber"`
	Make        *string `json:"make"`
	Model       *string `json:"model"`
	Year        *int    `json:"year"`
	Color       *string `json:"color"`
	Status      *string `json:"status"`
	OwnerID     *string `json:"ownerId"`
	LocationID  *string `json:"locationId"`
	SourceID    *string `json:"sourceId"`
}

type CreateUserRequest struct {
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	Password   string  `json:"password"`
	LocationID *string `json:"locationId"`
}

type UpdateUserRequest struct {
	Email      *string `json:"email"`
	Name       *string `json:"name"`
	Role       *string `json:"role"`
	IsActive   *bool   `json:"isActive"`
	Password   *string `json:"password"`
	LocationID *string `json:"locationId"`
}
