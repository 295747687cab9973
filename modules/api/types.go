package api

// ErrorResponse is the error body every endpoint returns:
// { "message": "..." }.
type ErrorResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// registerBody is the request body for POST /auth/register.
type registerBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginBody is the request body for POST /auth/login.
type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// refreshBody is the request body for POST /auth/refresh.
type refreshBody struct {
	RefreshToken string `json:"refreshToken"`
}

// productBody is the request body for product create and update. All
// fields are optional on update; only provided ones overwrite.
type productBody struct {
	Name           *string   `json:"name"`
	Slug           *string   `json:"slug"`
	Description    *string   `json:"description"`
	Price          *float64  `json:"price"`
	CompareAtPrice *float64  `json:"compareAtPrice"`
	Category       *string   `json:"category"`
	Images         *[]string `json:"images"`
	Stock          *int      `json:"stock"`
	Tags           *[]string `json:"tags"`
	Featured       *bool     `json:"featured"`
}

// categoryBody is the request body for category create and update.
type categoryBody struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

// addToCartBody is the request body for POST /cart.
type addToCartBody struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// updateCartItemBody is the request body for PUT /cart/:itemId.
type updateCartItemBody struct {
	Quantity int `json:"quantity"`
}

// orderItemBody is a line item in a place-order request. Product carries
// the product id; price is the cart's snapshot price.
type orderItemBody struct {
	Product  string  `json:"product"`
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// shippingAddressBody is the shipping address in a place-order request.
type shippingAddressBody struct {
	FullName   string `json:"fullName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

// placeOrderBody is the request body for POST /orders.
type placeOrderBody struct {
	OrderItems      []orderItemBody     `json:"orderItems"`
	ShippingAddress shippingAddressBody `json:"shippingAddress"`
	PaymentMethod   string              `json:"paymentMethod"`
}

// updateStatusBody is the request body for PUT /orders/:id/status.
type updateStatusBody struct {
	Status string `json:"status"`
}
