package domain

// Client is a business whose books are kept. Services is never nil once a
// Client has been loaded or created.
type Client struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	GSTIN    string    `json:"gstin"`
	Services []Service `json:"services"`
}

// Service is a unit of work tracked against a Client.
type Service struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	Description string `json:"description"`
}
