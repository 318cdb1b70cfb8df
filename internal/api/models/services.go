package models

// CityList is the response of the show_cities service call.
type CityList struct {
	Cities []string `json:"cities"`
	Count  int      `json:"count"`
}

// CityStationsRequest is the body of the show_city_stations service call.
type CityStationsRequest struct {
	City string `json:"city"`
}

// Notification is the API representation of a persistent notification.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt Timestamp `json:"createdAt"`
}

// NotificationList is the response for the notification listing endpoint.
type NotificationList struct {
	Items []Notification `json:"items"`
	Count int            `json:"count"`
}

// ServiceCallResult wraps the notification produced by a service call.
type ServiceCallResult struct {
	Notification Notification `json:"notification"`
}

// RefreshResult is the response of the refresh service call.
type RefreshResult struct {
	Stations  int       `json:"stations"`
	FetchedAt Timestamp `json:"fetchedAt"`
}
