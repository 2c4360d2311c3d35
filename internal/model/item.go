package model

// Item is the domain model for a todo entry as served by the API.
// IDs are assigned by the server and are unique within a list.
type Item struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}
