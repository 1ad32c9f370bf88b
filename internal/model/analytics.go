package model

// Analytics is the aggregate counters the backend exposes to admins.
type Analytics struct {
	Items struct {
		Total     int `json:"total"`
		Lost      int `json:"lost"`
		Found     int `json:"found"`
		Recovered int `json:"recovered"`
	} `json:"items"`
	Claims struct {
		Total    int `json:"total"`
		Pending  int `json:"pending"`
		Approved int `json:"approved"`
		Rejected int `json:"rejected"`
	} `json:"claims"`
	Reports struct {
		Total    int `json:"total"`
		Pending  int `json:"pending"`
		Resolved int `json:"resolved"`
	} `json:"reports"`
	Users int `json:"users"`
}
