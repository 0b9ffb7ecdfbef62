package pagination

type Pagination struct {
	Count    int `json:"count"`
	PageSize int `json:"page_size"`
	Page     int `json:"page"`
}
