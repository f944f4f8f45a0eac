package shared

type Page struct {
	Offset int
	Limit  int
}

func NewPage(page, limit int) Page {
	if page < 1 {
		page = 1
	}
	return Page{Offset: (page - 1) * limit, Limit: limit}
}

type MovieFilter struct {
	Genre string
	Year  *int32
}
