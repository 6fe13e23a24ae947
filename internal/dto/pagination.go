package dto

// PageQuery binds ?page=&limit= with the shared bounds.
type PageQuery struct {
	Page  int `form:"page,default=1" binding:"min=1"`
	Limit int `form:"limit,default=10" binding:"min=1,max=100"`
}

func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}
