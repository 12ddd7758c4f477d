package models

type Category struct {
	ID   int    `json:"id,omitempty" db:"id"`
	Name string `json:"name" binding:"required,max=100" db:"name"`
}

type PatchCategoryRequest struct {
	ID   int     `uri:"id" binding:"required"`
	Name *string `json:"name" binding:"omitempty,max=100"`
}

func (c *Category) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   c.ID,
		ResourceType: "category",
	}
}
