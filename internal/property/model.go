package property

// Property is a listed real estate record. ID is assigned by the store and
// never changes afterwards.
type Property struct {
	ID          int64   `json:"id" db:"id"`
	Address     string  `json:"address" db:"address" validate:"required,max=512"`
	Price       float64 `json:"price" db:"price" validate:"gte=0"`
	Size        float64 `json:"size" db:"size" validate:"gte=0"`
	Description string  `json:"description" db:"description" validate:"max=4096"`
}

// Patch carries the fields of a partial update. Nil fields are left unchanged.
type Patch struct {
	Address     *string  `json:"address" validate:"omitnil,min=1,max=512"`
	Price       *float64 `json:"price" validate:"omitnil,gte=0"`
	Size        *float64 `json:"size" validate:"omitnil,gte=0"`
	Description *string  `json:"description" validate:"omitnil,max=4096"`
}

// Apply returns p with the non-nil fields of the patch merged in.
func (patch Patch) Apply(p Property) Property {
	if patch.Address != nil {
		p.Address = *patch.Address
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Size != nil {
		p.Size = *patch.Size
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	return p
}

// Page is one zero-indexed slice of the property listing plus totals.
type Page struct {
	Content       []Property `json:"content"`
	Page          int        `json:"page"`
	Size          int        `json:"size"`
	TotalElements int64      `json:"total_elements"`
	TotalPages    int        `json:"total_pages"`
}
