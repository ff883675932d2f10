// Package outletdto - các DTO đầu vào của domain outlet.
package outletdto

// OutletTypeCreateInput đầu vào tạo loại outlet.
// CategoryID phải trỏ tới một category đang tồn tại.
type OutletTypeCreateInput struct {
	CategoryID   string `json:"categoryId" validate:"required,exists=categories" transform:"str_objectid,required,map=CategoryID"`
	Name         string `json:"name" validate:"required,no_xss"`
	Description  string `json:"description,omitempty" validate:"omitempty,no_xss"`
	DisplayOrder int64  `json:"displayOrder,omitempty" validate:"omitempty,min=1"`
}

// OutletTypeUpdateInput đầu vào cập nhật loại outlet.
type OutletTypeUpdateInput struct {
	CategoryID   string `json:"categoryId,omitempty" validate:"omitempty,exists=categories" transform:"str_objectid,optional,map=CategoryID"`
	Name         string `json:"name,omitempty" validate:"omitempty,no_xss"`
	Description  string `json:"description,omitempty" validate:"omitempty,no_xss"`
	DisplayOrder int64  `json:"displayOrder,omitempty" validate:"omitempty,min=1"`
	Active       *bool  `json:"active,omitempty"`
}

// OutletUpdateInput đầu vào cập nhật outlet (admin không tạo outlet qua dashboard).
type OutletUpdateInput struct {
	Name         string `json:"name,omitempty" validate:"omitempty,no_xss"`
	OwnerName    string `json:"ownerName,omitempty" validate:"omitempty,no_xss"`
	Phone        string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address      string `json:"address,omitempty" validate:"omitempty,no_xss"`
	OutletTypeID string `json:"outletTypeId,omitempty" validate:"omitempty,exists=outlet_types" transform:"str_objectid_ptr,optional,map=OutletTypeID"`
	Active       *bool  `json:"active,omitempty"`
}
