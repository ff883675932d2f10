// Package catalogdto - các DTO đầu vào của domain catalog.
package catalogdto

// CategoryCreateInput đầu vào tạo danh mục gốc.
// Active không nhận từ input tạo mới — mặc định true theo model.
type CategoryCreateInput struct {
	Name        string `json:"name" validate:"required,no_xss"`
	Description string `json:"description,omitempty" validate:"omitempty,no_xss"`
}

// CategoryUpdateInput đầu vào cập nhật danh mục gốc.
type CategoryUpdateInput struct {
	Name        string `json:"name,omitempty" validate:"omitempty,no_xss"`
	Description string `json:"description,omitempty" validate:"omitempty,no_xss"`
	Active      *bool  `json:"active,omitempty"`
}

// SubCategoryCreateInput đầu vào tạo danh mục con.
// CategoryID phải trỏ tới một category đang tồn tại.
type SubCategoryCreateInput struct {
	CategoryID  string `json:"categoryId" validate:"required,exists=categories" transform:"str_objectid,required,map=CategoryID"`
	Name        string `json:"name" validate:"required,no_xss"`
	Description string `json:"description,omitempty" validate:"omitempty,no_xss"`
}

// SubCategoryUpdateInput đầu vào cập nhật danh mục con.
type SubCategoryUpdateInput struct {
	CategoryID  string `json:"categoryId,omitempty" validate:"omitempty,exists=categories" transform:"str_objectid,optional,map=CategoryID"`
	Name        string `json:"name,omitempty" validate:"omitempty,no_xss"`
	Description string `json:"description,omitempty" validate:"omitempty,no_xss"`
	Active      *bool  `json:"active,omitempty"`
}
