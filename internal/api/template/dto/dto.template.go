// Package templatedto - các DTO đầu vào của domain template.
package templatedto

// TemplateCreateInput đầu vào tạo metadata template.
type TemplateCreateInput struct {
	Name     string `json:"name" validate:"required,no_xss"`
	Kind     string `json:"kind" validate:"required,oneof=import export report"`
	FileName string `json:"fileName" validate:"required"`
	Size     int64  `json:"size,omitempty" validate:"omitempty,min=0"`
}

// TemplateUpdateInput đầu vào cập nhật metadata template.
type TemplateUpdateInput struct {
	Name     string `json:"name,omitempty" validate:"omitempty,no_xss"`
	Kind     string `json:"kind,omitempty" validate:"omitempty,oneof=import export report"`
	FileName string `json:"fileName,omitempty"`
	Size     int64  `json:"size,omitempty" validate:"omitempty,min=0"`
	Active   *bool  `json:"active,omitempty"`
}
