package structs

type CustomerRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Phone string `json:"phone" validate:"omitempty,min=8,max=20"`
}
