package request

type CreateBusRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=100"`
	TotalSeats int    `json:"total_seats" validate:"required,gt=0"`
}
