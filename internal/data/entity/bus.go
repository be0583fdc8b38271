package entity

type Bus struct {
	Base
	Name       string `db:"name"`
	TotalSeats int    `db:"total_seats"`
}
