package models

type Room struct {
	ID           Text   `json:"id"`
	RoomNumber   Text   `json:"roomNumber"`
	Floor        Text   `json:"floor"`
	Capacity     Text   `json:"capacity"`
	OccupiedBeds Text   `json:"occupiedBeds"`
	MonthlyRent  Amount `json:"monthlyRent"`
	RoomType     Text   `json:"roomType"`
	Facilities   Text   `json:"facilities"`
}

// IsEmpty сообщает, что фронтенд прислал пустой объект вместо комнаты
func (r *Room) IsEmpty() bool {
	if r == nil {
		return true
	}
	return r.ID.IsEmpty() &&
		r.RoomNumber.IsEmpty() &&
		r.Floor.IsEmpty() &&
		r.Capacity.IsEmpty() &&
		r.OccupiedBeds.IsEmpty() &&
		r.MonthlyRent.IsZero() &&
		r.RoomType.IsEmpty() &&
		r.Facilities.IsEmpty()
}
