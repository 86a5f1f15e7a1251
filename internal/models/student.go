package models

import "strings"

type Student struct {
	ID            Text `json:"id"`
	FirstName     Text `json:"firstName"`
	LastName      Text `json:"lastName"`
	RollNumber    Text `json:"rollNumber"`
	Course        Text `json:"course"`
	Year          Text `json:"year"`
	Email         Text `json:"email"`
	Phone         Text `json:"phone"`
	Address       Text `json:"address"`
	GuardianName  Text `json:"guardianName"`
	GuardianPhone Text `json:"guardianPhone"`
	Status        Text `json:"status"`
	CreatedAt     Text `json:"createdAt"`
	AssignedRoom  Text `json:"assignedRoom"`
}

func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName.String() + " " + s.LastName.String())
}

func (s Student) HasRoom() bool {
	return !s.AssignedRoom.IsEmpty()
}
