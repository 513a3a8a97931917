package models

import (
	"encoding/json"
	"fmt"
)

// PhoneType classifies a student's phone number
type PhoneType int32

// PhoneType constants, numbered as on the wire
const (
	PhoneTypeMobile   PhoneType = 0
	PhoneTypeLandline PhoneType = 1
)

var phoneTypeNames = map[PhoneType]string{
	PhoneTypeMobile:   "MOBILE",
	PhoneTypeLandline: "LANDLINE",
}

// String returns the enum name, or the number for values this build does not know
func (t PhoneType) String() string {
	if name, ok := phoneTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("%d", int32(t))
}

// ParsePhoneType maps an enum name back to its value
func ParsePhoneType(name string) (PhoneType, error) {
	for t, n := range phoneTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown phone type %q", name)
}

// MarshalJSON writes the enum name, or the bare number for values without one
func (t PhoneType) MarshalJSON() ([]byte, error) {
	if name, ok := phoneTypeNames[t]; ok {
		return json.Marshal(name)
	}
	return json.Marshal(int32(t))
}

// UnmarshalJSON accepts the enum name or its number
func (t *PhoneType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		parsed, err := ParsePhoneType(name)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	}

	var n int32
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("phone type must be a name or a number: %w", err)
	}
	*t = PhoneType(n)
	return nil
}

// PhoneNumber is a contact number of a student
type PhoneNumber struct {
	Number string    `json:"number" validate:"required"`
	Type   PhoneType `json:"type"`
}

// Student represents a student enrolled in a course
type Student struct {
	ID        int32         `json:"id" db:"id"`
	FirstName string        `json:"firstName" db:"first_name" validate:"required"`
	LastName  string        `json:"lastName" db:"last_name" validate:"required"`
	Email     string        `json:"email" db:"email" validate:"omitempty,email"`
	Phones    []PhoneNumber `json:"phones" validate:"dive"`
}

// Course represents a course together with its enrolled students.
type Course struct {
	ID         int32     `json:"id" db:"id"`
	CourseName string    `json:"courseName" db:"course_name" validate:"required"`
	Students   []Student `json:"students" validate:"dive"`
}

// MarshalJSON writes phones as an array even when there are none
func (s Student) MarshalJSON() ([]byte, error) {
	type student Student
	out := student(s)
	if out.Phones == nil {
		out.Phones = []PhoneNumber{}
	}
	return json.Marshal(out)
}

// MarshalJSON writes students as an array even when there are none
func (c Course) MarshalJSON() ([]byte, error) {
	type course Course
	out := course(c)
	if out.Students == nil {
		out.Students = []Student{}
	}
	return json.Marshal(out)
}

// Clone returns a deep copy so stored records cannot be mutated through a returned value
func (c *Course) Clone() *Course {
	if c == nil {
		return nil
	}
	out := &Course{ID: c.ID, CourseName: c.CourseName}
	if c.Students != nil {
		out.Students = make([]Student, len(c.Students))
		for i, s := range c.Students {
			out.Students[i] = s
			if s.Phones != nil {
				out.Students[i].Phones = append([]PhoneNumber(nil), s.Phones...)
			}
		}
	}
	return out
}
