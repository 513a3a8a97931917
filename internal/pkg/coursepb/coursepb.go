// Package coursepb serializes courses as the protobuf messages declared in course.proto.
package coursepb

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protodelim"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/yigit/courseapi/internal/app/models"
)

// ContentType is the media type clients send in Accept to get protobuf bodies
const ContentType = "application/x-protobuf"

// ErrMalformed is wrapped by every decoding error
var ErrMalformed = errors.New("malformed protobuf message")

// Deterministic output keeps repeated responses byte-identical.
var (
	marshalOptions = proto.MarshalOptions{Deterministic: true}
	delimOptions   = protodelim.MarshalOptions{MarshalOptions: marshalOptions}
)

// Marshal encodes a course. Zero values are omitted as in proto3.
func Marshal(c *models.Course) ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	b, err := marshalOptions.Marshal(toMessage(c))
	if err != nil {
		return nil, fmt.Errorf("marshal course %d: %w", c.ID, err)
	}
	return b, nil
}

// MarshalList encodes courses as a stream of varint length-delimited messages
func MarshalList(courses []*models.Course) ([]byte, error) {
	var buf bytes.Buffer
	for _, c := range courses {
		if _, err := delimOptions.MarshalTo(&buf, toMessage(c)); err != nil {
			return nil, fmt.Errorf("marshal course %d: %w", c.ID, err)
		}
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a single course message. Unknown fields are ignored.
func Unmarshal(b []byte) (*models.Course, error) {
	m := dynamicpb.NewMessage(courseDesc)
	if err := proto.Unmarshal(b, m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return fromMessage(m), nil
}

// UnmarshalList decodes a stream written by MarshalList
func UnmarshalList(b []byte) ([]*models.Course, error) {
	r := bytes.NewReader(b)
	courses := []*models.Course{}
	for {
		m := dynamicpb.NewMessage(courseDesc)
		err := protodelim.UnmarshalFrom(r, m)
		if errors.Is(err, io.EOF) {
			return courses, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: course %d: %v", ErrMalformed, len(courses), err)
		}
		courses = append(courses, fromMessage(m))
	}
}

func toMessage(c *models.Course) *dynamicpb.Message {
	m := dynamicpb.NewMessage(courseDesc)
	fields := courseDesc.Fields()
	setInt32(m, fields.ByNumber(courseIDField), c.ID)
	setString(m, fields.ByNumber(courseNameField), c.CourseName)

	if len(c.Students) > 0 {
		list := m.Mutable(fields.ByNumber(courseStudentField)).List()
		for i := range c.Students {
			v := list.NewElement()
			fillStudent(v.Message(), &c.Students[i])
			list.Append(v)
		}
	}
	return m
}

func fillStudent(m protoreflect.Message, s *models.Student) {
	fields := studentDesc.Fields()
	setInt32(m, fields.ByNumber(studentIDField), s.ID)
	setString(m, fields.ByNumber(studentFirstNameField), s.FirstName)
	setString(m, fields.ByNumber(studentLastNameField), s.LastName)
	setString(m, fields.ByNumber(studentEmailField), s.Email)

	if len(s.Phones) > 0 {
		list := m.Mutable(fields.ByNumber(studentPhoneField)).List()
		for _, p := range s.Phones {
			v := list.NewElement()
			pm := v.Message()
			setString(pm, phoneDesc.Fields().ByNumber(phoneNumberField), p.Number)
			if p.Type != 0 {
				pm.Set(phoneDesc.Fields().ByNumber(phoneTypeField), protoreflect.ValueOfEnum(protoreflect.EnumNumber(p.Type)))
			}
			list.Append(v)
		}
	}
}

func setInt32(m protoreflect.Message, fd protoreflect.FieldDescriptor, v int32) {
	if v != 0 {
		m.Set(fd, protoreflect.ValueOfInt32(v))
	}
}

func setString(m protoreflect.Message, fd protoreflect.FieldDescriptor, v string) {
	if v != "" {
		m.Set(fd, protoreflect.ValueOfString(v))
	}
}

func fromMessage(m protoreflect.Message) *models.Course {
	fields := courseDesc.Fields()
	c := &models.Course{
		ID:         int32(m.Get(fields.ByNumber(courseIDField)).Int()),
		CourseName: m.Get(fields.ByNumber(courseNameField)).String(),
	}

	students := m.Get(fields.ByNumber(courseStudentField)).List()
	for i := 0; i < students.Len(); i++ {
		c.Students = append(c.Students, studentFrom(students.Get(i).Message()))
	}
	return c
}

func studentFrom(m protoreflect.Message) models.Student {
	fields := studentDesc.Fields()
	s := models.Student{
		ID:        int32(m.Get(fields.ByNumber(studentIDField)).Int()),
		FirstName: m.Get(fields.ByNumber(studentFirstNameField)).String(),
		LastName:  m.Get(fields.ByNumber(studentLastNameField)).String(),
		Email:     m.Get(fields.ByNumber(studentEmailField)).String(),
	}

	phones := m.Get(fields.ByNumber(studentPhoneField)).List()
	for i := 0; i < phones.Len(); i++ {
		pm := phones.Get(i).Message()
		s.Phones = append(s.Phones, models.PhoneNumber{
			Number: pm.Get(phoneDesc.Fields().ByNumber(phoneNumberField)).String(),
			Type:   models.PhoneType(pm.Get(phoneDesc.Fields().ByNumber(phoneTypeField)).Enum()),
		})
	}
	return s
}
