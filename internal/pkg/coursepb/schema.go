package coursepb

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
)

// Field numbers, as declared in course.proto
const (
	courseIDField      protoreflect.FieldNumber = 1
	courseNameField    protoreflect.FieldNumber = 2
	courseStudentField protoreflect.FieldNumber = 3

	studentIDField        protoreflect.FieldNumber = 1
	studentFirstNameField protoreflect.FieldNumber = 2
	studentLastNameField  protoreflect.FieldNumber = 3
	studentEmailField     protoreflect.FieldNumber = 4
	studentPhoneField     protoreflect.FieldNumber = 5

	phoneNumberField protoreflect.FieldNumber = 1
	phoneTypeField   protoreflect.FieldNumber = 2
)

const protoPackage = "courseapi"

// File describes course.proto
var File protoreflect.FileDescriptor

var (
	courseDesc  protoreflect.MessageDescriptor
	studentDesc protoreflect.MessageDescriptor
	phoneDesc   protoreflect.MessageDescriptor
)

func init() {
	fd, err := protodesc.NewFile(courseFileProto(), nil)
	if err != nil {
		panic(fmt.Sprintf("coursepb: invalid course.proto descriptor: %v", err))
	}
	File = fd
	courseDesc = fd.Messages().ByName("Course")
	studentDesc = fd.Messages().ByName("Student")
	phoneDesc = fd.Messages().ByName("PhoneNumber")
}

func courseFileProto() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("courseapi/course.proto"),
		Package: proto.String(protoPackage),
		Syntax:  proto.String("proto3"),
		Options: &descriptorpb.FileOptions{
			GoPackage: proto.String("github.com/yigit/courseapi/internal/pkg/coursepb"),
		},
		EnumType: []*descriptorpb.EnumDescriptorProto{{
			Name: proto.String("PhoneType"),
			Value: []*descriptorpb.EnumValueDescriptorProto{
				{Name: proto.String("MOBILE"), Number: proto.Int32(0)},
				{Name: proto.String("LANDLINE"), Number: proto.Int32(1)},
			},
		}},
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("PhoneNumber"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalarField("number", phoneNumberField, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					typedField("type", phoneTypeField, descriptorpb.FieldDescriptorProto_TYPE_ENUM, "PhoneType", false),
				},
			},
			{
				Name: proto.String("Student"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalarField("id", studentIDField, descriptorpb.FieldDescriptorProto_TYPE_INT32),
					scalarField("first_name", studentFirstNameField, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					scalarField("last_name", studentLastNameField, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					scalarField("email", studentEmailField, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					typedField("phone", studentPhoneField, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, "PhoneNumber", true),
				},
			},
			{
				Name: proto.String("Course"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalarField("id", courseIDField, descriptorpb.FieldDescriptorProto_TYPE_INT32),
					scalarField("course_name", courseNameField, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					typedField("student", courseStudentField, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, "Student", true),
				},
			},
		},
	}
}

func scalarField(name string, num protoreflect.FieldNumber, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(int32(num)),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:   typ.Enum(),
	}
}

func typedField(name string, num protoreflect.FieldNumber, typ descriptorpb.FieldDescriptorProto_Type, typeName string, repeated bool) *descriptorpb.FieldDescriptorProto {
	f := scalarField(name, num, typ)
	f.TypeName = proto.String("." + protoPackage + "." + typeName)
	if repeated {
		f.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	}
	return f
}
