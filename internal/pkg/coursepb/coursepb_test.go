package coursepb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/yigit/courseapi/internal/app/models"
)

func sampleCourse() *models.Course {
	return &models.Course{
		ID:         1,
		CourseName: "Algorithms",
		Students: []models.Student{
			{
				ID:        10,
				FirstName: "Ada",
				LastName:  "Lovelace",
				Email:     "ada@example.edu",
				Phones: []models.PhoneNumber{
					{Number: "555-0100", Type: models.PhoneTypeMobile},
					{Number: "555-0199", Type: models.PhoneTypeLandline},
				},
			},
			{ID: 11, FirstName: "Alan", LastName: "Turing"},
		},
	}
}

func mustMarshal(t *testing.T, c *models.Course) []byte {
	t.Helper()
	b, err := Marshal(c)
	require.NoError(t, err)
	return b
}

func TestSchema(t *testing.T) {
	assert.Equal(t, "courseapi/course.proto", File.Path())
	assert.Equal(t, "courseapi.Course", string(courseDesc.FullName()))
	assert.True(t, courseDesc.Fields().ByName("student").IsList())
	assert.Equal(t, "courseapi.Student", string(courseDesc.Fields().ByName("student").Message().FullName()))
	assert.Equal(t, "LANDLINE", string(File.Enums().ByName("PhoneType").Values().ByNumber(1).Name()))
}

func TestMarshal_KnownBytes(t *testing.T) {
	got := mustMarshal(t, &models.Course{ID: 1, CourseName: "Algorithms"})

	// field 1 varint 1, field 2 length 10 "Algorithms"
	want := append([]byte{0x08, 0x01, 0x12, 0x0a}, "Algorithms"...)
	assert.Equal(t, want, got)
}

func TestMarshal_Deterministic(t *testing.T) {
	first := mustMarshal(t, sampleCourse())
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, mustMarshal(t, sampleCourse()))
	}
}

func TestMarshal_OmitsZeroValues(t *testing.T) {
	assert.Empty(t, mustMarshal(t, &models.Course{}))
	assert.Nil(t, mustMarshal(t, nil))
}

func TestRoundTrip(t *testing.T) {
	in := sampleCourse()
	out, err := Unmarshal(mustMarshal(t, in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestRoundTrip_NegativeIDAndUnknownEnum(t *testing.T) {
	in := &models.Course{ID: -5, Students: []models.Student{{ID: -1, Phones: []models.PhoneNumber{{Number: "1", Type: models.PhoneType(7)}}}}}
	out, err := Unmarshal(mustMarshal(t, in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestUnmarshal_SkipsUnknownFields(t *testing.T) {
	b := mustMarshal(t, &models.Course{ID: 2, CourseName: "Operating Systems"})
	b = protowire.AppendTag(b, 99, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, 7)
	b = protowire.AppendTag(b, 98, protowire.BytesType)
	b = protowire.AppendString(b, "ignored")

	out, err := Unmarshal(b)
	require.NoError(t, err)
	assert.Equal(t, &models.Course{ID: 2, CourseName: "Operating Systems"}, out)
}

func TestUnmarshal_Malformed(t *testing.T) {
	tests := map[string][]byte{
		"truncated length": {0x12, 0x05, 'a'},
		"truncated varint": {0x08, 0xff},
		"bad student":      {0x1a, 0x02, 0x12, 0x09},
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Unmarshal(input)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestListRoundTrip(t *testing.T) {
	in := []*models.Course{sampleCourse(), {ID: 2, CourseName: "Operating Systems"}}

	b, err := MarshalList(in)
	require.NoError(t, err)
	out, err := UnmarshalList(b)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	empty, err := UnmarshalList(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = UnmarshalList([]byte{0x05, 0x08})
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestListUsesVarintLengthPrefix(t *testing.T) {
	single := mustMarshal(t, &models.Course{ID: 1, CourseName: "Algorithms"})
	b, err := MarshalList([]*models.Course{{ID: 1, CourseName: "Algorithms"}})
	require.NoError(t, err)
	assert.Equal(t, append([]byte{byte(len(single))}, single...), b)
}
