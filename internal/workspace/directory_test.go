package workspace

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	admin "google.golang.org/api/admin/directory/v1"
	"google.golang.org/api/googleapi"
)

func TestResourceEntryType(t *testing.T) {
	tests := []struct {
		name string
		res  *admin.CalendarResource
		want string
	}{
		{
			name: "conference room",
			res:  &admin.CalendarResource{ResourceCategory: "CONFERENCE_ROOM"},
			want: "room",
		},
		{
			name: "other with type",
			res:  &admin.CalendarResource{ResourceCategory: "OTHER", ResourceType: "Projector"},
			want: "equipment",
		},
		{
			name: "unknown category without type",
			res:  &admin.CalendarResource{ResourceCategory: "CATEGORY_UNKNOWN"},
			want: "resource",
		},
		{
			name: "empty category with type",
			res:  &admin.CalendarResource{ResourceType: "Bike"},
			want: "equipment",
		},
		{
			name: "unrecognized category",
			res:  &admin.CalendarResource{ResourceCategory: "SOMETHING_NEW"},
			want: "resource",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resourceEntryType(tt.res))
		})
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(&googleapi.Error{Code: 404}))
	assert.False(t, isNotFound(&googleapi.Error{Code: 403}))
	assert.False(t, isNotFound(errors.New("connection reset")))
	assert.False(t, isNotFound(nil))

	wrapped := errors.Join(errors.New("lookup"), &googleapi.Error{Code: 404})
	assert.True(t, isNotFound(wrapped))
}
