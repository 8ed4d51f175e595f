package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStruct_ReadingListRequest(t *testing.T) {
	id := 10

	assert.Nil(t, ValidateStruct(ReadingListRequest{BookID: &id, Shelf: "Currently Reading"}))

	details := ValidateStruct(ReadingListRequest{Shelf: "Shelved"})
	require.Len(t, details, 2)
	assert.Equal(t, "book_id", details[0].Field)
	assert.Equal(t, "book_id is required", details[0].Message)
	assert.Equal(t, "shelf", details[1].Field)
	assert.Contains(t, details[1].Message, "Want to Read")
}

func TestValidateStruct_AddReviewRequest(t *testing.T) {
	details := ValidateStruct(AddReviewRequest{UserName: "alice", Text: " \t "})
	require.Len(t, details, 1)
	assert.Equal(t, "text", details[0].Field)
	assert.Equal(t, "text is required", details[0].Message)
}
