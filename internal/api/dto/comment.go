package dto

import (
	"github.com/engagehq/engage-api/internal/domain/comment"
	"github.com/engagehq/engage-api/internal/types"
)

type CommentResponse struct {
	*comment.Comment
}

// ListCommentsResponse represents a paginated list of comments
type ListCommentsResponse = types.ListResponse[*CommentResponse]
