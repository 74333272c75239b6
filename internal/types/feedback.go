package types

// FeedbackStatus tracks whether site feedback has been triaged.
type FeedbackStatus int

const (
	FeedbackStatusUnreviewed FeedbackStatus = 1
	FeedbackStatusArchived   FeedbackStatus = 2
)

func (s FeedbackStatus) Valid() bool {
	return s == FeedbackStatusUnreviewed || s == FeedbackStatusArchived
}

// FeedbackSource records where the feedback was submitted from.
type FeedbackSource int

const (
	FeedbackSourcePublic   FeedbackSource = 0
	FeedbackSourceInternal FeedbackSource = 1
)

// CommentType categorizes the sentiment of feedback comments.
type CommentType int

const (
	CommentTypeNone       CommentType = 0
	CommentTypeIssue      CommentType = 1
	CommentTypeIdea       CommentType = 2
	CommentTypeElse       CommentType = 3
)

// FeedbackSortableColumns is the allow-list of columns the feedback listing
// may be sorted on.
var FeedbackSortableColumns = []string{"id", "rating", "created_date", "status"}
