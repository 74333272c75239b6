package widget

import (
	"github.com/engagehq/engage-api/internal/types"
)

// Widget is a UI component placed on an engagement page. Widgets of one
// engagement render in SortIndex order.
type Widget struct {
	ID int64 `db:"id" json:"id"`

	EngagementID int64            `db:"engagement_id" json:"engagement_id"`
	WidgetTypeID types.WidgetType `db:"widget_type_id" json:"widget_type_id"`

	Title     string `db:"title" json:"title"`
	SortIndex int    `db:"sort_index" json:"sort_index"`

	types.BaseModel
}
