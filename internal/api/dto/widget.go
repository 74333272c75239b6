package dto

import (
	"context"

	"github.com/engagehq/engage-api/internal/domain/widget"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/types"
)

type CreateWidgetRequest struct {
	WidgetTypeID types.WidgetType `json:"widget_type_id" binding:"required"`
	Title        string           `json:"title"`
}

func (r *CreateWidgetRequest) Validate() error {
	if !r.WidgetTypeID.Valid() {
		return ierr.NewError("invalid widget type").
			WithHint("The requested widget type is not known").
			WithReportableDetails(map[string]any{"widget_type_id": int(r.WidgetTypeID)}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateWidgetRequest) ToWidget(ctx context.Context, engagementID int64, sortIndex int) *widget.Widget {
	return &widget.Widget{
		EngagementID: engagementID,
		WidgetTypeID: r.WidgetTypeID,
		Title:        r.Title,
		SortIndex:    sortIndex,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}
}

type UpdateWidgetRequest struct {
	Title *string `json:"title,omitempty"`
}

// ReorderWidgetsRequest carries the full widget id sequence for an
// engagement in the desired render order.
type ReorderWidgetsRequest struct {
	WidgetIDs []int64 `json:"widget_ids" binding:"required"`
}

func (r *ReorderWidgetsRequest) Validate() error {
	if len(r.WidgetIDs) == 0 {
		return ierr.NewError("widget_ids is required").
			WithHint("The new widget order must list at least one widget").
			Mark(ierr.ErrValidation)
	}
	seen := make(map[int64]struct{}, len(r.WidgetIDs))
	for _, id := range r.WidgetIDs {
		if _, dup := seen[id]; dup {
			return ierr.NewError("duplicate widget id in order").
				WithHint("Each widget may appear only once in the new order").
				WithReportableDetails(map[string]any{"widget_id": id}).
				Mark(ierr.ErrValidation)
		}
		seen[id] = struct{}{}
	}
	return nil
}

type WidgetResponse struct {
	*widget.Widget
}

// ListWidgetsResponse represents the widgets of an engagement in render order
type ListWidgetsResponse struct {
	Items []*WidgetResponse `json:"items"`
}
