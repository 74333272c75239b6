package types

// WidgetType identifies the kind of UI component attached to an engagement.
// The codes match the widget_type reference rows seeded by migrations.
type WidgetType int

const (
	WidgetTypeWhoIsListening WidgetType = 1
	WidgetTypeDocuments      WidgetType = 2
	WidgetTypePhases         WidgetType = 3
	WidgetTypeSubscribe      WidgetType = 4
	WidgetTypeEvents         WidgetType = 5
	WidgetTypeMap            WidgetType = 6
	WidgetTypeVideo          WidgetType = 7
	WidgetTypeCACForm        WidgetType = 8
	WidgetTypeTimeline       WidgetType = 9
	WidgetTypePoll           WidgetType = 10
)

func (t WidgetType) Valid() bool {
	return t >= WidgetTypeWhoIsListening && t <= WidgetTypePoll
}

func (t WidgetType) String() string {
	switch t {
	case WidgetTypeWhoIsListening:
		return "Who is Listening"
	case WidgetTypeDocuments:
		return "Documents"
	case WidgetTypePhases:
		return "Phases"
	case WidgetTypeSubscribe:
		return "Subscribe"
	case WidgetTypeEvents:
		return "Events"
	case WidgetTypeMap:
		return "Map"
	case WidgetTypeVideo:
		return "Video"
	case WidgetTypeCACForm:
		return "CAC Form"
	case WidgetTypeTimeline:
		return "Timeline"
	case WidgetTypePoll:
		return "Poll"
	default:
		return "Unknown"
	}
}
