package domain

// WorkItemKind tags the four record families sharing the lifecycle engine.
type WorkItemKind string

const (
	KindSolarLead      WorkItemKind = "Solar"
	KindSprinklerLead  WorkItemKind = "Sprinkler"
	KindServiceRequest WorkItemKind = "Service"
	KindPlantTicket    WorkItemKind = "Ticket"
)

// LeadKind reports whether the kind is one of the two sales pipelines.
func (k WorkItemKind) LeadKind() bool {
	return k == KindSolarLead || k == KindSprinklerLead
}
