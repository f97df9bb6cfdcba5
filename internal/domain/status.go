package domain

// Per-kind status vocabularies. These are flat sets: any member may follow
// any member, there is no enforced transition graph. An update carrying a
// value outside the set is rejected before anything is persisted.

var solarStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusVisit,
	LeadStatusQuotationSent,
	LeadStatusFollowup,
	LeadStatusDealDone,
	LeadStatusPortalUpdate,
	LeadStatusInstallation,
	LeadStatusMeterProcess,
	LeadStatusSubsidyForm,
	LeadStatusPaymentPending,
	LeadStatusCompleted,
	LeadStatusCancelled,
}

var sprinklerStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusVisit,
	LeadStatusQuotationSent,
	LeadStatusFollowup,
	LeadStatusDealDone,
	LeadStatusInstallation,
	LeadStatusPaymentPending,
	LeadStatusCompleted,
	LeadStatusCancelled,
}

// LeadStatuses returns the ordered vocabulary for a lead kind.
func LeadStatuses(kind WorkItemKind) []LeadStatus {
	switch kind {
	case KindSolarLead:
		return solarStatuses
	case KindSprinklerLead:
		return sprinklerStatuses
	}
	return nil
}

// ValidLeadStatus reports whether status belongs to the kind's vocabulary.
func ValidLeadStatus(kind WorkItemKind, status LeadStatus) bool {
	for _, s := range LeadStatuses(kind) {
		if s == status {
			return true
		}
	}
	return false
}

var serviceStatuses = []ServiceStatus{
	ServiceStatusOpen,
	ServiceStatusAssigned,
	ServiceStatusInProgress,
	ServiceStatusResolved,
	ServiceStatusClosed,
}

// ValidServiceStatus reports whether status is a service request status.
func ValidServiceStatus(status ServiceStatus) bool {
	for _, s := range serviceStatuses {
		if s == status {
			return true
		}
	}
	return false
}

var ticketStatuses = []TicketStatus{
	TicketStatusOpen,
	TicketStatusInProgress,
	TicketStatusProposed,
	TicketStatusResolved,
}

// ValidTicketStatus reports whether status is a plant ticket status.
func ValidTicketStatus(status TicketStatus) bool {
	for _, s := range ticketStatuses {
		if s == status {
			return true
		}
	}
	return false
}

var proposalStatuses = []ProposalStatus{
	ProposalStatusDraft,
	ProposalStatusSent,
	ProposalStatusApproved,
	ProposalStatusRejected,
	ProposalStatusInstalled,
}

// ValidProposalStatus reports whether status is a proposal status.
func ValidProposalStatus(status ProposalStatus) bool {
	for _, s := range proposalStatuses {
		if s == status {
			return true
		}
	}
	return false
}
