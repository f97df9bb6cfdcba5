package domain

import "testing"

func TestValidLeadStatus(t *testing.T) {
	tests := []struct {
		name   string
		kind   WorkItemKind
		status LeadStatus
		want   bool
	}{
		{"solar new", KindSolarLead, LeadStatusNew, true},
		{"solar portal update", KindSolarLead, LeadStatusPortalUpdate, true},
		{"solar meter process", KindSolarLead, LeadStatusMeterProcess, true},
		{"solar subsidy form", KindSolarLead, LeadStatusSubsidyForm, true},
		{"sprinkler deal done", KindSprinklerLead, LeadStatusDealDone, true},
		{"sprinkler rejects portal update", KindSprinklerLead, LeadStatusPortalUpdate, false},
		{"sprinkler rejects meter process", KindSprinklerLead, LeadStatusMeterProcess, false},
		{"sprinkler rejects subsidy form", KindSprinklerLead, LeadStatusSubsidyForm, false},
		{"unknown value", KindSolarLead, LeadStatus("Shipped"), false},
		{"non-lead kind", KindServiceRequest, LeadStatusNew, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidLeadStatus(tt.kind, tt.status); got != tt.want {
				t.Errorf("ValidLeadStatus(%s, %s) = %v, want %v", tt.kind, tt.status, got, tt.want)
			}
		})
	}
}

func TestLeadStatusesPerKind(t *testing.T) {
	if got := len(LeadStatuses(KindSolarLead)); got != 12 {
		t.Errorf("solar vocabulary has %d members, want 12", got)
	}
	if got := len(LeadStatuses(KindSprinklerLead)); got != 9 {
		t.Errorf("sprinkler vocabulary has %d members, want 9", got)
	}
	if LeadStatuses(KindPlantTicket) != nil {
		t.Error("ticket kind should have no lead status vocabulary")
	}
}

func TestValidServiceStatus(t *testing.T) {
	for _, s := range []ServiceStatus{ServiceStatusOpen, ServiceStatusAssigned, ServiceStatusInProgress, ServiceStatusResolved, ServiceStatusClosed} {
		if !ValidServiceStatus(s) {
			t.Errorf("%s should be valid", s)
		}
	}
	if ValidServiceStatus("Done") {
		t.Error("unknown service status accepted")
	}
}

func TestValidTicketStatus(t *testing.T) {
	for _, s := range []TicketStatus{TicketStatusOpen, TicketStatusInProgress, TicketStatusProposed, TicketStatusResolved} {
		if !ValidTicketStatus(s) {
			t.Errorf("%s should be valid", s)
		}
	}
	if ValidTicketStatus("Closed") {
		t.Error("plant tickets have no Closed status")
	}
}

func TestValidProposalStatus(t *testing.T) {
	if !ValidProposalStatus(ProposalStatusInstalled) {
		t.Error("Installed should be valid")
	}
	if ValidProposalStatus("Pending") {
		t.Error("unknown proposal status accepted")
	}
}
