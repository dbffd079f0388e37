package models

import "time"

type CampaignType string

const (
	CampaignTypeBanner CampaignType = "banner"
	CampaignTypeVideo  CampaignType = "video"
	CampaignTypeSocial CampaignType = "social"
)

func ValidCampaignType(t CampaignType) bool {
	switch t {
	case CampaignTypeBanner, CampaignTypeVideo, CampaignTypeSocial:
		return true
	}
	return false
}

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
)

// campaignTransitions is the validated status state machine:
// draft -> active, active <-> paused, {active,paused} -> completed.
// Completed is terminal.
var campaignTransitions = map[CampaignStatus][]CampaignStatus{
	CampaignStatusDraft:  {CampaignStatusActive},
	CampaignStatusActive: {CampaignStatusPaused, CampaignStatusCompleted},
	CampaignStatusPaused: {CampaignStatusActive, CampaignStatusCompleted},
}

// CanTransition reports whether a campaign may move from one status to
// another via an explicit transition endpoint.
func CanTransition(from, to CampaignStatus) bool {
	for _, allowed := range campaignTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type CampaignMetrics struct {
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Conversions int64   `json:"conversions"`
	CTR         float64 `json:"ctr"`
}

type Campaign struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Type            CampaignType    `json:"type"`
	Status          CampaignStatus  `json:"status"`
	Budget          float64         `json:"budget"`
	Spent           float64         `json:"spent"`
	StartDate       time.Time       `json:"startDate"`
	EndDate         time.Time       `json:"endDate"`
	TargetAudience  string          `json:"targetAudience,omitempty"`
	CreatedBy       string          `json:"createdBy"`
	AssignedClients []string        `json:"assignedClients"`
	Metrics         CampaignMetrics `json:"metrics"`
	MediaURLs       []string        `json:"mediaUrls"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// IsAssignedClient reports whether the given user id appears in the
// campaign's client assignment list.
func (c Campaign) IsAssignedClient(userID string) bool {
	for _, id := range c.AssignedClients {
		if id == userID {
			return true
		}
	}
	return false
}
