package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCampaignTransitions(t *testing.T) {
	allowed := []struct{ from, to CampaignStatus }{
		{CampaignStatusDraft, CampaignStatusActive},
		{CampaignStatusActive, CampaignStatusPaused},
		{CampaignStatusPaused, CampaignStatusActive},
		{CampaignStatusActive, CampaignStatusCompleted},
		{CampaignStatusPaused, CampaignStatusCompleted},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	blocked := []struct{ from, to CampaignStatus }{
		{CampaignStatusDraft, CampaignStatusPaused},
		{CampaignStatusDraft, CampaignStatusCompleted},
		{CampaignStatusCompleted, CampaignStatusActive},
		{CampaignStatusCompleted, CampaignStatusPaused},
		{CampaignStatusCompleted, CampaignStatusDraft},
		{CampaignStatusActive, CampaignStatusDraft},
		{CampaignStatusPaused, CampaignStatusDraft},
	}
	for _, tc := range blocked {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s should be blocked", tc.from, tc.to)
	}
}

func TestIsAssignedClient(t *testing.T) {
	c := Campaign{AssignedClients: []string{"usr_a", "usr_b"}}
	assert.True(t, c.IsAssignedClient("usr_a"))
	assert.False(t, c.IsAssignedClient("usr_z"))
	assert.False(t, Campaign{}.IsAssignedClient("usr_a"))
}
