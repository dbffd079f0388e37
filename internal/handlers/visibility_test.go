package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignhub/api/internal/models"
	"campaignhub/api/internal/security"
)

func TestTestimonialVisibilityPinsNonAdmins(t *testing.T) {
	admin := security.Identity{ID: "a1", Role: string(models.UserRoleAdmin)}
	manager := security.Identity{ID: "m1", Role: string(models.UserRoleCampaignManager)}
	client := security.Identity{ID: "c1", Role: string(models.UserRoleClient)}

	// Admins get exactly what they ask for.
	assert.Nil(t, testimonialVisibility(admin, true, ""))
	got := testimonialVisibility(admin, true, "false")
	require.NotNil(t, got)
	assert.False(t, *got)

	// A campaign manager asking for hidden entries is still pinned to
	// visible ones. Managing campaigns grants nothing on the public site.
	got = testimonialVisibility(manager, true, "false")
	require.NotNil(t, got)
	assert.True(t, *got)

	for _, identity := range []security.Identity{manager, client} {
		got = testimonialVisibility(identity, true, "")
		require.NotNil(t, got)
		assert.True(t, *got)
	}

	// Anonymous callers never see hidden entries either.
	got = testimonialVisibility(security.Identity{}, false, "false")
	require.NotNil(t, got)
	assert.True(t, *got)
}

func TestJobStatusScopePinsNonAdmins(t *testing.T) {
	admin := security.Identity{ID: "a1", Role: string(models.UserRoleAdmin)}
	manager := security.Identity{ID: "m1", Role: string(models.UserRoleCampaignManager)}

	assert.Equal(t, models.JobStatusClosed, jobStatusScope(admin, true, "closed"))
	assert.Equal(t, models.JobStatus(""), jobStatusScope(admin, true, ""))

	assert.Equal(t, models.JobStatusOpen, jobStatusScope(manager, true, "closed"))
	assert.Equal(t, models.JobStatusOpen, jobStatusScope(security.Identity{}, false, "closed"))
}

func TestSeesHiddenContent(t *testing.T) {
	assert.True(t, seesHiddenContent(security.Identity{Role: string(models.UserRoleAdmin)}, true))
	assert.False(t, seesHiddenContent(security.Identity{Role: string(models.UserRoleAdmin)}, false))
	assert.False(t, seesHiddenContent(security.Identity{Role: string(models.UserRoleCampaignManager)}, true))
	assert.False(t, seesHiddenContent(security.Identity{Role: string(models.UserRoleViewer)}, true))
}
