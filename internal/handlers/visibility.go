package handlers

import (
	"campaignhub/api/internal/models"
	"campaignhub/api/internal/security"
)

// seesHiddenContent reports whether a caller may observe testimonials with
// visible=false or jobs that are not open. Only admins may; campaign
// managers curate campaigns, not the public site.
func seesHiddenContent(identity security.Identity, authed bool) bool {
	return authed && identity.Role == string(models.UserRoleAdmin)
}

// testimonialVisibility translates the ?visible query into a repository
// filter. Callers without hidden-content access are pinned to visible
// entries regardless of what they asked for.
func testimonialVisibility(identity security.Identity, authed bool, requested string) *bool {
	if seesHiddenContent(identity, authed) {
		if requested == "" {
			return nil
		}
		v := requested == "true"
		return &v
	}
	v := true
	return &v
}

// jobStatusScope translates the ?status query the same way: callers
// without hidden-content access only ever see open positions.
func jobStatusScope(identity security.Identity, authed bool, requested string) models.JobStatus {
	if seesHiddenContent(identity, authed) {
		return models.JobStatus(requested)
	}
	return models.JobStatusOpen
}
