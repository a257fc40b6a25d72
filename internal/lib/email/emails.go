package email

import (
	"context"
	"fmt"
)

// SendDeveloperAssignedEmail tells a developer they were added to a lead.
func (c *Client) SendDeveloperAssignedEmail(ctx context.Context, to, developerName, leadTitle, clientName string) error {
	data := map[string]string{
		"DeveloperName": developerName,
		"LeadTitle":     leadTitle,
		"ClientName":    clientName,
	}

	return c.SendEmail(
		ctx,
		to,
		fmt.Sprintf("You were assigned to %s", leadTitle),
		TemplateDeveloperAssigned,
		data,
	)
}
