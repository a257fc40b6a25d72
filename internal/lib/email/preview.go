package email

// PreviewData holds sample values for every template, keyed by template name.
var PreviewData = map[Template]map[string]string{
	TemplateDeveloperAssigned: {
		"DeveloperName": "Ada Lovelace",
		"LeadTitle":     "Acme Deal",
		"ClientName":    "Jane Doe",
	},
}
